// Package api exposes the revision platform over HTTP.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hbennett/revisio/internal/export"
	"github.com/hbennett/revisio/internal/qgen"
	"github.com/hbennett/revisio/internal/report"
	"github.com/hbennett/revisio/internal/session"
	"github.com/hbennett/revisio/internal/stats"
	"github.com/hbennett/revisio/internal/store"
)

// Server bundles the router and its dependencies.
type Server struct {
	addr   string
	router *echo.Echo
}

// Deps are the services the handlers call into.
type Deps struct {
	Store     *store.Store
	Session   *session.Controller
	Stats     *stats.Service
	Generator *qgen.Service
	Exporter  *export.ClassExporter
	Log       report.Logger
	Debug     bool
}

type appValidator struct {
	validate *validator.Validate
}

func (v appValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewServer builds the HTTP server with all routes registered.
func NewServer(addr string, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Debug = deps.Debug

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &appValidator{validate: validator.New()}
	e.HTTPErrorHandler = newHTTPErrorHandler(deps.Log)

	e.GET("/", home)
	registerRoutes(e.Group("/v1"), deps)

	return &Server{addr: addr, router: e}
}

// Start runs the server until it fails or is shut down.
func (s *Server) Start() error {
	return s.router.Start(s.addr)
}

// Router exposes the echo instance for tests.
func (s *Server) Router() *echo.Echo {
	return s.router
}

func home(c echo.Context) error {
	return c.String(http.StatusOK, "revisio API")
}

func registerRoutes(g *echo.Group, deps Deps) {
	h := &handler{deps: deps}

	g.POST("/practice/load", h.practiceLoad)
	g.POST("/practice/answers", h.practiceSubmit)
	g.POST("/practice/answers/:id/self-assessment", h.practiceSelfAssess)
	g.POST("/practice/skip", h.practiceSkip)
	g.POST("/practice/advance", h.practiceAdvance)

	g.GET("/questions", h.questionsByIDs)
	g.POST("/questions", h.questionCreate)
	g.GET("/questions/:id", h.questionGet)
	g.POST("/questions/:id/publish", h.questionPublish)
	g.POST("/questions/generate", h.questionsGenerate)

	g.POST("/classes", h.classCreate)
	g.GET("/classes", h.classList)
	g.POST("/classes/:id/students", h.classEnrol)
	g.GET("/classes/:id/students", h.classRoster)
	g.PUT("/classes/:id/coverage/:topic", h.coverageUpsert)
	g.GET("/classes/:id/coverage", h.coverageList)
	g.GET("/classes/:id/export", h.classExport)

	g.GET("/students/:id/stats", h.studentStats)
	g.PATCH("/answers/:id/grade", h.answerGrade)
}

type handler struct {
	deps Deps
}
