package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hbennett/revisio/internal/curriculum"
	"github.com/hbennett/revisio/internal/question"
)

type createQuestionRequest struct {
	TopicCode       string   `json:"topic_code" validate:"required"`
	Type            string   `json:"type" validate:"required"`
	Prompt          string   `json:"prompt" validate:"required"`
	Difficulty      string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Options         []string `json:"options"`
	CorrectIndex    int      `json:"correct_index"`
	TrueFalseAnswer bool     `json:"true_false_answer"`
	AcceptedAnswers []string `json:"accepted_answers"`
	Pairs           []struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	} `json:"pairs"`
	ModelAnswer string `json:"model_answer"`
	Rubric      string `json:"rubric"`
	Language    string `json:"language"`
	Draft       bool   `json:"draft"`
}

type generateRequest struct {
	TopicCode  string `json:"topic_code" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Count      int    `json:"count" validate:"required,min=1,max=20"`
}

func (h *handler) questionsByIDs(c echo.Context) error {
	raw := c.QueryParam("ids")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ids query parameter is required")
	}
	ids := strings.Split(raw, ",")

	qs, err := h.deps.Store.Questions().ByIDs(c.Request().Context(), ids)
	if err != nil {
		return err
	}

	// Preserve request order; drop unknown IDs.
	out := make([]question.Question, 0, len(qs))
	for _, id := range ids {
		if q, ok := qs[id]; ok {
			out = append(out, q)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"questions": out})
}

func (h *handler) questionGet(c echo.Context) error {
	q, err := h.deps.Store.Questions().Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

func (h *handler) questionCreate(c echo.Context) error {
	var req createQuestionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !curriculum.IsKnown(req.TopicCode) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown topic code")
	}

	q := question.Question{
		ID:              uuid.NewString(),
		TopicCode:       req.TopicCode,
		Type:            question.ParseType(req.Type),
		Prompt:          req.Prompt,
		Difficulty:      req.Difficulty,
		Options:         req.Options,
		CorrectIndex:    req.CorrectIndex,
		TrueFalseAnswer: req.TrueFalseAnswer,
		AcceptedAnswers: req.AcceptedAnswers,
		ModelAnswer:     req.ModelAnswer,
		Rubric:          req.Rubric,
		Language:        req.Language,
	}
	for _, p := range req.Pairs {
		q.Pairs = append(q.Pairs, question.Pair{Left: p.Left, Right: p.Right})
	}

	if err := h.deps.Store.Questions().Insert(c.Request().Context(), &q, req.Draft); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, q)
}

func (h *handler) questionPublish(c echo.Context) error {
	if err := h.deps.Store.Questions().Publish(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) questionsGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if h.deps.Generator == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "question generation is not configured")
	}

	drafts, err := h.deps.Generator.GenerateBatch(
		c.Request().Context(), req.TopicCode, req.Type, req.Difficulty, req.Count,
	)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"questions": drafts})
}
