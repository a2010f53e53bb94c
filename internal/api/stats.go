package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type gradeRequest struct {
	Score   string `json:"score" validate:"required,oneof=green amber red"`
	Comment string `json:"comment"`
}

func (h *handler) studentStats(c echo.Context) error {
	summary, err := h.deps.Stats.Summary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *handler) answerGrade(c echo.Context) error {
	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	err := h.deps.Store.Answers().SetTeacherGrade(
		c.Request().Context(), c.Param("id"), req.Score, req.Comment,
	)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
