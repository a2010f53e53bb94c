package api

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hbennett/revisio/internal/curriculum"
)

type createClassRequest struct {
	Name      string `json:"name" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

type enrolRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

type coverageRequest struct {
	Status    string `json:"status" validate:"required,oneof=planned covered revision"`
	CoveredOn string `json:"covered_on" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

func (h *handler) classCreate(c echo.Context) error {
	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := uuid.NewString()
	if err := h.deps.Store.Classes().Create(c.Request().Context(), id, req.Name, req.TeacherID); err != nil {
		return err
	}
	cls, err := h.deps.Store.Classes().Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cls)
}

func (h *handler) classList(c echo.Context) error {
	ctx := c.Request().Context()
	if teacherID := c.QueryParam("teacher_id"); teacherID != "" {
		classes, err := h.deps.Store.Classes().ForTeacher(ctx, teacherID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"classes": classes})
	}
	classes, err := h.deps.Store.Classes().All(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"classes": classes})
}

func (h *handler) classEnrol(c echo.Context) error {
	var req enrolRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	classID := c.Param("id")

	if _, err := h.deps.Store.Classes().Get(ctx, classID); err != nil {
		return err
	}
	if err := h.deps.Store.Classes().UpsertStudent(ctx, req.StudentID, req.Name, req.Email); err != nil {
		return err
	}
	if err := h.deps.Store.Classes().Enrol(ctx, req.StudentID, classID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handler) classRoster(c echo.Context) error {
	roster, err := h.deps.Store.Classes().Roster(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"students": roster})
}

func (h *handler) coverageUpsert(c echo.Context) error {
	var req coverageRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	topicCode := c.Param("topic")
	if !curriculum.IsKnown(topicCode) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown topic code")
	}

	err := h.deps.Store.Coverage().Upsert(
		c.Request().Context(), uuid.NewString(), c.Param("id"),
		topicCode, req.Status, req.CoveredOn, req.Notes,
	)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type coverageDTO struct {
	TopicCode string `json:"topic_code"`
	Status    string `json:"status"`
	CoveredOn string `json:"covered_on,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (h *handler) coverageList(c echo.Context) error {
	entries, err := h.deps.Store.Coverage().ForClass(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return curriculum.CompareCodes(entries[i].TopicCode, entries[j].TopicCode) < 0
	})
	out := make([]coverageDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, coverageDTO{
			TopicCode: e.TopicCode,
			Status:    e.Status,
			CoveredOn: e.CoveredOn.String,
			Notes:     e.Notes.String,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"coverage": out})
}

func (h *handler) classExport(c echo.Context) error {
	classID := c.Param("id")
	weekStart := c.QueryParam("week_start")
	if weekStart == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "week_start query parameter is required")
	}

	var buf bytes.Buffer
	if err := h.deps.Exporter.WriteWorkbook(c.Request().Context(), &buf, classID, weekStart); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("class-%s-%s.xlsx", classID, weekStart)))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
