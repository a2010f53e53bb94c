package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hbennett/revisio/internal/plan"
	"github.com/hbennett/revisio/internal/question"
	"github.com/hbennett/revisio/internal/session"
	"github.com/hbennett/revisio/internal/stats"
)

type practiceRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
}

type submitRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	ItemID    string `json:"item_id" validate:"required"`
	Response  string `json:"response" validate:"required"`
}

type selfAssessRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
	Score     string `json:"score" validate:"required,oneof=green amber red"`
}

// practiceState is the wire shape of a session.
type practiceState struct {
	WeekStart string             `json:"week_start"`
	WeekEnd   string             `json:"week_end"`
	Items     []plan.Item        `json:"items"`
	Progress  plan.Snapshot      `json:"progress"`
	Completed bool               `json:"completed"`
	Current   *question.Question `json:"current,omitempty"`
	ItemID    string             `json:"item_id,omitempty"`
	AnswerID  string             `json:"answer_id,omitempty"`
	AutoScore *float64           `json:"auto_score,omitempty"`
	NeedsSelf bool               `json:"needs_self_assessment"`
}

func stateDTO(st *session.State) practiceState {
	out := practiceState{
		WeekStart: st.Window.Start,
		WeekEnd:   st.Window.End,
		Items:     st.Items,
		Progress:  st.Progress,
		Completed: st.Completed,
		AnswerID:  st.LastAnswerID,
		AutoScore: st.LastScore,
		NeedsSelf: st.OpenAnswerID != "",
	}
	if q, it, ok := st.Current(); ok {
		out.Current = &q
		out.ItemID = it.ItemID
	}
	return out
}

// load reconstructs the session from storage. Position is derived from
// item status, so no server-side session state is held between requests.
func (h *handler) load(c echo.Context, studentID, classID string) (*session.State, error) {
	return h.deps.Session.LoadWeek(c.Request().Context(), studentID, classID)
}

func (h *handler) practiceLoad(c echo.Context) error {
	var req practiceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st, err := h.load(c, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateDTO(st))
}

func (h *handler) practiceSubmit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st, err := h.load(c, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}

	_, it, ok := st.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusConflict, "no open question")
	}
	if it.ItemID != req.ItemID {
		return echo.NewHTTPError(http.StatusConflict, "item is no longer current")
	}

	if err := h.deps.Session.SubmitAnswer(c.Request().Context(), st, req.Response); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateDTO(st))
}

func (h *handler) practiceSelfAssess(c echo.Context) error {
	var req selfAssessRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st, err := h.load(c, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}
	st.OpenAnswerID = c.Param("id")

	score, _ := stats.ParseScore(req.Score)
	if err := h.deps.Session.SelfAssess(c.Request().Context(), st, score); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateDTO(st))
}

func (h *handler) practiceSkip(c echo.Context) error {
	var req practiceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st, err := h.load(c, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}
	if err := h.deps.Session.Skip(c.Request().Context(), st); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateDTO(st))
}

func (h *handler) practiceAdvance(c echo.Context) error {
	var req practiceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	st, err := h.load(c, req.StudentID, req.ClassID)
	if err != nil {
		return err
	}
	if err := h.deps.Session.Advance(c.Request().Context(), st); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stateDTO(st))
}
