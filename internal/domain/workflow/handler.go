package workflow

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinsafe/riskengine/internal/domain/risk"
	"github.com/clinsafe/riskengine/internal/platform/auth"
	"github.com/clinsafe/riskengine/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/workflows", h.ListWorkflows)
	readGroup.GET("/workflows/active", h.GetActiveWorkflow)
	readGroup.GET("/workflows/:id", h.GetWorkflow)

	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	writeGroup.POST("/workflows", h.StartWorkflow)
	writeGroup.POST("/workflows/:id/screening", h.RecordScreening)
	writeGroup.POST("/workflows/:id/detailed-assessment", h.RecordDetailedAssessment)
	writeGroup.POST("/workflows/:id/safety-plan", h.RecordSafetyPlan)
	writeGroup.POST("/workflows/:id/advance", h.AdvanceWorkflow)
	writeGroup.POST("/workflows/:id/complete", h.CompleteWorkflow)
}

type startWorkflowRequest struct {
	PatientID   uuid.UUID `json:"patient_id"`
	SessionID   uuid.UUID `json:"session_id"`
	ClinicianID uuid.UUID `json:"clinician_id"`
}

func (h *Handler) StartWorkflow(c echo.Context) error {
	var req startWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.svc.Start(c.Request().Context(), req.PatientID, req.SessionID, req.ClinicianID)
	if err != nil {
		if errors.Is(err, risk.ErrAssessmentInProgress) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) RecordScreening(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in ScreeningInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.svc.RecordScreening(c.Request().Context(), id, in)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, w)
}

type detailedAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

func (h *Handler) RecordDetailedAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req detailedAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.svc.RecordDetailedAssessment(c.Request().Context(), id, req.AssessmentID)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, w)
}

type safetyPlanRequest struct {
	SafetyPlanID uuid.UUID `json:"safety_plan_id"`
}

func (h *Handler) RecordSafetyPlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req safetyPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w, err := h.svc.RecordSafetyPlan(c.Request().Context(), id, req.SafetyPlanID)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) AdvanceWorkflow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.svc.Advance(c.Request().Context(), id)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) CompleteWorkflow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.svc.Complete(c.Request().Context(), id)
	if err != nil {
		return transitionError(err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) GetWorkflow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	w, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "workflow not found")
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) GetActiveWorkflow(c echo.Context) error {
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	sid, err := uuid.Parse(c.QueryParam("session_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session_id")
	}
	w, err := h.svc.ActiveBySession(c.Request().Context(), pid, sid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if w == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no active workflow")
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) ListWorkflows(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func transitionError(err error) error {
	switch {
	case IsInvalidTransition(err), errors.Is(err, ErrWorkflowCompleted):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
