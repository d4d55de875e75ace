package crisis

import (
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
	readGroup.GET("/crisis-incidents", h.ListIncidents)
	readGroup.GET("/crisis-incidents/:id", h.GetIncident)

	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	writeGroup.POST("/crisis-protocols/activate", h.Activate)
	writeGroup.POST("/crisis-incidents", h.DocumentIncident)
}

type activateRequest struct {
	AssessmentID uuid.UUID  `json:"assessment_id"`
	RiskLevel    risk.Level `json:"risk_level"`
}

func (h *Handler) Activate(c echo.Context) error {
	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Activate(c.Request().Context(), req.AssessmentID, req.RiskLevel)
	if err != nil {
		if risk.IsUnsupportedRiskLevel(err) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

type documentIncidentRequest struct {
	PatientID            uuid.UUID  `json:"patient_id"`
	AssessmentID         *uuid.UUID `json:"assessment_id,omitempty"`
	IncidentType         string     `json:"incident_type"`
	Severity             string     `json:"severity"`
	Description          string     `json:"description"`
	PrecipitatingFactors []string   `json:"precipitating_factors,omitempty"`
	InterventionsUsed    []string   `json:"interventions_used,omitempty"`
	Outcome              *string    `json:"outcome,omitempty"`
	SafetyPlanUpdated    bool       `json:"safety_plan_updated"`
	AuthoritiesNotified  bool       `json:"authorities_notified"`
	FollowUpActions      []string   `json:"follow_up_actions,omitempty"`
	DocumentedByID       uuid.UUID  `json:"documented_by_id"`
}

func (h *Handler) DocumentIncident(c echo.Context) error {
	var req documentIncidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	i, err := h.svc.DocumentIncident(c.Request().Context(), DocumentIncidentInput{
		PatientID:            req.PatientID,
		AssessmentID:         req.AssessmentID,
		IncidentType:         req.IncidentType,
		Severity:             req.Severity,
		Description:          req.Description,
		PrecipitatingFactors: req.PrecipitatingFactors,
		InterventionsUsed:    req.InterventionsUsed,
		Outcome:              req.Outcome,
		SafetyPlanUpdated:    req.SafetyPlanUpdated,
		AuthoritiesNotified:  req.AuthoritiesNotified,
		FollowUpActions:      req.FollowUpActions,
		DocumentedByID:       req.DocumentedByID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) GetIncident(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	i, err := h.svc.GetIncident(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "crisis incident not found")
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) ListIncidents(c echo.Context) error {
	if assessmentID := c.QueryParam("assessment_id"); assessmentID != "" {
		aid, err := uuid.Parse(assessmentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid assessment_id")
		}
		items, err := h.svc.ListIncidentsByAssessment(c.Request().Context(), aid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, items)
	}
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListIncidentsByPatientAndSeverity(c.Request().Context(), pid, c.QueryParam("severity"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
