package safetyplan

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
	readGroup.GET("/safety-plans", h.ListPlans)
	readGroup.GET("/safety-plans/active", h.GetActivePlan)
	readGroup.GET("/safety-plans/:id", h.GetPlan)

	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	writeGroup.POST("/safety-plans", h.GeneratePlan)
	writeGroup.POST("/safety-plans/:id/expire", h.ExpirePlan)
	writeGroup.POST("/safety-plans/:id/effectiveness", h.RatePlan)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.POST("/safety-plans/expire-overdue", h.ExpireOverduePlans)
}

func (h *Handler) ExpireOverduePlans(c echo.Context) error {
	n, err := h.svc.ExpireOverdue(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"expired": n})
}

type generateRequest struct {
	PatientID            uuid.UUID   `json:"patient_id"`
	CreatedByID          uuid.UUID   `json:"created_by_id"`
	RiskTypes            []risk.Type `json:"risk_types"`
	SocialContacts       []Contact   `json:"social_contacts,omitempty"`
	ProfessionalContacts []Contact   `json:"professional_contacts,omitempty"`
	ReasonsForLiving     []string    `json:"reasons_for_living,omitempty"`
	PatientCommitment    *string     `json:"patient_commitment,omitempty"`
}

func (h *Handler) GeneratePlan(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	for _, t := range req.RiskTypes {
		if _, err := risk.ParseType(string(t)); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	p, err := h.svc.Generate(c.Request().Context(), GenerateInput{
		PatientID:            req.PatientID,
		CreatedByID:          req.CreatedByID,
		RiskTypes:            req.RiskTypes,
		SocialContacts:       req.SocialContacts,
		ProfessionalContacts: req.ProfessionalContacts,
		ReasonsForLiving:     req.ReasonsForLiving,
		PatientCommitment:    req.PatientCommitment,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "safety plan not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPlans(c echo.Context) error {
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

func (h *Handler) GetActivePlan(c echo.Context) error {
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	p, err := h.svc.ActiveByPatient(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no active safety plan for patient")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ExpirePlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Expire(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func (h *Handler) RatePlan(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RateEffectiveness(c.Request().Context(), id, req.Rating); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
