package risk

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

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
	// Read endpoints – admin, physician, nurse
	readGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	readGroup.GET("/risk-factors", h.ListRiskFactors)
	readGroup.GET("/protective-factors", h.ListProtectiveFactors)
	readGroup.GET("/suicide-assessments", h.ListSuicideAssessments)
	readGroup.GET("/suicide-assessments/:id", h.GetSuicideAssessment)
	readGroup.GET("/self-harm-assessments", h.ListSelfHarmAssessments)
	readGroup.GET("/self-harm-assessments/:id", h.GetSelfHarmAssessment)
	readGroup.GET("/violence-assessments", h.ListViolenceAssessments)
	readGroup.GET("/violence-assessments/:id", h.GetViolenceAssessment)
	readGroup.GET("/comprehensive-assessments", h.ListComprehensiveAssessments)
	readGroup.GET("/comprehensive-assessments/latest", h.LatestComprehensiveAssessment)
	readGroup.GET("/comprehensive-assessments/:id", h.GetComprehensiveAssessment)

	// Write endpoints – admin, physician, nurse
	writeGroup := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	writeGroup.POST("/suicide-assessments", h.CreateSuicideAssessment)
	writeGroup.POST("/self-harm-assessments", h.CreateSelfHarmAssessment)
	writeGroup.POST("/violence-assessments", h.CreateViolenceAssessment)
	writeGroup.POST("/comprehensive-assessments", h.CreateComprehensiveAssessment)
}

// -- Catalog Handlers --

func (h *Handler) ListRiskFactors(c echo.Context) error {
	// An unrecognized type yields an empty list, not an error.
	return c.JSON(http.StatusOK, FactorsFor(Type(c.QueryParam("type"))))
}

func (h *Handler) ListProtectiveFactors(c echo.Context) error {
	return c.JSON(http.StatusOK, ProtectiveFactors())
}

// -- Assessment Handlers --

type suicideAssessRequest struct {
	PatientID  uuid.UUID        `json:"patient_id"`
	SessionID  uuid.UUID        `json:"session_id"`
	AssessorID uuid.UUID        `json:"assessor_id"`
	Responses  SuicideResponses `json:"responses"`
}

func (h *Handler) CreateSuicideAssessment(c echo.Context) error {
	var req suicideAssessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.AssessSuicide(c.Request().Context(), req.PatientID, req.SessionID, req.AssessorID, req.Responses)
	if err != nil {
		if IsIncompleteResponses(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetSuicideAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetSuicideAssessment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "suicide assessment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListSuicideAssessments(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListSuicideAssessmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type selfHarmAssessRequest struct {
	PatientID  uuid.UUID         `json:"patient_id"`
	SessionID  uuid.UUID         `json:"session_id"`
	AssessorID uuid.UUID         `json:"assessor_id"`
	Responses  SelfHarmResponses `json:"responses"`
}

func (h *Handler) CreateSelfHarmAssessment(c echo.Context) error {
	var req selfHarmAssessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.AssessSelfHarm(c.Request().Context(), req.PatientID, req.SessionID, req.AssessorID, req.Responses)
	if err != nil {
		if IsIncompleteResponses(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetSelfHarmAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetSelfHarmAssessment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "self-harm assessment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListSelfHarmAssessments(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListSelfHarmAssessmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

type violenceAssessRequest struct {
	PatientID  uuid.UUID         `json:"patient_id"`
	SessionID  uuid.UUID         `json:"session_id"`
	AssessorID uuid.UUID         `json:"assessor_id"`
	Responses  ViolenceResponses `json:"responses"`
}

func (h *Handler) CreateViolenceAssessment(c echo.Context) error {
	var req violenceAssessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.AssessViolence(c.Request().Context(), req.PatientID, req.SessionID, req.AssessorID, req.Responses)
	if err != nil {
		if IsIncompleteResponses(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetViolenceAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetViolenceAssessment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "violence assessment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListViolenceAssessments(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListViolenceAssessmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Comprehensive Assessment Handlers --

type aggregateRequest struct {
	PatientID            uuid.UUID            `json:"patient_id"`
	SessionID            uuid.UUID            `json:"session_id"`
	AssessorID           uuid.UUID            `json:"assessor_id"`
	SuicideAssessmentID  *uuid.UUID           `json:"suicide_assessment_id,omitempty"`
	SelfHarmAssessmentID *uuid.UUID           `json:"self_harm_assessment_id,omitempty"`
	ViolenceAssessmentID *uuid.UUID           `json:"violence_assessment_id,omitempty"`
	SubstanceIndicators  *SubstanceIndicators `json:"substance_indicators,omitempty"`
	PsychosisIndicators  *PsychosisIndicators `json:"psychosis_indicators,omitempty"`
	CrisisContacts       []CrisisContact      `json:"crisis_contacts,omitempty"`
}

func (h *Handler) CreateComprehensiveAssessment(c echo.Context) error {
	var req aggregateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()

	in := AggregateInput{
		PatientID:      req.PatientID,
		SessionID:      req.SessionID,
		AssessorID:     req.AssessorID,
		Substance:      req.SubstanceIndicators,
		Psychosis:      req.PsychosisIndicators,
		CrisisContacts: req.CrisisContacts,
	}
	if req.SuicideAssessmentID != nil {
		a, err := h.svc.GetSuicideAssessment(ctx, *req.SuicideAssessmentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "suicide assessment not found")
		}
		in.Suicide = a
	}
	if req.SelfHarmAssessmentID != nil {
		a, err := h.svc.GetSelfHarmAssessment(ctx, *req.SelfHarmAssessmentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "self-harm assessment not found")
		}
		in.SelfHarm = a
	}
	if req.ViolenceAssessmentID != nil {
		a, err := h.svc.GetViolenceAssessment(ctx, *req.ViolenceAssessmentID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "violence assessment not found")
		}
		in.Violence = a
	}

	a, err := h.svc.Aggregate(ctx, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetComprehensiveAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetComprehensiveAssessment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "comprehensive assessment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListComprehensiveAssessments(c echo.Context) error {
	pg := pagination.FromContext(c)
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	items, total, err := h.svc.ListComprehensiveAssessmentsByPatient(c.Request().Context(), pid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) LatestComprehensiveAssessment(c echo.Context) error {
	pid, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
	}
	a, err := h.svc.LatestComprehensiveByPatient(c.Request().Context(), pid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if a == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no comprehensive assessment for patient")
	}
	return c.JSON(http.StatusOK, a)
}
