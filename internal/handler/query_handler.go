package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ainoggo/internal/domain"
	"ainoggo/internal/export"
	"ainoggo/internal/flow"
)

// LegalQuerier is the part of flow.QueryFlow the handler drives.
type LegalQuerier interface {
	SetQuestion(q string)
	Question() string
	SetCaseType(c domain.CaseType) error
	CaseType() domain.CaseType
	Submit() <-chan flow.QueryState
	State() flow.QueryState
	Reset()
	Closed() bool
}

// QueryHandler handles legal question endpoints.
type QueryHandler struct {
	flow LegalQuerier
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(f LegalQuerier) *QueryHandler {
	return &QueryHandler{flow: f}
}

type queryStateResponse struct {
	flow.QueryState
	Question string          `json:"question"`
	CaseType domain.CaseType `json:"case_type"`
}

type caseTypeOption struct {
	Value domain.CaseType `json:"value"`
	Label string          `json:"label"`
}

// Submit handles POST /api/v1/query
// @Summary Ask a legal question
// @Description Stores the question and case type, then submits them. A blank question fails immediately.
// @Tags query
// @Accept json
// @Produce json
// @Success 202 {object} APIResponse "Question submitted"
// @Failure 400 {object} APIResponse "Invalid case type"
// @Failure 415 {object} APIResponse "Body is not JSON"
// @Failure 503 {object} APIResponse "Server shutting down"
// @Router /query [post]
func (h *QueryHandler) Submit(c *gin.Context) {
	if h.flow.Closed() {
		HandleError(c, domain.ErrFlowClosed)
		return
	}
	if c.ContentType() != "application/json" {
		RespondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "send application/json")
		return
	}

	var req struct {
		Question string `json:"question"`
		CaseType string `json:"case_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	caseType, err := domain.ParseCaseType(req.CaseType)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.flow.SetCaseType(caseType); err != nil {
		HandleError(c, err)
		return
	}
	h.flow.SetQuestion(req.Question)

	_ = h.flow.Submit()
	RespondAccepted(c, h.state())
}

// Get handles GET /api/v1/query
func (h *QueryHandler) Get(c *gin.Context) {
	RespondOK(c, h.state())
}

// Reset handles DELETE /api/v1/query
func (h *QueryHandler) Reset(c *gin.Context) {
	h.flow.Reset()
	RespondOK(c, h.state())
}

// CaseTypes handles GET /api/v1/query/case-types
func (h *QueryHandler) CaseTypes(c *gin.Context) {
	options := make([]caseTypeOption, 0, len(domain.CaseTypes))
	for _, ct := range domain.CaseTypes {
		options = append(options, caseTypeOption{Value: ct, Label: ct.Label()})
	}
	RespondOK(c, options)
}

// Export handles GET /api/v1/query/export?format=csv|xlsx
func (h *QueryHandler) Export(c *gin.Context) {
	st := h.flow.State()
	if st.Status != flow.StatusSucceeded || st.Result == nil {
		HandleError(c, domain.ErrNoResult)
		return
	}
	writeExport(c, "legal_answer", "Answer", export.QueryRows(st.Result))
}

func (h *QueryHandler) state() queryStateResponse {
	return queryStateResponse{QueryState: h.flow.State(), Question: h.flow.Question(), CaseType: h.flow.CaseType()}
}
