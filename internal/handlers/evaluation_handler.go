package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
	exportService     services.ExportService
}

func NewEvaluationHandler(
	evaluationService services.EvaluationService,
	exportService services.ExportService,
	logger utils.Logger,
) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
		exportService:     exportService,
	}
}

type BatchEvaluateRequest struct {
	Requests []*services.EvaluateRequest `json:"requests"`
}

// Evaluate scores a complete answer set in one call
// @Summary Evaluate answers
// @Tags evaluations
// @Accept json
// @Produce json
// @Param evaluation body services.EvaluateRequest true "Answers"
// @Success 200 {object} services.EvaluationResponse
// @Success 201 {object} services.EvaluationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /evaluations [post]
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}
	if req.CounselorID == "" {
		req.CounselorID = h.extractUserID(c)
	}

	result, err := h.evaluationService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Persisted {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// EvaluateBatch scores several answer sets in parallel
// @Summary Evaluate batch
// @Tags evaluations
// @Accept json
// @Produce json
// @Param batch body BatchEvaluateRequest true "Batch"
// @Success 200 {array} services.EvaluationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /evaluations/batch [post]
func (h *EvaluationHandler) EvaluateBatch(c *gin.Context) {
	var req BatchEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondInvalidPayload(c, err)
		return
	}

	counselorID := h.extractUserID(c)
	for _, r := range req.Requests {
		if r != nil && r.CounselorID == "" {
			r.CounselorID = counselorID
		}
	}

	h.LogRequest(c, "Evaluating batch", "size", len(req.Requests))

	results, err := h.evaluationService.EvaluateBatch(c.Request.Context(), req.Requests)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetEvaluation returns a stored evaluation
// @Summary Get evaluation
// @Tags evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} services.EvaluationResponse
// @Failure 404 {object} ErrorResponse
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	result, err := h.evaluationService.GetResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListStudentEvaluations lists a student's stored evaluations
// @Summary List student evaluations
// @Tags evaluations
// @Produce json
// @Param student_id path string true "Student ID"
// @Param instrument_id query string false "Instrument filter"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} services.EvaluationListResponse
// @Router /students/{student_id}/evaluations [get]
func (h *EvaluationHandler) ListStudentEvaluations(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	list, err := h.evaluationService.ListByStudent(c.Request.Context(), studentID, parseEvaluationFilters(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// ExportStudentEvaluations downloads a student's evaluations as a workbook
// @Summary Export student evaluations
// @Tags evaluations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param student_id path string true "Student ID"
// @Success 200 {file} file
// @Router /students/{student_id}/evaluations/export [get]
func (h *EvaluationHandler) ExportStudentEvaluations(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	data, err := h.exportService.ExportStudentResults(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("evaluations-%s-%s.xlsx", studentID, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
