package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type InstrumentHandler struct {
	BaseHandler
	instrumentService services.InstrumentService
}

func NewInstrumentHandler(instrumentService services.InstrumentService, logger utils.Logger) *InstrumentHandler {
	return &InstrumentHandler{
		BaseHandler:       NewBaseHandler(logger),
		instrumentService: instrumentService,
	}
}

// ListInstruments lists every instrument in the catalog
// @Summary List instruments
// @Tags instruments
// @Produce json
// @Success 200 {array} models.InstrumentSummary
// @Router /instruments [get]
func (h *InstrumentHandler) ListInstruments(c *gin.Context) {
	c.JSON(http.StatusOK, h.instrumentService.List())
}

// GetInstrument returns one instrument with its questions
// @Summary Get instrument
// @Tags instruments
// @Produce json
// @Param id path string true "Instrument ID"
// @Success 200 {object} models.Instrument
// @Failure 404 {object} ErrorResponse
// @Router /instruments/{id} [get]
func (h *InstrumentHandler) GetInstrument(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	instrument, err := h.instrumentService.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, instrument)
}
