package services

import (
	"github.com/SAP-F-2025/trait-assessment-service/internal/catalog"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
)

type InstrumentService interface {
	List() []models.InstrumentSummary
	Get(id string) (*models.Instrument, error)
}

type instrumentService struct {
	catalog *catalog.Catalog
}

func NewInstrumentService(c *catalog.Catalog) InstrumentService {
	return &instrumentService{catalog: c}
}

func (s *instrumentService) List() []models.InstrumentSummary {
	return s.catalog.Summaries()
}

func (s *instrumentService) Get(id string) (*models.Instrument, error) {
	return s.catalog.GetInstrument(id)
}
