package services

import (
	"log/slog"

	"github.com/SAP-F-2025/trait-assessment-service/internal/cache"
	"github.com/SAP-F-2025/trait-assessment-service/internal/catalog"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
)

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Catalog          *catalog.Catalog
	Engine           *scoring.Engine
	Repository       repositories.Repository
	Sessions         cache.SessionStore
	Cache            cache.CacheService
	Publisher        events.EventPublisher
	Validator        *validator.Validator
	Logger           *slog.Logger
	BatchConcurrency int
}

type ServiceManager interface {
	Instrument() InstrumentService
	Session() SessionService
	Evaluation() EvaluationService
	Export() ExportService
}

type serviceManager struct {
	instrument InstrumentService
	session    SessionService
	evaluation EvaluationService
	export     ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		instrument: NewInstrumentService(deps.Catalog),
		session:    NewSessionService(deps.Engine, deps.Sessions, deps.Repository, deps.Publisher, deps.Validator, deps.Logger),
		evaluation: NewEvaluationService(deps.Engine, deps.Repository, deps.Cache, deps.Publisher, deps.Validator, deps.Logger, deps.BatchConcurrency),
		export:     NewExportService(deps.Repository, deps.Logger),
	}
}

func (m *serviceManager) Instrument() InstrumentService {
	return m.instrument
}

func (m *serviceManager) Session() SessionService {
	return m.session
}

func (m *serviceManager) Evaluation() EvaluationService {
	return m.evaluation
}

func (m *serviceManager) Export() ExportService {
	return m.export
}
