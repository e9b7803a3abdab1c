package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/cache"
	"github.com/SAP-F-2025/trait-assessment-service/internal/catalog"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/models"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockEvaluationRepository is a mock implementation of EvaluationRepository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Create(ctx context.Context, tx *gorm.DB, evaluation *models.Evaluation) error {
	args := m.Called(ctx, tx, evaluation)
	return args.Error(0)
}

func (m *MockEvaluationRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Evaluation, error) {
	args := m.Called(ctx, tx, id)
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*models.Evaluation, error) {
	args := m.Called(ctx, tx, sessionID)
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	args := m.Called(ctx, tx, studentID, filters)
	return args.Get(0).([]*models.Evaluation), args.Get(1).(int64), args.Error(2)
}

// MockRepository is a mock implementation of the Repository aggregate
type MockRepository struct {
	evaluations *MockEvaluationRepository
}

func (m *MockRepository) Evaluation() repositories.EvaluationRepository { return m.evaluations }
func (m *MockRepository) DB() *gorm.DB                                 { return nil }

// memorySessionStore keeps sessions as JSON so callers never share state.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: make(map[string][]byte)}
}

func (s *memorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; ok {
		return cache.ErrConflict
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.ID] = data
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(id)
}

func (s *memorySessionStore) Update(_ context.Context, id string, fn func(*models.Session) error) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	s.sessions[id] = data
	return session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return cache.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) load(id string) (*models.Session, error) {
	data, ok := s.sessions[id]
	if !ok {
		return nil, cache.ErrNotFound
	}
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.Responses == nil {
		session.Responses = models.ResponseSet{}
	}
	return &session, nil
}

// memoryCache is an in-process CacheService that counts lookups.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	if !ok {
		return cache.ErrNotFound
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) DeletePattern(context.Context, string) error {
	return nil
}

type testEnv struct {
	catalog   *catalog.Catalog
	engine    *scoring.Engine
	repo      *MockEvaluationRepository
	store     *memorySessionStore
	cache     *memoryCache
	publisher *events.MockEventPublisher
	manager   ServiceManager
}

func newTestEnv(t *testing.T, opts scoring.Options) *testEnv {
	t.Helper()

	v := validator.New()
	c, err := catalog.Load(v)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		catalog:   c,
		engine:    scoring.NewEngine(c, opts),
		repo:      &MockEvaluationRepository{},
		store:     newMemorySessionStore(),
		cache:     newMemoryCache(),
		publisher: events.NewMockEventPublisher(logger),
	}
	env.manager = NewServiceManager(Dependencies{
		Catalog:          c,
		Engine:           env.engine,
		Repository:       &MockRepository{evaluations: env.repo},
		Sessions:         env.store,
		Cache:            env.cache,
		Publisher:        env.publisher,
		Validator:        v,
		Logger:           logger,
		BatchConcurrency: 3,
	})
	return env
}

func eventTypes(p *events.MockEventPublisher) []events.EventType {
	var out []events.EventType
	for _, e := range p.GetPublishedEvents() {
		out = append(out, e.Type)
	}
	return out
}
