// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/staffscope/staffscope/internal/adapters/dataset"
	"github.com/staffscope/staffscope/internal/adapters/email"
	"github.com/staffscope/staffscope/internal/adapters/ingest"
	"github.com/staffscope/staffscope/internal/adapters/pipeline"
	"github.com/staffscope/staffscope/internal/adapters/report"
	"github.com/staffscope/staffscope/internal/domain/idset"
	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/internal/domain/scoring"
	"github.com/staffscope/staffscope/pkg/logger"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// employeeIDPattern accepts digit-only identifiers, matching the dataset.
var employeeIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Service implements the API dependencies for the analytics system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    *dataset.MemStore
	roster   idset.Set
	engine   *scoring.Engine
	pdf      *report.PDFRenderer
	validate *validator.Validate

	// Configuration
	datasetPath      string
	queueSize        int
	workerCount      int
	maxListLimit     int
	sessionSlotLimit int

	// Evaluation sessions; one slot per token, overwritten on resubmission.
	sessMu   sync.RWMutex
	sessions map[string]model.Evaluation

	// State
	started bool

	// Logging
	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDatasetPath sets the employee CSV location.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithQueueSize sets the capacity of the load pipeline queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithWorkerCount sets the number of derivation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithMaxListLimit caps client-supplied list limits.
func WithMaxListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// WithSessionSlotLimit caps the number of concurrent evaluation sessions.
func WithSessionSlotLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.sessionSlotLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source for tenure and report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		datasetPath:      "employee_data.csv",
		queueSize:        10000,
		workerCount:      runtime.NumCPU() * 2,
		maxListLimit:     100,
		sessionSlotLimit: 10000,
		sessions:         make(map[string]model.Evaluation),
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset, runs the derivation pipeline, and builds the
// immutable store. The service is unusable until Start returns nil.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.engine = scoring.New(scoring.WithClock(s.now))
	s.pdf = report.NewPDFRenderer(report.WithClock(s.now))
	s.validate = newCandidateValidator()

	s.logger.Info(ctx, "loading employee dataset", logger.String("path", s.datasetPath))
	loadStart := time.Now()

	res, err := ingest.NewLoader(s.datasetPath, ingest.WithLogger(s.logger.Named("ingest"))).Load(ctx)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	// Productivity normalizes against dataset maxima, so the full row set
	// must be collected before any derivation runs.
	maxima := scoring.CollectMaxima(res.Rows)

	builder := dataset.NewBuilder()
	builder.SetDroppedRows(res.DroppedRows)

	queueSize := s.queueSize
	if queueSize < len(res.Rows) {
		queueSize = len(res.Rows)
	}
	queue := pipeline.NewInMemoryQueue(pipeline.WithCapacity(queueSize))
	deriver := pipeline.DeriverFunc(func(ctx context.Context, rec *model.EmployeeRecord) {
		s.engine.Derive(rec, maxima)
	})
	pool := pipeline.NewPool(s.workerCount, queue, deriver, builder, pipeline.WithWorkerName("derive"))
	pool.Start(ctx)

	for _, row := range res.Rows {
		if !queue.Enqueue(ctx, row) {
			metrics.RecordPipelineEnqueueError()
		}
	}
	_ = queue.Close()
	pool.Wait()

	s.store = builder.Build(ctx)
	s.roster = idset.FromIDs(s.store.IDs(ctx))

	metrics.UpdateDatasetLoadSeconds(time.Since(loadStart).Seconds())
	metrics.UpdatePipelineWorkerCount(s.workerCount)

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("employees", s.store.Count(ctx)),
		logger.Int("dropped", res.DroppedRows),
		logger.Int("workers", s.workerCount),
	)

	return nil
}

// Stop releases the service. The dataset is immutable, so there is nothing
// to flush; stored evaluations are discarded.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.sessMu.Lock()
	s.sessions = make(map[string]model.Evaluation)
	s.sessMu.Unlock()

	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Summary returns the dataset-wide KPI view.
func (s *Service) Summary(ctx context.Context) dataset.Summary {
	return s.store.Summary(ctx)
}

// Employees returns up to limit records in original load order.
func (s *Service) Employees(ctx context.Context, limit int) ([]model.EmployeeRecord, error) {
	all := s.store.All(ctx)
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Employee returns one record with its derived assessment.
func (s *Service) Employee(ctx context.Context, employeeID string) (model.EmployeeRecord, model.Assessment, error) {
	rec, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return model.EmployeeRecord{}, model.Assessment{}, err
	}

	assessment := s.engine.Assess(&rec)
	metrics.RecordAssessment()
	if assessment.HighRisk {
		metrics.RecordHighRiskFlagged()
	}
	return rec, assessment, nil
}

// TopPerformers returns the highest performance scores first.
func (s *Service) TopPerformers(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.store.TopPerformers(ctx, n)
}

// AtRisk returns the lowest satisfaction scores first.
func (s *Service) AtRisk(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.store.AtRisk(ctx, n)
}

// PromotionCandidates returns employees passing the promotion filter.
func (s *Service) PromotionCandidates(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.store.PromotionCandidates(ctx, n)
}

// TrainingNeeds returns employees short on training or performance.
func (s *Service) TrainingNeeds(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.store.TrainingNeeds(ctx, n)
}

// SickLeaveAlerts returns the highest sick day counts first.
func (s *Service) SickLeaveAlerts(ctx context.Context, n int) ([]model.EmployeeRecord, error) {
	return s.store.SickLeaveAlerts(ctx, n)
}

// DepartmentMeans aggregates metric means over the selected departments.
func (s *Service) DepartmentMeans(ctx context.Context, departments []string) []dataset.DepartmentStats {
	return s.store.DepartmentMeans(ctx, departments)
}

// DepartmentWorkbook renders the department selection as an XLSX workbook.
func (s *Service) DepartmentWorkbook(ctx context.Context, departments []string) ([]byte, error) {
	return report.RenderDepartmentWorkbook(s.store.DepartmentMeans(ctx, departments))
}

// EmailDraft builds an outreach draft for one employee.
func (s *Service) EmailDraft(ctx context.Context, employeeID string, scenario email.Scenario, recipient string) (email.Draft, error) {
	rec, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return email.Draft{}, err
	}
	return email.NewDraft(&rec, scenario, recipient)
}

// EvaluateCandidate validates and scores a submission, storing the result
// under the session. An empty token starts a new session.
func (s *Service) EvaluateCandidate(ctx context.Context, sessionToken string, c model.Candidate) (model.Evaluation, string, error) {
	if verr := s.validateCandidate(ctx, &c); verr != nil {
		metrics.RecordEvaluationRejected(verr.Field)
		return model.Evaluation{}, "", verr
	}

	performance, risk, recs := s.engine.Evaluate(&c)
	eval := model.Evaluation{
		ID:              uuid.NewString(),
		CreatedAt:       s.now(),
		Candidate:       c,
		Performance:     performance,
		RiskScore:       risk,
		Recommendations: recs,
	}

	s.sessMu.Lock()
	defer s.sessMu.Unlock()

	if sessionToken == "" {
		sessionToken = uuid.NewString()
	}
	if _, exists := s.sessions[sessionToken]; !exists && len(s.sessions) >= s.sessionSlotLimit {
		return model.Evaluation{}, "", model.ErrSessionLimit
	}
	s.sessions[sessionToken] = eval

	metrics.RecordEvaluation()
	s.logger.Debug(ctx, "candidate evaluated",
		logger.String("evaluationID", eval.ID),
		logger.Float64("performance", performance),
		logger.Float64("risk", risk),
	)
	return eval, sessionToken, nil
}

// EvaluationReport renders the session's stored evaluation as a PDF.
func (s *Service) EvaluationReport(ctx context.Context, sessionToken string) ([]byte, error) {
	s.sessMu.RLock()
	eval, ok := s.sessions[sessionToken]
	s.sessMu.RUnlock()

	if !ok {
		return nil, model.ErrNoEvaluation
	}
	return s.pdf.Render(&eval)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
	}

	if s.started {
		s.sessMu.RLock()
		sessionCount := len(s.sessions)
		s.sessMu.RUnlock()

		stats["totalEmployees"] = s.store.Count(ctx)
		stats["droppedRows"] = s.store.DroppedRows()
		stats["departments"] = len(s.store.Departments(ctx))
		stats["evaluationSessions"] = sessionCount
	}

	return stats
}

// validateCandidate runs structural validation plus the roster duplicate
// check. The returned error names the offending field.
func (s *Service) validateCandidate(ctx context.Context, c *model.Candidate) *model.ValidationError {
	if err := s.validate.Struct(c); err != nil {
		var ferrs validator.ValidationErrors
		if errors.As(err, &ferrs) && len(ferrs) > 0 {
			fe := ferrs[0]
			return model.NewValidationError(fe.Field(), validationMessage(fe))
		}
		return model.NewValidationError("candidate", err.Error())
	}
	if !c.RemoteFrequency.Valid() {
		return model.NewValidationError("remote_frequency", "must be one of Never, Rarely, Sometimes, Often, Always")
	}
	if s.roster.Contains(ctx, c.EmployeeID) {
		return model.NewValidationError("employee_id", "employee ID already exists in dataset")
	}
	return nil
}

// newCandidateValidator registers the digit-only employee ID rule and maps
// field names to their JSON tags for error reporting.
func newCandidateValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("empid", func(fl validator.FieldLevel) bool {
		return employeeIDPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage translates the first failed rule into a client message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "empid":
		return "must contain only digits"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
