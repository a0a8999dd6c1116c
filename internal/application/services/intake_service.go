package services

import (
	"context"
	"errors"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/domain/repositories"
	"github.com/JastejS28/intel3/internal/infrastructure/observability"
	apperrors "github.com/JastejS28/intel3/pkg/errors"
)

// DegradedWaitMinutes is the minimal wait estimate shown when a submitted
// patient cannot be located in the live snapshot (external register reset).
// The patient has already been physically checked in; the view must degrade,
// never dead-end.
const DegradedWaitMinutes = 5

// IntakeService orchestrates the check-in pipeline: validation, scoring,
// queue registration and response assembly. The pipeline is a strict
// sequence because the registration payload requires the score's output.
//
// Per-session state machine:
//
//	Unsubmitted -> Validating -> Scoring -> Registering -> Registered
//
// with any state able to fail. A submitted session never re-enters the
// pipeline; it only re-reads queue state for its patient id.
type IntakeService struct {
	scorer   providers.ScorerProvider
	queue    providers.QueueRegister
	sessions repositories.SessionRepository
	audit    repositories.IntakeAuditRepository
	eventBus providers.EventBus
	metrics  *observability.Metrics
}

// NewIntakeService creates a new intake service. Audit repository, event bus
// and metrics are optional; the pipeline works without them.
func NewIntakeService(
	scorer providers.ScorerProvider,
	queue providers.QueueRegister,
	sessions repositories.SessionRepository,
) *IntakeService {
	return &IntakeService{
		scorer:   scorer,
		queue:    queue,
		sessions: sessions,
	}
}

// SetAuditRepository wires the optional intake audit store.
func (s *IntakeService) SetAuditRepository(audit repositories.IntakeAuditRepository) {
	s.audit = audit
}

// SetEventBus wires the optional queue update event bus.
func (s *IntakeService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics wires the optional application metrics.
func (s *IntakeService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// CheckIn processes one submission for the given session. Submitting an
// already-submitted session is not an error: it returns the patient's
// current projected state without touching the scorer or the register.
func (s *IntakeService) CheckIn(ctx context.Context, sessionID string, req *entities.IntakeRequest) (*entities.Patient, error) {
	logger := observability.SessionLogger(ctx, sessionID)
	start := time.Now()

	marker, err := s.getMarker(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if marker.Submitted {
		logger.Info().Str("patient_id", marker.PatientID).
			Msg("session already submitted, returning live queue state")
		return s.readBack(ctx, marker.PatientID)
	}

	if err := s.sessions.BeginSubmission(ctx, sessionID); err != nil {
		if errors.Is(err, repositories.ErrSubmissionInProgress) {
			return nil, apperrors.NewConflictError("a submission for this session is already in progress")
		}
		return nil, apperrors.NewInternalError("failed to serialize submission", err)
	}
	defer func() {
		if err := s.sessions.EndSubmission(ctx, sessionID); err != nil {
			logger.Warn().Err(err).Msg("failed to release submission lock")
		}
	}()

	// Re-read under the lock; a concurrent submission may have completed
	// between the first read and taking the lock.
	marker, err = s.getMarker(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if marker.Submitted {
		return s.readBack(ctx, marker.PatientID)
	}

	// Validating
	if req == nil || req.VitalSigns == nil {
		s.logAudit(ctx, sessionID, "", entities.IntakeOutcomeMissingVitals, nil, 0, start)
		return nil, apperrors.NewMissingVitalsError("vital signs are required")
	}
	vitals := req.VitalSigns.Normalize()

	// Scoring. A score stashed by a previous attempt that failed at
	// registration is reused as-is: re-scoring between attempts could move
	// the patient's priority.
	score := marker.PendingScore
	if score == nil {
		scoringStart := time.Now()
		score, err = s.scorer.Score(ctx, vitals)
		observability.RecordScoringMetric(ctx, s.metrics, time.Since(scoringStart), err == nil)
		if err != nil {
			logger.Error().Err(err).Msg("scoring failed, intake aborted")
			s.logAudit(ctx, sessionID, "", entities.IntakeOutcomeScoringUnavailable, nil, 0, start)
			observability.RecordIntakeMetric(ctx, s.metrics, entities.IntakeOutcomeScoringUnavailable)
			return nil, err
		}
	}

	// The patient id is generated once per check-in and reused on retries,
	// so the register never sees two entries for one session.
	patientID := marker.PatientID
	if patientID == "" {
		patientID = entities.NewPatientID(time.Now())
	}

	pending := &entities.SessionMarker{PatientID: patientID, PendingScore: score}
	if err := s.sessions.Save(ctx, sessionID, pending); err != nil {
		return nil, apperrors.NewInternalError("failed to persist session state", err)
	}

	// Registering
	createdAt := time.Now()
	placement, err := s.queue.Append(ctx, providers.QueueEntry{
		PatientID:     patientID,
		Name:          req.FullName,
		Age:           entities.NormalizeAge(req.Age),
		Gender:        entities.NormalizeGender(req.Gender),
		PriorityScore: score.PriorityScore,
		Vitals:        vitals,
		Timestamp:     createdAt,
	})
	if err != nil {
		logger.Error().Err(err).Str("patient_id", patientID).
			Msg("queue registration failed, score retained for retry")
		s.logAudit(ctx, sessionID, patientID, entities.IntakeOutcomeRegistrationUnavailable, score, 0, start)
		observability.RecordRegistrationFailure(ctx, s.metrics)
		observability.RecordIntakeMetric(ctx, s.metrics, entities.IntakeOutcomeRegistrationUnavailable)
		return nil, err
	}

	// Registered
	submitted := &entities.SessionMarker{Submitted: true, PatientID: patientID}
	if err := s.sessions.Save(ctx, sessionID, submitted); err != nil {
		// The patient is in the queue; losing the marker only risks the
		// idempotent read path, so log and keep going.
		logger.Warn().Err(err).Msg("failed to mark session submitted")
	}

	patient := &entities.Patient{
		ID:                patientID,
		Name:              req.FullName,
		Age:               entities.NormalizeAge(req.Age),
		Gender:            entities.NormalizeGender(req.Gender),
		Vitals:            vitals,
		PriorityScore:     score.PriorityScore,
		RiskLevel:         score.Tier(),
		QueuePosition:     placement.QueuePosition,
		EstimatedWaitTime: placement.EstimatedWaitTime,
		CreatedAt:         createdAt,
	}

	s.publishRegistered(ctx, patient)
	s.logAudit(ctx, sessionID, patientID, entities.IntakeOutcomeRegistered, score, placement.QueuePosition, start)
	observability.RecordIntakeMetric(ctx, s.metrics, entities.IntakeOutcomeRegistered)

	logger.Info().
		Str("patient_id", patientID).
		Float64("priority_score", score.PriorityScore).
		Str("risk_level", string(patient.RiskLevel)).
		Int("queue_position", placement.QueuePosition).
		Msg("patient registered")

	return patient, nil
}

// QueueStatus returns the session's current projected state. It is the
// read-only path taken by submitted sessions.
func (s *IntakeService) QueueStatus(ctx context.Context, sessionID string) (*entities.Patient, error) {
	marker, err := s.getMarker(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !marker.Submitted {
		return nil, apperrors.NewNotFoundError("no submission recorded for this session")
	}
	return s.readBack(ctx, marker.PatientID)
}

// GetPatient returns one patient's current projected state by id. Unlike the
// session read path, an unknown id here is a hard not-found.
func (s *IntakeService) GetPatient(ctx context.Context, patientID string) (*entities.Patient, error) {
	snapshot, err := s.queue.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range snapshot {
		if record.ID == patientID {
			patient := projectPatient(record)
			return &patient, nil
		}
	}
	return nil, apperrors.NewNotFoundError("patient not found in queue")
}

func (s *IntakeService) getMarker(ctx context.Context, sessionID string) (*entities.SessionMarker, error) {
	marker, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read session state", err)
	}
	if marker == nil {
		marker = &entities.SessionMarker{}
	}
	return marker, nil
}

// ClearSession restarts intake for the session.
func (s *IntakeService) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// readBack assembles a submitted patient's current state from the live
// snapshot, degrading to placeholder fields rather than failing the view.
func (s *IntakeService) readBack(ctx context.Context, patientID string) (*entities.Patient, error) {
	logger := observability.LoggerFromContext(ctx)

	snapshot, err := s.queue.List(ctx)
	if err != nil {
		// The patient is already checked in; show the minimal degraded
		// state instead of an error the kiosk cannot act on.
		logger.Warn().Err(err).Str("patient_id", patientID).Msg("queue read failed, returning degraded state")
		return &entities.Patient{
			ID:                patientID,
			QueuePosition:     1,
			EstimatedWaitTime: DegradedWaitMinutes,
		}, nil
	}

	for _, record := range snapshot {
		if record.ID == patientID {
			patient := projectPatient(record)
			return &patient, nil
		}
	}

	logger.Warn().Str("patient_id", patientID).Int("queue_length", len(snapshot)).
		Msg("submitted patient absent from snapshot, returning placeholder position")
	return &entities.Patient{
		ID:                patientID,
		QueuePosition:     len(snapshot) + 1,
		EstimatedWaitTime: DegradedWaitMinutes,
	}, nil
}

// projectPatient maps one register record into the unified patient shape,
// resolving the risk tier with the same rule used everywhere else.
func projectPatient(record entities.QueuedPatient) entities.Patient {
	return entities.Patient{
		ID:                record.ID,
		Name:              record.Name,
		Age:               record.Age,
		Gender:            record.Gender,
		PriorityScore:     record.PriorityScore,
		RiskLevel:         entities.ResolveRiskLevel(record.RiskLevel, record.PriorityScore),
		QueuePosition:     record.QueuePosition,
		EstimatedWaitTime: record.EstimatedWaitTime,
		CreatedAt:         record.Timestamp,
	}
}

func (s *IntakeService) publishRegistered(ctx context.Context, patient *entities.Patient) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewQueueEvent(
		entities.QueueEventTypePatientRegistered,
		patient.ID,
		patient.QueuePosition,
		0,
	)
	if err := s.eventBus.Publish(ctx, providers.EventChannelQueueUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to publish queue event")
	}
}

func (s *IntakeService) logAudit(ctx context.Context, sessionID, patientID, outcome string, score *entities.ScoreResult, position int, start time.Time) {
	if s.audit == nil {
		return
	}
	event := &entities.IntakeEvent{
		SessionID:     sessionID,
		PatientID:     patientID,
		Outcome:       outcome,
		QueuePosition: position,
		LatencyMs:     int(time.Since(start).Milliseconds()),
	}
	if score != nil {
		event.PriorityScore = score.PriorityScore
		event.RiskLevel = string(score.Tier())
	}
	if err := s.audit.LogEvent(ctx, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to log intake audit event")
	}
}
