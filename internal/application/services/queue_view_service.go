package services

import (
	"context"
	"time"

	"github.com/JastejS28/intel3/internal/domain/entities"
	"github.com/JastejS28/intel3/internal/domain/providers"
	"github.com/JastejS28/intel3/internal/infrastructure/observability"
)

// QueueViewService projects register snapshots into display-ready views.
// It never reorders: the external register owns ordering, and a client-side
// re-sort could disagree with the authoritative sequence on score ties.
type QueueViewService struct {
	queue   providers.QueueRegister
	metrics *observability.Metrics
}

// NewQueueViewService creates a new queue view service.
func NewQueueViewService(queue providers.QueueRegister) *QueueViewService {
	return &QueueViewService{queue: queue}
}

// SetMetrics wires the optional application metrics.
func (s *QueueViewService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Snapshot returns the register's current ordered contents.
func (s *QueueViewService) Snapshot(ctx context.Context) ([]entities.QueuedPatient, error) {
	start := time.Now()
	snapshot, err := s.queue.List(ctx)
	observability.RecordQueueReadMetric(ctx, s.metrics, time.Since(start))
	return snapshot, err
}

// View fetches a snapshot and projects it for the given viewer. An empty
// viewerID projects an anonymous view (no row highlighted, PatientFound
// false).
func (s *QueueViewService) View(ctx context.Context, viewerID string) (*entities.QueueView, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	view := Project(snapshot, viewerID)
	return view, nil
}

// Project maps a snapshot into a view for one viewer. Every row's tier is
// resolved with the shared label-or-score rule so the viewer's own row is
// never styled differently from how it appears to everyone else. When the
// viewer is absent the view degrades to a tail placeholder position.
func Project(snapshot []entities.QueuedPatient, viewerID string) *entities.QueueView {
	view := &entities.QueueView{
		Rows: make([]entities.QueueRow, 0, len(snapshot)),
	}

	for _, record := range snapshot {
		row := entities.QueueRow{
			ID:                record.ID,
			Name:              record.Name,
			PriorityScore:     record.PriorityScore,
			RiskLevel:         entities.ResolveRiskLevel(record.RiskLevel, record.PriorityScore),
			QueuePosition:     record.QueuePosition,
			EstimatedWaitTime: record.EstimatedWaitTime,
			Timestamp:         record.Timestamp,
		}
		if viewerID != "" && record.ID == viewerID {
			row.IsViewer = true
			view.PatientFound = true
			view.QueuePosition = record.QueuePosition
			view.EstimatedWaitTime = record.EstimatedWaitTime
			view.RiskLevel = row.RiskLevel
			view.PriorityScore = record.PriorityScore
		}
		view.Rows = append(view.Rows, row)
	}

	if viewerID != "" && !view.PatientFound {
		view.QueuePosition = len(snapshot) + 1
		view.EstimatedWaitTime = DegradedWaitMinutes
	}

	return view
}
