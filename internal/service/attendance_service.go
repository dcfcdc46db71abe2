package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/attendance"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/command"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/events"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/observability"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// AttendanceService runs the message processing pipeline and answers the
// dashboard's status queries.
type AttendanceService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	messages   repository.MessageRepository
	cache      repository.StatusCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	locks      *employeeLocker
	now        func() time.Time
}

// AttendanceDependencies bundles collaborators for the pipeline. StatusCache,
// Dispatcher, Metrics and Now are optional.
type AttendanceDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	AttendanceRepo repository.AttendanceRepository
	MessageRepo    repository.MessageRepository
	StatusCache    repository.StatusCache
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Now            func() time.Time
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		employees:  deps.EmployeeRepo,
		attendance: deps.AttendanceRepo,
		messages:   deps.MessageRepo,
		cache:      deps.StatusCache,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		locks:      newEmployeeLocker(),
		now:        now,
	}
}

// Receive stores a webhook delivery as an InboundMessage and runs the
// pipeline over it. Re-deliveries carrying a known external id are answered
// from the stored message instead of creating a duplicate.
func (s *AttendanceService) Receive(ctx context.Context, externalID, phone, body string) (*domain.InboundMessage, error) {
	if externalID != "" {
		existing, err := s.messages.GetByExternalID(ctx, externalID)
		if err != nil {
			return nil, apperrors.NewStorageFailure(err)
		}
		if existing != nil {
			return s.ProcessMessage(ctx, existing)
		}
	} else {
		externalID = uuid.NewString()
	}

	msg := &domain.InboundMessage{
		ExternalID: externalID,
		Phone:      phone,
		Body:       body,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return s.ProcessMessage(ctx, msg)
}

// ProcessMessage consumes one inbound message: resolves the sender, parses
// the command, validates the transition and appends the attendance event
// together with the processed flag in one transaction. Locally recovered
// outcomes (unknown sender, unrecognized command, invalid transition) still
// consume the message and answer with an explanatory reply. Storage errors
// leave the message unprocessed and surface to the caller for retry.
func (s *AttendanceService) ProcessMessage(ctx context.Context, msg *domain.InboundMessage) (*domain.InboundMessage, error) {
	stored, err := s.messages.GetByID(ctx, msg.ID)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	if stored.Processed {
		s.recordOutcome("duplicate")
		return stored, nil
	}
	msg = stored

	employee, err := s.employees.GetByPhone(ctx, msg.Phone)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	if employee == nil || !employee.IsActive {
		return s.reject(ctx, msg, "unknown_sender", unknownSenderReply())
	}

	kind, ok := command.Parse(msg.Body)
	if !ok {
		return s.reject(ctx, msg, "unrecognized_command", helpReply())
	}

	unlock := s.locks.lock(employee.ID)
	defer unlock()

	latest, err := s.attendance.Latest(ctx, employee.ID)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	snapshot := attendance.Resolve(latest)
	if !attendance.AllowsCommand(snapshot.Status, kind) {
		return s.reject(ctx, msg, "invalid_transition", invalidTransitionReply(kind, snapshot.Status))
	}

	occurredAt := s.now()
	reply := confirmationReply(employee.Name, kind, occurredAt)
	event := &domain.AttendanceEvent{
		EmployeeID: employee.ID,
		Kind:       kind,
		Timestamp:  occurredAt,
	}
	if err := s.attendance.RecordOutcome(ctx, event, msg.ID, reply); err != nil {
		if errors.Is(err, repository.ErrMessageAlreadyProcessed) {
			s.recordOutcome("duplicate")
			return s.messages.GetByID(ctx, msg.ID)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, employee.ID)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventAttendanceRecorded,
		MessageID: msg.ID,
		Payload: events.AttendanceRecordedPayload{
			EmployeeID: employee.ID,
			Phone:      msg.Phone,
			Kind:       kind,
			OccurredAt: occurredAt,
			Response:   reply,
		},
	})
	s.recordOutcome("recorded")
	s.logger.Info("attendance recorded",
		zap.Int64("employee_id", employee.ID),
		zap.String("kind", string(kind)),
		zap.Int64("message_id", msg.ID),
	)

	msg.Processed = true
	msg.Response = &reply
	msg.Command = &kind
	return msg, nil
}

// reject consumes the message with an explanatory reply and no event.
func (s *AttendanceService) reject(ctx context.Context, msg *domain.InboundMessage, reason, reply string) (*domain.InboundMessage, error) {
	if err := s.messages.MarkProcessed(ctx, msg.ID, reply); err != nil {
		if errors.Is(err, repository.ErrMessageAlreadyProcessed) {
			s.recordOutcome("duplicate")
			return s.messages.GetByID(ctx, msg.ID)
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventMessageRejected,
		MessageID: msg.ID,
		Payload: events.MessageRejectedPayload{
			Phone:    msg.Phone,
			Reason:   reason,
			Response: reply,
		},
	})
	s.recordOutcome(reason)
	s.logger.Info("message rejected",
		zap.String("reason", reason),
		zap.Int64("message_id", msg.ID),
	)

	msg.Processed = true
	msg.Response = &reply
	return msg, nil
}

// ProcessPending drains messages left unprocessed, e.g. after a storage
// outage. Failing messages stay unprocessed and are retried on the next run.
func (s *AttendanceService) ProcessPending(ctx context.Context, limit int) (int, error) {
	pending, err := s.messages.ListUnprocessed(ctx, limit)
	if err != nil {
		return 0, apperrors.NewStorageFailure(err)
	}

	processed := 0
	for i := range pending {
		if _, err := s.ProcessMessage(ctx, &pending[i]); err != nil {
			s.logger.Warn("pending message retry failed",
				zap.Int64("message_id", pending[i].ID),
				zap.Error(err),
			)
			continue
		}
		processed++
	}
	return processed, nil
}

// EmployeeStatus returns the derived presence snapshot for one employee.
func (s *AttendanceService) EmployeeStatus(ctx context.Context, employeeID int64) (*domain.EmployeeWithStatus, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.snapshotFor(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	return &domain.EmployeeWithStatus{Employee: *employee, Snapshot: snapshot}, nil
}

// AllEmployeeStatuses projects the whole roster for the dashboard.
func (s *AttendanceService) AllEmployeeStatuses(ctx context.Context) ([]domain.EmployeeWithStatus, error) {
	employees, err := s.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.EmployeeWithStatus, 0, len(employees))
	for i := range employees {
		snapshot, err := s.snapshotFor(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.EmployeeWithStatus{Employee: employees[i], Snapshot: snapshot})
	}
	return result, nil
}

func (s *AttendanceService) snapshotFor(ctx context.Context, employeeID int64) (domain.StatusSnapshot, error) {
	if s.cache != nil {
		if snapshot, ok := s.cache.Get(ctx, employeeID); ok {
			return *snapshot, nil
		}
	}
	latest, err := s.attendance.Latest(ctx, employeeID)
	if err != nil {
		return domain.StatusSnapshot{}, err
	}
	snapshot := attendance.Resolve(latest)
	if s.cache != nil {
		s.cache.Set(ctx, employeeID, snapshot)
	}
	return snapshot, nil
}

// Stats aggregates dashboard counters.
func (s *AttendanceService) Stats(ctx context.Context) (*domain.Stats, error) {
	active, err := s.employees.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	processed, err := s.messages.CountProcessed(ctx)
	if err != nil {
		return nil, err
	}

	statuses, err := s.AllEmployeeStatuses(ctx)
	if err != nil {
		return nil, err
	}
	present, onBreak := 0, 0
	for _, entry := range statuses {
		switch entry.Snapshot.Status {
		case domain.StatusWorking:
			present++
		case domain.StatusOnBreak:
			present++
			onBreak++
		}
	}

	return &domain.Stats{
		ActiveEmployees:   active,
		PresentToday:      present,
		OnBreak:           onBreak,
		MessagesProcessed: processed,
	}, nil
}

// AttendanceRecords lists events, optionally filtered by employee and day.
func (s *AttendanceService) AttendanceRecords(ctx context.Context, filter repository.AttendanceFilter) ([]domain.AttendanceEvent, error) {
	return s.attendance.List(ctx, filter)
}

// RecentMessages lists the latest inbound messages for the dashboard log.
func (s *AttendanceService) RecentMessages(ctx context.Context, limit int) ([]domain.InboundMessage, error) {
	return s.messages.ListRecent(ctx, limit)
}

func (s *AttendanceService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func (s *AttendanceService) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordPipelineOutcome(outcome)
	}
}
