package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[int64]*domain.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[int64]*domain.Employee{}}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	employee.ID = r.nextID
	employee.CreatedAt = time.Now()
	clone := *employee
	r.employees[employee.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *employee
	r.employees[employee.ID] = &clone
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[id]
	if !ok {
		return nil, errors.New("employee not found")
	}
	clone := *employee
	return &clone, nil
}

func (r *fakeEmployeeRepo) GetByPhone(_ context.Context, phone string) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, employee := range r.employees {
		if employee.Phone == phone {
			clone := *employee
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Employee, 0, len(r.employees))
	for id := int64(1); id <= r.nextID; id++ {
		if employee, ok := r.employees[id]; ok {
			result = append(result, *employee)
		}
	}
	return result, nil
}

func (r *fakeEmployeeRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, employee := range r.employees {
		if employee.IsActive {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[int64]*domain.InboundMessage
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[int64]*domain.InboundMessage{}}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.InboundMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = r.nextID
	message.ReceivedAt = time.Now()
	clone := *message
	r.messages[message.ID] = &clone
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.InboundMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return nil, errors.New("message not found")
	}
	clone := *message
	return &clone, nil
}

func (r *fakeMessageRepo) GetByExternalID(_ context.Context, externalID string) (*domain.InboundMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages {
		if message.ExternalID == externalID {
			clone := *message
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) MarkProcessed(_ context.Context, id int64, response string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.consumeLocked(id, response, nil)
}

// consumeLocked applies the processed flag under the repo lock; callers hold mu.
func (r *fakeMessageRepo) consumeLocked(id int64, response string, command *domain.EventKind) error {
	message, ok := r.messages[id]
	if !ok {
		return errors.New("message not found")
	}
	if message.Processed {
		return repository.ErrMessageAlreadyProcessed
	}
	message.Processed = true
	message.Response = &response
	message.Command = command
	return nil
}

func (r *fakeMessageRepo) ListUnprocessed(_ context.Context, limit int) ([]domain.InboundMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.InboundMessage
	for id := int64(1); id <= r.nextID; id++ {
		message, ok := r.messages[id]
		if !ok || message.Processed {
			continue
		}
		result = append(result, *message)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) ListRecent(_ context.Context, limit int) ([]domain.InboundMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.InboundMessage
	for id := r.nextID; id >= 1; id-- {
		if message, ok := r.messages[id]; ok {
			result = append(result, *message)
		}
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) CountProcessed(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, message := range r.messages {
		if message.Processed {
			count++
		}
	}
	return count, nil
}

type fakeAttendanceRepo struct {
	mu       sync.Mutex
	events   []domain.AttendanceEvent
	nextID   int64
	messages *fakeMessageRepo
	failWith error
}

func newFakeAttendanceRepo(messages *fakeMessageRepo) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{messages: messages}
}

func (r *fakeAttendanceRepo) Latest(_ context.Context, employeeID int64) (*domain.AttendanceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].EmployeeID == employeeID {
			clone := r.events[i]
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter repository.AttendanceFilter) ([]domain.AttendanceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.AttendanceEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		event := r.events[i]
		if filter.EmployeeID != nil && event.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, event)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func (r *fakeAttendanceRepo) RecordOutcome(_ context.Context, event *domain.AttendanceEvent, messageID int64, response string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}

	r.messages.mu.Lock()
	defer r.messages.mu.Unlock()
	kind := event.Kind
	if err := r.messages.consumeLocked(messageID, response, &kind); err != nil {
		return err
	}

	r.nextID++
	event.ID = r.nextID
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeAttendanceRepo) eventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fixture struct {
	service    *service.AttendanceService
	employees  *fakeEmployeeRepo
	attendance *fakeAttendanceRepo
	messages   *fakeMessageRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	employees := newFakeEmployeeRepo()
	messages := newFakeMessageRepo()
	attendance := newFakeAttendanceRepo(messages)
	svc := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employees,
		AttendanceRepo: attendance,
		MessageRepo:    messages,
	})
	return &fixture{service: svc, employees: employees, attendance: attendance, messages: messages}
}

func (f *fixture) addEmployee(t *testing.T, name, phone string, active bool) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{Name: name, Phone: phone, Department: "Operações", IsActive: active}
	if err := f.employees.Create(context.Background(), employee); err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return employee
}

func (f *fixture) receive(t *testing.T, externalID, phone, body string) *domain.InboundMessage {
	t.Helper()
	msg, err := f.service.Receive(context.Background(), externalID, phone, body)
	if err != nil {
		t.Fatalf("receive %q from %s: %v", body, phone, err)
	}
	return msg
}

func TestProcessMessageClockIn(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)

	msg := f.receive(t, "wamid-1", ana.Phone, "entrada")

	if !msg.Processed {
		t.Fatal("expected message to be processed")
	}
	if msg.Command == nil || *msg.Command != domain.EventClockIn {
		t.Fatalf("expected clock_in command, got %v", msg.Command)
	}
	if msg.Response == nil || !strings.Contains(*msg.Response, "entrada registada") {
		t.Fatalf("unexpected response %v", msg.Response)
	}
	if got := f.attendance.eventCount(); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}

	status, err := f.service.EmployeeStatus(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("employee status: %v", err)
	}
	if status.Snapshot.Status != domain.StatusWorking {
		t.Fatalf("expected working, got %s", status.Snapshot.Status)
	}
	if status.Snapshot.ClockInTime == "" {
		t.Fatal("expected clock-in time to be set")
	}
}

func TestProcessMessageFullDay(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)
	ctx := context.Background()

	steps := []struct {
		body   string
		status domain.Status
	}{
		{"entrada", domain.StatusWorking},
		{"pausa", domain.StatusOnBreak},
		{"volta", domain.StatusWorking},
		{"SAÍDA", domain.StatusOffDuty},
	}
	for i, step := range steps {
		f.receive(t, fmt.Sprintf("wamid-%d", i), ana.Phone, step.body)

		status, err := f.service.EmployeeStatus(ctx, ana.ID)
		if err != nil {
			t.Fatalf("status after %q: %v", step.body, err)
		}
		if status.Snapshot.Status != step.status {
			t.Fatalf("after %q expected %s, got %s", step.body, step.status, status.Snapshot.Status)
		}
	}
	if got := f.attendance.eventCount(); got != len(steps) {
		t.Fatalf("expected %d events, got %d", len(steps), got)
	}
}

func TestProcessMessageInvalidTransition(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)

	msg := f.receive(t, "wamid-1", ana.Phone, "volta")

	if !msg.Processed {
		t.Fatal("expected rejected message to be consumed")
	}
	if msg.Command != nil {
		t.Fatalf("expected no command on rejection, got %v", *msg.Command)
	}
	if msg.Response == nil || !strings.Contains(*msg.Response, "Não é possível registar volta") {
		t.Fatalf("unexpected response %v", msg.Response)
	}
	if got := f.attendance.eventCount(); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}

func TestProcessMessageUnknownSender(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "Ana", "+351910000001", true)

	msg := f.receive(t, "wamid-1", "+550000000", "entrada")

	if !msg.Processed {
		t.Fatal("expected message to be consumed")
	}
	if msg.Response == nil || !strings.Contains(*msg.Response, "Número não registado") {
		t.Fatalf("unexpected response %v", msg.Response)
	}
	if got := f.attendance.eventCount(); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}

func TestProcessMessageInactiveSenderTreatedAsUnknown(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", false)

	msg := f.receive(t, "wamid-1", ana.Phone, "entrada")

	if msg.Response == nil || !strings.Contains(*msg.Response, "Número não registado") {
		t.Fatalf("unexpected response %v", msg.Response)
	}
	if got := f.attendance.eventCount(); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}

func TestProcessMessageUnrecognizedCommand(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)

	msg := f.receive(t, "wamid-1", ana.Phone, "xyz123")

	if !msg.Processed {
		t.Fatal("expected message to be consumed")
	}
	if msg.Response == nil || !strings.Contains(*msg.Response, "Comando não reconhecido") {
		t.Fatalf("unexpected response %v", msg.Response)
	}
	if got := f.attendance.eventCount(); got != 0 {
		t.Fatalf("expected no events, got %d", got)
	}
}

func TestReceiveRedeliveryIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)

	first := f.receive(t, "wamid-1", ana.Phone, "entrada")
	second := f.receive(t, "wamid-1", ana.Phone, "entrada")

	if got := f.attendance.eventCount(); got != 1 {
		t.Fatalf("expected 1 event after redelivery, got %d", got)
	}
	if second.ID != first.ID {
		t.Fatalf("expected redelivery to resolve to message %d, got %d", first.ID, second.ID)
	}
	if second.Response == nil || first.Response == nil || *second.Response != *first.Response {
		t.Fatalf("expected stored response to be replayed, got %v vs %v", second.Response, first.Response)
	}
}

func TestReceiveGeneratesExternalID(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)

	msg := f.receive(t, "", ana.Phone, "entrada")

	if msg.ExternalID == "" {
		t.Fatal("expected a generated external id")
	}
	if !msg.Processed {
		t.Fatal("expected message to be processed")
	}
}

func TestStorageFailureLeavesMessageRetryable(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)
	ctx := context.Background()

	f.attendance.failWith = errors.New("connection refused")
	if _, err := f.service.Receive(ctx, "wamid-1", ana.Phone, "entrada"); err == nil {
		t.Fatal("expected storage failure to surface")
	}

	pending, err := f.messages.ListUnprocessed(ctx, 10)
	if err != nil {
		t.Fatalf("list unprocessed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 retryable message, got %d", len(pending))
	}
	if got := f.attendance.eventCount(); got != 0 {
		t.Fatalf("expected no events after failure, got %d", got)
	}

	f.attendance.failWith = nil
	processed, err := f.service.ProcessPending(ctx, 10)
	if err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if processed != 1 {
		t.Fatalf("expected 1 processed, got %d", processed)
	}
	if got := f.attendance.eventCount(); got != 1 {
		t.Fatalf("expected 1 event after retry, got %d", got)
	}

	status, err := f.service.EmployeeStatus(ctx, ana.ID)
	if err != nil {
		t.Fatalf("employee status: %v", err)
	}
	if status.Snapshot.Status != domain.StatusWorking {
		t.Fatalf("expected working after retry, got %s", status.Snapshot.Status)
	}
}

func TestConcurrentClockInsRecordOneEvent(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)
	ctx := context.Background()

	const attempts = 10
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = f.service.Receive(ctx, fmt.Sprintf("wamid-%d", i), ana.Phone, "entrada")
		}(i)
	}
	wg.Wait()

	if got := f.attendance.eventCount(); got != 1 {
		t.Fatalf("expected exactly 1 clock-in event, got %d", got)
	}
	status, err := f.service.EmployeeStatus(ctx, ana.ID)
	if err != nil {
		t.Fatalf("employee status: %v", err)
	}
	if status.Snapshot.Status != domain.StatusWorking {
		t.Fatalf("expected working, got %s", status.Snapshot.Status)
	}
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ana := f.addEmployee(t, "Ana", "+351910000001", true)
	rui := f.addEmployee(t, "Rui", "+351910000002", true)
	f.addEmployee(t, "Inês", "+351910000003", true)
	ctx := context.Background()

	f.receive(t, "wamid-1", ana.Phone, "entrada")
	f.receive(t, "wamid-2", rui.Phone, "entrada")
	f.receive(t, "wamid-3", rui.Phone, "pausa")

	stats, err := f.service.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ActiveEmployees != 3 {
		t.Fatalf("expected 3 active employees, got %d", stats.ActiveEmployees)
	}
	if stats.PresentToday != 2 {
		t.Fatalf("expected 2 present, got %d", stats.PresentToday)
	}
	if stats.OnBreak != 1 {
		t.Fatalf("expected 1 on break, got %d", stats.OnBreak)
	}
	if stats.MessagesProcessed != 3 {
		t.Fatalf("expected 3 processed messages, got %d", stats.MessagesProcessed)
	}
}

func TestBreakEndRefreshesClockInTime(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	current := base
	employees := newFakeEmployeeRepo()
	messages := newFakeMessageRepo()
	attendanceRepo := newFakeAttendanceRepo(messages)
	svc := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employees,
		AttendanceRepo: attendanceRepo,
		MessageRepo:    messages,
		Now:            func() time.Time { return current },
	})
	ctx := context.Background()

	ana := &domain.Employee{Name: "Ana", Phone: "+351910000001", IsActive: true}
	if err := employees.Create(ctx, ana); err != nil {
		t.Fatalf("create employee: %v", err)
	}

	send := func(id, body string) {
		t.Helper()
		if _, err := svc.Receive(ctx, id, ana.Phone, body); err != nil {
			t.Fatalf("receive %q: %v", body, err)
		}
	}

	send("wamid-1", "entrada")
	current = base.Add(3 * time.Hour)
	send("wamid-2", "pausa")
	current = base.Add(3*time.Hour + 30*time.Minute)
	send("wamid-3", "volta")

	status, err := svc.EmployeeStatus(ctx, ana.ID)
	if err != nil {
		t.Fatalf("employee status: %v", err)
	}
	if status.Snapshot.Status != domain.StatusWorking {
		t.Fatalf("expected working, got %s", status.Snapshot.Status)
	}
	if status.Snapshot.ClockInTime != "12:30" {
		t.Fatalf("expected clock-in time from break end, got %q", status.Snapshot.ClockInTime)
	}
}
