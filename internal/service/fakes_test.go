package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dojoflow/internal/models"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	failOn  map[string]bool
	calls   int
}

func newFakeEmbedder() *fakeEmbedder {
	return &fakeEmbedder{
		vectors: make(map[string][]float32),
		failOn:  make(map[string]bool),
	}
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn[text] {
		return nil, fmt.Errorf("embedding rejected")
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

type fakeKnowledgeStore struct {
	docs []*models.KnowledgeDocument
}

func (f *fakeKnowledgeStore) Create(_ context.Context, doc *models.KnowledgeDocument) error {
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeKnowledgeStore) Update(_ context.Context, doc *models.KnowledgeDocument) error {
	for i, d := range f.docs {
		if d.ID == doc.ID {
			f.docs[i] = doc
			return nil
		}
	}
	return fmt.Errorf("document not found")
}

func (f *fakeKnowledgeStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, d := range f.docs {
		if d.ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("document not found")
}

func (f *fakeKnowledgeStore) GetByID(_ context.Context, id uuid.UUID) (*models.KnowledgeDocument, error) {
	for _, d := range f.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, fmt.Errorf("document not found")
}

func (f *fakeKnowledgeStore) List(_ context.Context, category *models.KnowledgeCategory) ([]*models.KnowledgeDocument, error) {
	if category == nil {
		return f.docs, nil
	}
	var out []*models.KnowledgeDocument
	for _, d := range f.docs {
		if d.Category == *category {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeAppointmentStore struct {
	mu    sync.Mutex
	appts []*models.Appointment
}

func (f *fakeAppointmentStore) Create(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appts = append(f.appts, appt)
	return nil
}

func (f *fakeAppointmentStore) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("appointment not found")
}

func (f *fakeAppointmentStore) UpdateStatus(_ context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return fmt.Errorf("appointment not found")
}

func (f *fakeAppointmentStore) ListBetween(_ context.Context, start, end time.Time, statuses []models.AppointmentStatus) ([]*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Appointment
	for _, a := range f.appts {
		if a.DateTime.Before(start) || !a.DateTime.Before(end) {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) ListForReminder(_ context.Context, start, end time.Time) ([]*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Appointment
	for _, a := range f.appts {
		if a.ReminderSent || a.DateTime.Before(start) || !a.DateTime.Before(end) {
			continue
		}
		if a.Status == models.AppointmentScheduled || a.Status == models.AppointmentConfirmed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			a.ReminderSent = true
			return nil
		}
	}
	return fmt.Errorf("appointment not found")
}

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return fmt.Errorf("user not found")
}

func (f *fakeUserStore) ListAbsenteeStudents(_ context.Context, cutoff time.Time) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Type == models.UserTypeActiveStudent && u.LastAttendanceDate != nil && u.LastAttendanceDate.Before(cutoff) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) ListDelinquentStudents(_ context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Type == models.UserTypeActiveStudent && u.PaymentStatus == models.PaymentStatusOverdue {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeInteractionStore struct {
	mu    sync.Mutex
	items []*models.Interaction
}

func (f *fakeInteractionStore) Create(_ context.Context, it *models.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, it)
	return nil
}

func (f *fakeInteractionStore) ListRecent(_ context.Context, userKey string, limit int) ([]*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Interaction
	for i := len(f.items) - 1; i >= 0 && len(matched) < limit; i-- {
		if f.items[i].UserID == userKey {
			matched = append(matched, f.items[i])
		}
	}
	return matched, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

type sentMessage struct {
	From, To, Body string
}

func (f *fakeSender) Send(_ context.Context, from, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", fmt.Errorf("provider unavailable")
	}
	f.sent = append(f.sent, sentMessage{From: from, To: to, Body: body})
	return fmt.Sprintf("SM%04d", len(f.sent)), nil
}
