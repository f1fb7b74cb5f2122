package tools

import (
	"context"
	"fmt"
	"time"

	"dojoflow/internal/models"

	"github.com/google/uuid"
)

// Minimal in-memory stores backing real services in these tests.

type memAppointments struct {
	appts []*models.Appointment
}

func (m *memAppointments) Create(_ context.Context, appt *models.Appointment) error {
	m.appts = append(m.appts, appt)
	return nil
}

func (m *memAppointments) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, a := range m.appts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("appointment not found")
}

func (m *memAppointments) UpdateStatus(_ context.Context, id uuid.UUID, status models.AppointmentStatus) error {
	a, err := m.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	a.Status = status
	return nil
}

func (m *memAppointments) ListBetween(_ context.Context, start, end time.Time, statuses []models.AppointmentStatus) ([]*models.Appointment, error) {
	var out []*models.Appointment
	for _, a := range m.appts {
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

func (m *memAppointments) ListForReminder(_ context.Context, start, end time.Time) ([]*models.Appointment, error) {
	return nil, nil
}

func (m *memAppointments) MarkReminderSent(_ context.Context, id uuid.UUID) error {
	a, err := m.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	a.ReminderSent = true
	return nil
}

type memUsers struct {
	users []*models.User
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.users = append(m.users, user)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *memUsers) GetByPhone(_ context.Context, phone string) (*models.User, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, user *models.User) error {
	for i, u := range m.users {
		if u.ID == user.ID {
			m.users[i] = user
			return nil
		}
	}
	return fmt.Errorf("user not found")
}

func (m *memUsers) ListAbsenteeStudents(_ context.Context, cutoff time.Time) ([]*models.User, error) {
	return nil, nil
}

func (m *memUsers) ListDelinquentStudents(_ context.Context) ([]*models.User, error) {
	return nil, nil
}

type memKnowledge struct {
	docs []*models.KnowledgeDocument
}

func (m *memKnowledge) Create(_ context.Context, doc *models.KnowledgeDocument) error {
	m.docs = append(m.docs, doc)
	return nil
}

func (m *memKnowledge) Update(_ context.Context, doc *models.KnowledgeDocument) error { return nil }

func (m *memKnowledge) Delete(_ context.Context, id uuid.UUID) error { return nil }

func (m *memKnowledge) GetByID(_ context.Context, id uuid.UUID) (*models.KnowledgeDocument, error) {
	return nil, fmt.Errorf("document not found")
}

func (m *memKnowledge) List(_ context.Context, category *models.KnowledgeCategory) ([]*models.KnowledgeDocument, error) {
	if category == nil {
		return m.docs, nil
	}
	var out []*models.KnowledgeDocument
	for _, d := range m.docs {
		if d.Category == *category {
			out = append(out, d)
		}
	}
	return out, nil
}

type memEmbedder struct {
	vectors map[string][]float32
}

func (m *memEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

type memSender struct {
	sent []string
}

func (m *memSender) Send(_ context.Context, from, to, body string) (string, error) {
	m.sent = append(m.sent, body)
	return "SM0001", nil
}

type memInteractions struct {
	items []*models.Interaction
}

func (m *memInteractions) Create(_ context.Context, it *models.Interaction) error {
	m.items = append(m.items, it)
	return nil
}

func (m *memInteractions) ListRecent(_ context.Context, userKey string, limit int) ([]*models.Interaction, error) {
	var matched []*models.Interaction
	for i := len(m.items) - 1; i >= 0 && len(matched) < limit; i-- {
		if m.items[i].UserID == userKey {
			matched = append(matched, m.items[i])
		}
	}
	return matched, nil
}
