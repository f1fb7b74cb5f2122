package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dojoflow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore is the persistence surface the CRM needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListAbsenteeStudents(ctx context.Context, cutoff time.Time) ([]*models.User, error)
	ListDelinquentStudents(ctx context.Context) ([]*models.User, error)
}

type CRMService struct {
	store  UserStore
	logger *zap.Logger
}

func NewCRMService(store UserStore, logger *zap.Logger) *CRMService {
	return &CRMService{
		store:  store,
		logger: logger,
	}
}

// NormalizePhone strips everything but digits so "+1 (555) 123-4567" and
// "15551234567" key the same record.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentifyUser resolves a phone number to a CRM record. An unknown number
// is not an error; it returns (nil, nil) and the caller treats the contact
// as a new prospect.
func (s *CRMService) IdentifyUser(ctx context.Context, phone string) (*models.User, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, nil
	}
	return s.store.GetByPhone(ctx, normalized)
}

// CreateLead records a new lead unless the phone already belongs to a user,
// in which case the existing record is returned untouched.
func (s *CRMService) CreateLead(ctx context.Context, name, phone string, source models.LeadSource, interest string) (*models.User, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, fmt.Errorf("phone number is required")
	}

	existing, err := s.store.GetByPhone(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("lookup phone: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	lead := &models.User{
		ID:                  uuid.New(),
		Phone:               normalized,
		Name:                name,
		Type:                models.UserTypeLead,
		Source:              source,
		Interest:            interest,
		QualificationStatus: models.QualificationUnqualified,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.store.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.logger.Info("lead created",
		zap.String("user_id", lead.ID.String()),
		zap.String("source", string(source)))

	return lead, nil
}

// GetStudentProfile loads a user and verifies it carries a student profile.
func (s *CRMService) GetStudentProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsStudent() {
		return nil, fmt.Errorf("user %s is not a student", id)
	}
	return user, nil
}

// SetQualificationStatus advances a lead through the sales pipeline.
func (s *CRMService) SetQualificationStatus(ctx context.Context, id uuid.UUID, status models.QualificationStatus) error {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.QualificationStatus = status
	if err := s.store.Update(ctx, user); err != nil {
		return fmt.Errorf("update qualification: %w", err)
	}

	s.logger.Info("qualification updated",
		zap.String("user_id", id.String()),
		zap.String("status", string(status)))

	return nil
}

// GetAbsenteeStudents returns active students who have not attended for at
// least the given number of days.
func (s *CRMService) GetAbsenteeStudents(ctx context.Context, days int) ([]*models.User, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	return s.store.ListAbsenteeStudents(ctx, cutoff)
}

func (s *CRMService) GetDelinquentStudents(ctx context.Context) ([]*models.User, error) {
	return s.store.ListDelinquentStudents(ctx)
}

func (s *CRMService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *CRMService) UpdateUser(ctx context.Context, user *models.User) error {
	return s.store.Update(ctx, user)
}
