package service

import (
	"context"
	"fmt"
	"time"

	"dojoflow/internal/dto"
	"dojoflow/internal/models"

	"go.uber.org/zap"
)

// CallPurpose is the declared intent of a voice call.
type CallPurpose string

const (
	PurposeGeneral    CallPurpose = "general"
	PurposeSales      CallPurpose = "sales"
	PurposeRetention  CallPurpose = "retention"
	PurposeCollection CallPurpose = "collection"
	PurposeSupport    CallPurpose = "support"
)

type CallConfigService struct {
	crm     *CRMService
	voiceID string
	logger  *zap.Logger
}

func NewCallConfigService(crm *CRMService, voiceID string, logger *zap.Logger) *CallConfigService {
	return &CallConfigService{
		crm:     crm,
		voiceID: voiceID,
		logger:  logger,
	}
}

// GenerateCallConfig builds the voice agent configuration for a caller. The
// persona is picked by the first matching rule: overdue payment with a
// collection purpose wins, then absentee retention, then active-student
// support, then lead sales, then the anonymous default.
func (s *CallConfigService) GenerateCallConfig(ctx context.Context, callerID string, purpose CallPurpose) (*dto.CallConfig, error) {
	user, err := s.crm.IdentifyUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("identify caller: %w", err)
	}

	cfg := &dto.CallConfig{
		VoiceConfig: dto.VoiceConfig{
			VoiceID:         s.voiceID,
			Stability:       0.7,
			SimilarityBoost: 0.8,
		},
	}

	if user == nil {
		cfg.SystemPrompt = AnonymousVoicePrompt()
		return cfg, nil
	}

	cfg.Context = dto.CallContext{
		UserID:   user.ID.String(),
		UserName: user.Name,
		UserType: string(user.Type),
	}
	if user.PaymentStatus != "" {
		cfg.Context.PaymentStatus = string(user.PaymentStatus)
	}
	if user.LastAttendanceDate != nil {
		cfg.Context.LastAttendance = user.LastAttendanceDate.Format(time.RFC3339)
	}

	switch {
	case user.IsStudent() && user.PaymentStatus == models.PaymentStatusOverdue && purpose == PurposeCollection:
		cfg.SystemPrompt = CollectionVoicePrompt(user)
	case user.IsStudent() && user.LastAttendanceDate != nil && purpose == PurposeRetention:
		cfg.SystemPrompt = RetentionVoicePrompt(user)
	case user.IsStudent():
		cfg.SystemPrompt = SupportVoicePrompt(user)
	case user.Type == models.UserTypeLead || user.Type == models.UserTypeNewProspect:
		cfg.SystemPrompt = SalesVoicePrompt(user)
	default:
		cfg.SystemPrompt = AnonymousVoicePrompt()
	}

	s.logger.Debug("call config generated",
		zap.String("user_type", string(user.Type)),
		zap.String("purpose", string(purpose)))

	return cfg, nil
}
