package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	apperrors "github.com/jtalmeidaAdvir/WhatsappTimeTracker/pkg/util"
)

// Setting keys used at runtime.
const (
	SettingReplyWebhookURL = "reply_webhook_url"
	SettingInstanceToken   = "instance_token"
)

// SettingsService manages typed key/value settings.
type SettingsService struct {
	settings repository.SettingRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(settings repository.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns a setting or nil when unset.
func (s *SettingsService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	return s.settings.Get(ctx, key)
}

// GetString returns the value for key, or fallback when unset.
func (s *SettingsService) GetString(ctx context.Context, key, fallback string) (string, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return fallback, nil
	}
	return setting.Value, nil
}

// Set validates the value against its declared type and stores it.
func (s *SettingsService) Set(ctx context.Context, key, value string, typ domain.SettingType) (*domain.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, apperrors.NewValidationError("setting key required", nil)
	}
	if typ == "" {
		typ = domain.SettingTypeString
	}

	switch typ {
	case domain.SettingTypeString:
	case domain.SettingTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return nil, apperrors.NewValidationError("value is not a number", map[string]any{"value": value})
		}
	case domain.SettingTypeBoolean:
		if _, err := strconv.ParseBool(value); err != nil {
			return nil, apperrors.NewValidationError("value is not a boolean", map[string]any{"value": value})
		}
	default:
		return nil, apperrors.NewValidationError("unknown setting type", map[string]any{"type": typ})
	}

	setting := &domain.Setting{Key: key, Value: value, Type: typ}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// List returns all settings.
func (s *SettingsService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.settings.List(ctx)
}
