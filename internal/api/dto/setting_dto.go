package dto

import (
	"time"

	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/domain"
)

// SettingRequest payload.
type SettingRequest struct {
	Value string             `json:"value"`
	Type  domain.SettingType `json:"type"`
}

// SettingResponse response.
type SettingResponse struct {
	Key       string             `json:"key"`
	Value     string             `json:"value"`
	Type      domain.SettingType `json:"type"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse response.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
