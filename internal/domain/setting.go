package domain

import "time"

// SettingType tags the value encoding of a setting.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
)

// Setting is a typed key/value pair for runtime configuration such as the
// reply webhook URL.
type Setting struct {
	ID        int64
	Key       string
	Value     string
	Type      SettingType
	UpdatedAt time.Time
}
