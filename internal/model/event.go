package model

import (
	"time"

	"gorm.io/datatypes"
)

// Тип события аудита.
type EventType string

const (
	EventTypeProviderCreated      EventType = "provider_created"
	EventTypeProviderUpdated      EventType = "provider_updated"
	EventTypeProviderPhotoAdded   EventType = "provider_photo_added"
	EventTypeProviderPhotoDeleted EventType = "provider_photo_deleted"
	EventTypeProfileCreated       EventType = "profile_created"
	EventTypeProfileUpdated       EventType = "profile_updated"
)

// events — журнал изменений, сделанных владельцами. Только добавление.
type Event struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	EventType EventType `gorm:"type:varchar(64);not null;index" json:"eventType"`

	Subject    string  `gorm:"type:varchar(255);not null;index" json:"-"`
	ProviderID *string `gorm:"type:varchar(64);index" json:"providerId"`

	Details datatypes.JSON `json:"details"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
