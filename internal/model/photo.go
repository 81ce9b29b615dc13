package model

import "time"

// provider_photos
type ProviderPhoto struct {
	ID         string `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProviderID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_provider_photos_order,priority:1" json:"providerId"`
	URL        string `gorm:"type:text;not null" json:"url"`

	// max+1 при вставке; после удаления не перенумеровывается.
	// Уникален в пределах провайдера.
	SortOrder int `gorm:"not null;default:0;uniqueIndex:idx_provider_photos_order,priority:2" json:"sortOrder"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
