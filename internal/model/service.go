package model

import "time"

// services — услуга внутри категории (например, "сантехники" в "Дом").
type Service struct {
	ID         string `gorm:"type:varchar(64);primaryKey" json:"id"`
	CategoryID string `gorm:"type:varchar(64);not null;index" json:"categoryId"`

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	SortOrder   int     `gorm:"not null;default:0;index" json:"sortOrder"`
	ImageURL    *string `gorm:"type:text" json:"imageUrl"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
