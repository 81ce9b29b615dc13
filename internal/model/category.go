package model

import "time"

// categories — верхний уровень каталога.
type Category struct {
	ID          string  `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string  `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description *string `gorm:"type:text" json:"description"`
	Icon        *string `gorm:"type:varchar(64)" json:"icon"`

	// Порядок отображения, по возрастанию.
	SortOrder int `gorm:"not null;default:0;index" json:"sortOrder"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
