package model

import "time"

// Provider — исполнитель услуги (мастерская, салон, частник).
// OwnerUserID == nil означает запись из сида; такие записи нельзя менять через API владельца.
type Provider struct {
	ID         string `gorm:"type:varchar(64);primaryKey" json:"id"`
	CategoryID string `gorm:"type:varchar(64);not null;index" json:"categoryId"`
	ServiceID  string `gorm:"type:varchar(64);not null;index" json:"serviceId"`

	// Subject из токена внешнего провайдера идентификации.
	OwnerUserID *string `gorm:"type:varchar(255);index" json:"ownerUserId"`

	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Description *string  `gorm:"type:text" json:"description"`
	Address     *string  `gorm:"type:text" json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Rating      *float64 `json:"rating"`
	ImageURL    *string  `gorm:"type:text" json:"imageUrl"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`

	Category *Category       `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Service  *Service        `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Photos   []ProviderPhoto `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsOwnedBy сообщает, может ли subject менять запись.
func (p *Provider) IsOwnedBy(subject string) bool {
	return p.OwnerUserID != nil && subject != "" && *p.OwnerUserID == subject
}
