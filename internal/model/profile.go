package model

import "time"

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeCompany    AccountType = "company"
)

// profiles — одна строка на subject, создаётся лениво.
type Profile struct {
	ID          string      `gorm:"type:varchar(255);primaryKey" json:"id"`
	DisplayName *string     `gorm:"type:varchar(255)" json:"displayName"`
	AccountType AccountType `gorm:"type:varchar(32);not null;default:'individual'" json:"accountType"`
	Phone       *string     `gorm:"type:varchar(32)" json:"phone"`
	CompanyName *string     `gorm:"type:varchar(255)" json:"companyName"`
	AvatarURL   *string     `gorm:"type:text" json:"avatarUrl"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}
