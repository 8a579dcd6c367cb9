package model

import "time"

// Company owns users, expenses and approval rules. BaseCurrency is the
// currency every expense amount is normalized into for reporting.
type Company struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Country      string    `gorm:"type:varchar(100)" json:"country"`
	BaseCurrency string    `gorm:"type:varchar(8);not null" json:"base_currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
