package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is monotonic: once approved or rejected an expense never
// changes status or level again.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a submitted claim. AmountInBase is derived once at submission
// by the currency normalizer and immutable afterwards; ConversionDegraded
// marks it unreliable when the rate lookup failed and the raw amount was
// used as a fallback.
type Expense struct {
	ID                  string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID              string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	CompanyID           string          `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Amount              decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency            string          `gorm:"type:varchar(8);not null" json:"currency"`
	AmountInBase        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount_in_base_currency"`
	ConversionDegraded  bool            `gorm:"not null;default:false" json:"conversion_degraded"`
	Category            string          `gorm:"type:varchar(64);not null" json:"category"`
	Description         string          `gorm:"type:text" json:"description"`
	ExpenseDate         time.Time       `gorm:"type:date;not null" json:"expense_date"`
	ReceiptURL          *string         `gorm:"type:varchar(512)" json:"receipt_url,omitempty"`
	Status              ExpenseStatus   `gorm:"type:varchar(16);not null;index" json:"status"`
	CurrentLevel        int             `gorm:"not null;default:0" json:"current_approval_level"`
	Rule                RuleSnapshot    `gorm:"type:json" json:"rule"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// PredefinedCategories mirror the submission form's category choices.
// Category stays free-form in storage; this list only feeds the UI and the
// OCR suggestion prompt.
var PredefinedCategories = []string{
	"Travel", "Meals", "Software", "Office Supplies", "Marketing", "Other",
}
