package model

import "time"

// ApprovalStatus is the state of one required decision. A record starts
// pending and is finalized exactly once; records are never deleted.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ExpenseApproval represents one required decision at one level for one
// expense. A pending row is created for every eligible approver when the
// expense enters a level; the acting approver finalizes their own row.
type ExpenseApproval struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ExpenseID  string         `gorm:"type:varchar(36);not null;index" json:"expense_id"`
	ApproverID string         `gorm:"type:varchar(36);not null;index" json:"approver_id"`
	Level      int            `gorm:"not null" json:"approval_level"`
	Status     ApprovalStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	Comments   string         `gorm:"type:text" json:"comments,omitempty"`
	DecidedAt  *time.Time     `json:"decided_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (ExpenseApproval) TableName() string {
	return "expense_approvals"
}

// Decided reports whether the record has been finalized.
func (a *ExpenseApproval) Decided() bool {
	return a.Status != ApprovalPending
}
