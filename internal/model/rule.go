package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RuleType is the policy family governing how many/which approvals an
// expense needs.
type RuleType string

const (
	RuleSequential       RuleType = "sequential"
	RulePercentage       RuleType = "percentage"
	RuleSpecificApprover RuleType = "specific_approver"
	RuleHybrid           RuleType = "hybrid"
)

// Valid reports whether t is a known rule type.
func (t RuleType) Valid() bool {
	switch t {
	case RuleSequential, RulePercentage, RuleSpecificApprover, RuleHybrid:
		return true
	}
	return false
}

// ApprovalLevel is one stage of required approval. A user is eligible at
// the level if their role is in Roles or their id is in UserIDs (union).
type ApprovalLevel struct {
	Level       int      `json:"level"`
	Roles       []Role   `json:"roles,omitempty"`
	UserIDs     []string `json:"user_ids,omitempty"`
	Description string   `json:"description"`
}

// ApprovalLevels is stored as a JSON column; gorm needs Valuer/Scanner.
type ApprovalLevels []ApprovalLevel

func (l ApprovalLevels) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ApprovalLevels) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for approval levels: %T", src)
	}
}

// ApprovalRule is a company's declarative approval policy. Levels is only
// meaningful for sequential rules (and, when present, supplies the level-0
// eligible set for the other types). At most one rule is active per company.
type ApprovalRule struct {
	ID                  string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CompanyID           string         `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Name                string         `gorm:"type:varchar(255);not null" json:"name"`
	RuleType            RuleType       `gorm:"type:varchar(32);not null" json:"rule_type"`
	Levels              ApprovalLevels `gorm:"type:json" json:"levels"`
	PercentageThreshold *int           `json:"percentage_threshold,omitempty"`
	SpecificApproverID  *string        `gorm:"type:varchar(36)" json:"specific_approver_id,omitempty"`
	IsActive            bool           `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

func (ApprovalRule) TableName() string {
	return "approval_rules"
}

// RuleSnapshot is the copy of a rule bound to an expense at submission time.
// Later edits or deactivation of the source rule never touch it, so in-flight
// expenses keep the semantics they were submitted under.
type RuleSnapshot struct {
	RuleID              string         `json:"rule_id"`
	Name                string         `json:"name"`
	RuleType            RuleType       `json:"rule_type"`
	Levels              ApprovalLevels `json:"levels,omitempty"`
	PercentageThreshold *int           `json:"percentage_threshold,omitempty"`
	SpecificApproverID  *string        `json:"specific_approver_id,omitempty"`
}

// Snapshot freezes the rule for binding to an expense.
func (r *ApprovalRule) Snapshot() RuleSnapshot {
	levels := make(ApprovalLevels, len(r.Levels))
	copy(levels, r.Levels)
	return RuleSnapshot{
		RuleID:              r.ID,
		Name:                r.Name,
		RuleType:            r.RuleType,
		Levels:              levels,
		PercentageThreshold: r.PercentageThreshold,
		SpecificApproverID:  r.SpecificApproverID,
	}
}

// LevelCount is how many levels the state machine walks through. Only
// sequential rules have more than one.
func (s RuleSnapshot) LevelCount() int {
	if s.RuleType == RuleSequential {
		return len(s.Levels)
	}
	return 1
}

func (s RuleSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *RuleSnapshot) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		return errors.New("expense has no bound rule snapshot")
	default:
		return fmt.Errorf("unsupported type for rule snapshot: %T", src)
	}
}
