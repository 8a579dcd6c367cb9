package model

import "time"

// Role tags what a user is allowed to do. The approval engine checks
// eligibility against it directly, independent of the HTTP layer.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User belongs to exactly one company. Email is unique within the company.
// ManagerID is self-referential and must never form a cycle; the user
// service enforces that at assignment time.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CompanyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_company_email" json:"company_id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_company_email" json:"email"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Role      Role      `gorm:"type:varchar(16);not null;index" json:"role"`
	ManagerID *string   `gorm:"type:varchar(36)" json:"manager_id,omitempty"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
