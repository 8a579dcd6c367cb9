package approval

import (
	"context"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

// Directory resolves users, roles and manager links against the company
// directory. Lookups that find nothing return (nil, nil) / an empty slice;
// errors are reserved for infrastructure failures.
type Directory interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUsersByRole(ctx context.Context, companyID string, role model.Role) ([]model.User, error)
	GetManagerOf(ctx context.Context, userID string) (*model.User, error)
}
