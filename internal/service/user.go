package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrManagerCycle is returned when a manager assignment would make the
// reporting chain loop back on itself.
var ErrManagerCycle = errors.New("manager assignment would create a cycle")

type UserService struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserInput struct {
	Email     string
	FullName  string
	Role      model.Role
	ManagerID *string
	Password  string
}

// CreateUser is an admin operation: new accounts join the admin's company.
func (s *UserService) CreateUser(ctx context.Context, companyID string, input CreateUserInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.CompanyID == companyID {
		return nil, errors.New("email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        newID(),
		CompanyID: companyID,
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      input.Role,
		Password:  string(hash),
	}
	if input.ManagerID != nil {
		if err := s.checkManager(ctx, user, *input.ManagerID); err != nil {
			return nil, err
		}
		user.ManagerID = input.ManagerID
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateUserInput struct {
	FullName  *string
	Role      *model.Role
	ManagerID *string
	// ClearManager detaches the user from their manager. Wins over ManagerID.
	ClearManager bool
}

func (s *UserService) UpdateUser(ctx context.Context, companyID, userID string, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, errors.New("user not found")
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q", *input.Role)
		}
		user.Role = *input.Role
	}
	switch {
	case input.ClearManager:
		user.ManagerID = nil
	case input.ManagerID != nil:
		if err := s.checkManager(ctx, user, *input.ManagerID); err != nil {
			return nil, err
		}
		user.ManagerID = input.ManagerID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, companyID string) ([]model.User, error) {
	return s.userRepo.ListByCompany(ctx, companyID)
}

// checkManager validates a manager assignment: same company, not self, and
// no cycle anywhere up the proposed chain. The chain walk is bounded so a
// corrupt store cannot spin forever.
func (s *UserService) checkManager(ctx context.Context, user *model.User, managerID string) error {
	if managerID == user.ID {
		return ErrManagerCycle
	}
	manager, err := s.userRepo.GetUser(ctx, managerID)
	if err != nil {
		return err
	}
	if manager == nil || manager.CompanyID != user.CompanyID {
		return errors.New("manager not found")
	}

	seen := map[string]bool{user.ID: true}
	current := manager
	for hops := 0; hops < 100; hops++ {
		if seen[current.ID] {
			return ErrManagerCycle
		}
		seen[current.ID] = true
		if current.ManagerID == nil {
			return nil
		}
		next, err := s.userRepo.GetUser(ctx, *current.ManagerID)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		current = next
	}
	return ErrManagerCycle
}
