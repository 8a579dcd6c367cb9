package repository

import (
	"context"
	"errors"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"gorm.io/gorm"
)

// UserRepo is the company directory. It deliberately carries the lookup
// methods the approval engine's Directory contract needs, so any UserRepo
// can be handed to the engine as-is. Missing rows come back as (nil, nil).
type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByRole(ctx context.Context, companyID string, role model.Role) ([]model.User, error)
	GetManagerOf(ctx context.Context, userID string) (*model.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetUsersByRole(ctx context.Context, companyID string, role model.Role) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND role = ?", companyID, role).
		Order("created_at").
		Find(&users).Error
	return users, err
}

func (r *userRepo) GetManagerOf(ctx context.Context, userID string) (*model.User, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil || user == nil || user.ManagerID == nil {
		return nil, err
	}
	return r.GetUser(ctx, *user.ManagerID)
}

func (r *userRepo) ListByCompany(ctx context.Context, companyID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at").
		Find(&users).Error
	return users, err
}
