package repository

import (
	"context"
	"errors"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"gorm.io/gorm"
)

// RuleRepo owns approval rules. Activate is exclusive: turning one rule on
// turns every other rule of the company off in the same transaction, which
// keeps the one-active-rule-per-company invariant in the store itself.
type RuleRepo interface {
	Create(ctx context.Context, rule *model.ApprovalRule) error
	Update(ctx context.Context, rule *model.ApprovalRule) error
	GetByID(ctx context.Context, id string) (*model.ApprovalRule, error)
	GetActive(ctx context.Context, companyID string) (*model.ApprovalRule, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.ApprovalRule, error)
	Activate(ctx context.Context, companyID, ruleID string) error
}

type ruleRepo struct {
	db *gorm.DB
}

func NewRuleRepo(db *gorm.DB) RuleRepo {
	return &ruleRepo{db: db}
}

func (r *ruleRepo) Create(ctx context.Context, rule *model.ApprovalRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepo) Update(ctx context.Context, rule *model.ApprovalRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ruleRepo) GetByID(ctx context.Context, id string) (*model.ApprovalRule, error) {
	var rule model.ApprovalRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepo) GetActive(ctx context.Context, companyID string) (*model.ApprovalRule, error) {
	var rule model.ApprovalRule
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepo) ListByCompany(ctx context.Context, companyID string) ([]model.ApprovalRule, error) {
	var rules []model.ApprovalRule
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at").
		Find(&rules).Error
	return rules, err
}

func (r *ruleRepo) Activate(ctx context.Context, companyID, ruleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ApprovalRule{}).
			Where("company_id = ? AND id <> ?", companyID, ruleID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.ApprovalRule{}).
			Where("id = ? AND company_id = ?", ruleID, companyID).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	})
}
