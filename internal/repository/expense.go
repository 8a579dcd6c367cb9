package repository

import (
	"context"
	"errors"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"gorm.io/gorm"
)

// ExpenseFilter narrows and orders expense listings.
type ExpenseFilter struct {
	CompanyID string
	UserID    string
	Status    model.ExpenseStatus
	Category  string
	SortBy    string // "date" (default) or "amount", both descending
}

// ExpenseRepo owns expense records. AdvanceLevel and Finalize are
// conditional writes: they only apply while the expense is still pending
// and return ErrConflict otherwise, which is the commit-time
// optimistic-concurrency check the decision flow relies on.
type ExpenseRepo interface {
	Create(ctx context.Context, expense *model.Expense) error
	GetByID(ctx context.Context, id string) (*model.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error)
	AdvanceLevel(ctx context.Context, id string, fromLevel, toLevel int) error
	Finalize(ctx context.Context, id string, status model.ExpenseStatus) error
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepo {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepo) GetByID(ctx context.Context, id string) (*model.Expense, error) {
	var expense model.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepo) List(ctx context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	q := r.db.WithContext(ctx).Model(&model.Expense{})
	if filter.CompanyID != "" {
		q = q.Where("company_id = ?", filter.CompanyID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SortBy == "amount" {
		q = q.Order("amount DESC")
	} else {
		q = q.Order("expense_date DESC")
	}

	var expenses []model.Expense
	err := q.Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) AdvanceLevel(ctx context.Context, id string, fromLevel, toLevel int) error {
	res := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("id = ? AND status = ? AND current_level = ?", id, model.ExpensePending, fromLevel).
		Update("current_level", toLevel)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *expenseRepo) Finalize(ctx context.Context, id string, status model.ExpenseStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Expense{}).
		Where("id = ? AND status = ?", id, model.ExpensePending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
