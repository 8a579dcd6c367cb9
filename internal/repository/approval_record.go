package repository

import (
	"context"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"gorm.io/gorm"
)

// ApprovalRepo owns the per-decision records. Rows are finalized in place
// exactly once and never deleted; Finalize is conditional on the row still
// being pending and returns ErrConflict otherwise.
type ApprovalRepo interface {
	Create(ctx context.Context, record *model.ExpenseApproval) error
	CreateBatch(ctx context.Context, records []model.ExpenseApproval) error
	ListByExpense(ctx context.Context, expenseID string) ([]model.ExpenseApproval, error)
	ListByExpenseLevel(ctx context.Context, expenseID string, level int) ([]model.ExpenseApproval, error)
	FindPendingFor(ctx context.Context, approverID string) ([]model.ExpenseApproval, error)
	Finalize(ctx context.Context, id string, status model.ApprovalStatus, comments string, decidedAt time.Time) error
}

type approvalRepo struct {
	db *gorm.DB
}

func NewApprovalRepo(db *gorm.DB) ApprovalRepo {
	return &approvalRepo{db: db}
}

func (r *approvalRepo) Create(ctx context.Context, record *model.ExpenseApproval) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *approvalRepo) CreateBatch(ctx context.Context, records []model.ExpenseApproval) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *approvalRepo) ListByExpense(ctx context.Context, expenseID string) ([]model.ExpenseApproval, error) {
	var records []model.ExpenseApproval
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("level, created_at").
		Find(&records).Error
	return records, err
}

func (r *approvalRepo) ListByExpenseLevel(ctx context.Context, expenseID string, level int) ([]model.ExpenseApproval, error) {
	var records []model.ExpenseApproval
	err := r.db.WithContext(ctx).
		Where("expense_id = ? AND level = ?", expenseID, level).
		Order("created_at").
		Find(&records).Error
	return records, err
}

func (r *approvalRepo) FindPendingFor(ctx context.Context, approverID string) ([]model.ExpenseApproval, error) {
	var records []model.ExpenseApproval
	err := r.db.WithContext(ctx).
		Where("approver_id = ? AND status = ?", approverID, model.ApprovalPending).
		Order("created_at").
		Find(&records).Error
	return records, err
}

func (r *approvalRepo) Finalize(ctx context.Context, id string, status model.ApprovalStatus, comments string, decidedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.ExpenseApproval{}).
		Where("id = ? AND status = ?", id, model.ApprovalPending).
		Updates(map[string]any{
			"status":     status,
			"comments":   comments,
			"decided_at": decidedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
