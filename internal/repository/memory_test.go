package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

func newPendingExpense(t *testing.T, r *MemoryExpenseRepo, id string) *model.Expense {
	t.Helper()
	e := &model.Expense{
		ID:           id,
		UserID:       "u1",
		CompanyID:    "c1",
		Amount:       decimal.NewFromInt(10),
		Currency:     "USD",
		AmountInBase: decimal.NewFromInt(10),
		Category:     "Meals",
		ExpenseDate:  time.Now(),
		Status:       model.ExpensePending,
	}
	require.NoError(t, r.Create(context.Background(), e))
	return e
}

func TestExpenseFinalizeIsConditional(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryExpenseRepo()
	e := newPendingExpense(t, r, "e1")

	require.NoError(t, r.Finalize(ctx, e.ID, model.ExpenseApproved))

	// Second finalization of any kind hits the status guard.
	require.ErrorIs(t, r.Finalize(ctx, e.ID, model.ExpenseRejected), ErrConflict)
	require.ErrorIs(t, r.Finalize(ctx, "ghost", model.ExpenseApproved), ErrConflict)

	stored, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, stored.Status)
}

func TestExpenseAdvanceLevelIsConditional(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryExpenseRepo()
	e := newPendingExpense(t, r, "e1")

	require.NoError(t, r.AdvanceLevel(ctx, e.ID, 0, 1))

	// A stale writer still at level 0 must lose.
	require.ErrorIs(t, r.AdvanceLevel(ctx, e.ID, 0, 1), ErrConflict)

	// Finalized expenses never move.
	require.NoError(t, r.Finalize(ctx, e.ID, model.ExpenseApproved))
	require.ErrorIs(t, r.AdvanceLevel(ctx, e.ID, 1, 2), ErrConflict)

	stored, err := r.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentLevel)
}

func TestApprovalFinalizeIsConditional(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryApprovalRepo()
	rec := &model.ExpenseApproval{ID: "a1", ExpenseID: "e1", ApproverID: "u1", Status: model.ApprovalPending}
	require.NoError(t, r.Create(ctx, rec))

	now := time.Now()
	require.NoError(t, r.Finalize(ctx, "a1", model.ApprovalApproved, "fine", now))
	require.ErrorIs(t, r.Finalize(ctx, "a1", model.ApprovalRejected, "", now), ErrConflict)

	records, err := r.ListByExpense(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.ApprovalApproved, records[0].Status)
	assert.Equal(t, "fine", records[0].Comments)
	require.NotNil(t, records[0].DecidedAt)
}

func TestRuleActivateIsExclusive(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRuleRepo()
	for _, id := range []string{"r1", "r2"} {
		require.NoError(t, r.Create(ctx, &model.ApprovalRule{ID: id, CompanyID: "c1", RuleType: model.RuleSequential}))
	}
	require.NoError(t, r.Create(ctx, &model.ApprovalRule{ID: "other", CompanyID: "c2", RuleType: model.RuleSequential, IsActive: true}))

	require.NoError(t, r.Activate(ctx, "c1", "r1"))
	require.NoError(t, r.Activate(ctx, "c1", "r2"))

	active, err := r.GetActive(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "r2", active.ID)

	// Activation never crosses companies.
	require.ErrorIs(t, r.Activate(ctx, "c1", "other"), ErrConflict)
	otherActive, err := r.GetActive(ctx, "c2")
	require.NoError(t, err)
	require.NotNil(t, otherActive)
}

func TestExpenseListFilters(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryExpenseRepo()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seed := []model.Expense{
		{ID: "e1", CompanyID: "c1", UserID: "u1", Status: model.ExpensePending, Category: "Travel", Amount: decimal.NewFromInt(30), ExpenseDate: base},
		{ID: "e2", CompanyID: "c1", UserID: "u2", Status: model.ExpenseApproved, Category: "Meals", Amount: decimal.NewFromInt(90), ExpenseDate: base.AddDate(0, 0, 2)},
		{ID: "e3", CompanyID: "c1", UserID: "u1", Status: model.ExpensePending, Category: "Meals", Amount: decimal.NewFromInt(60), ExpenseDate: base.AddDate(0, 0, 1)},
		{ID: "e4", CompanyID: "c2", UserID: "u9", Status: model.ExpensePending, Category: "Travel", Amount: decimal.NewFromInt(10), ExpenseDate: base},
	}
	for i := range seed {
		require.NoError(t, r.Create(ctx, &seed[i]))
	}

	got, err := r.List(ctx, ExpenseFilter{CompanyID: "c1"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Default sort: newest expense date first.
	assert.Equal(t, []string{"e2", "e3", "e1"}, []string{got[0].ID, got[1].ID, got[2].ID})

	got, err = r.List(ctx, ExpenseFilter{CompanyID: "c1", UserID: "u1", Status: model.ExpensePending})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.List(ctx, ExpenseFilter{CompanyID: "c1", Category: "Meals", SortBy: "amount"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
}
