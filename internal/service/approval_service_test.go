package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/model"
)

func TestSequentialFlowApproves(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())

	expense := f.submit(t, "emp", 150, "USD")
	assert.Equal(t, model.ExpensePending, expense.Status)
	assert.Equal(t, 0, expense.CurrentLevel)

	// Both managers got a pending record at level 0.
	records, err := f.approvals.ListByExpenseLevel(ctx, expense.ID, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "looks fine")
	require.NoError(t, err)
	assert.Equal(t, "advance", result.Outcome)
	assert.Equal(t, 1, result.Expense.CurrentLevel)

	// Level 1 was scheduled for the admin.
	records, err = f.approvals.ListByExpenseLevel(ctx, expense.ID, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "admin", records[0].ApproverID)

	// A manager is not eligible at the admin level.
	_, err = f.approvalSvc.Decide(ctx, "mgr2", expense.ID, approval.DecisionApprove, "")
	require.ErrorIs(t, err, approval.ErrUnauthorized)

	result, err = f.approvalSvc.Decide(ctx, "admin", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Outcome)

	stored, err := f.expenses.GetByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, stored.Status)
}

func TestSequentialRejectionShortCircuits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 80, "USD")

	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionReject, "no receipt")
	require.NoError(t, err)
	assert.Equal(t, "rejected", result.Outcome)

	stored, err := f.expenses.GetByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseRejected, stored.Status)

	// The admin level never opens.
	records, err := f.approvals.ListByExpenseLevel(ctx, expense.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = f.approvalSvc.Decide(ctx, "admin", expense.ID, approval.DecisionApprove, "")
	require.ErrorIs(t, err, approval.ErrInvalidTransition)
}

func TestDuplicateDecisionRefused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, model.ApprovalRule{
		Name:                "All managers",
		RuleType:            model.RulePercentage,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(100),
	})
	expense := f.submit(t, "emp", 40, "USD")

	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Outcome)

	_, err = f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "")
	require.ErrorIs(t, err, approval.ErrDuplicateDecision)

	_, err = f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionReject, "changed my mind")
	require.ErrorIs(t, err, approval.ErrDuplicateDecision)
}

func TestIneligibleApproverRefused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 40, "USD")

	_, err := f.approvalSvc.Decide(ctx, "emp", expense.ID, approval.DecisionApprove, "")
	require.ErrorIs(t, err, approval.ErrUnauthorized)
}

func TestInvalidDecisionValue(t *testing.T) {
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 40, "USD")

	_, err := f.approvalSvc.Decide(context.Background(), "mgr", expense.ID, approval.Decision("maybe"), "")
	require.Error(t, err)
}

func TestPercentageRuleApproves(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "mgr3", model.RoleManager, nil)
	f.setActiveRule(t, model.ApprovalRule{
		Name:                "60 percent of managers",
		RuleType:            model.RulePercentage,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(60),
	})
	expense := f.submit(t, "emp", 500, "USD")

	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Outcome)

	// 2 of 3 crosses 60%.
	result, err = f.approvalSvc.Decide(ctx, "mgr2", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Outcome)

	stored, err := f.expenses.GetByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ExpenseApproved, stored.Status)
}

func TestPercentageRuleRejectsWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addUser(t, "mgr3", model.RoleManager, nil)
	f.setActiveRule(t, model.ApprovalRule{
		Name:                "60 percent of managers",
		RuleType:            model.RulePercentage,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(60),
	})
	expense := f.submit(t, "emp", 500, "USD")

	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionReject, "")
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Outcome)

	// With 2 of 3 rejecting, even a unanimous remainder stays below 60%.
	result, err = f.approvalSvc.Decide(ctx, "mgr2", expense.ID, approval.DecisionReject, "")
	require.NoError(t, err)
	assert.Equal(t, "rejected", result.Outcome)
}

func TestSpecificApproverDecides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, model.ApprovalRule{
		Name:               "Admin sign-off",
		RuleType:           model.RuleSpecificApprover,
		Levels:             model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		SpecificApproverID: strPtr("admin"),
	})
	expense := f.submit(t, "emp", 90, "USD")

	// Manager decisions are recorded but do not move the state machine.
	result, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionReject, "too pricy")
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Outcome)

	result, err = f.approvalSvc.Decide(ctx, "admin", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Outcome)

	// The manager's informational rejection stays in the trail.
	history, err := f.approvalSvc.History(ctx, &f.admin, expense.ID)
	require.NoError(t, err)
	var decided int
	for _, rec := range history {
		if rec.Decided() {
			decided++
		}
	}
	assert.Equal(t, 2, decided)
}

func TestHybridSpecificOrPercentage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, model.ApprovalRule{
		Name:                "CFO or 60 percent",
		RuleType:            model.RuleHybrid,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(60),
		SpecificApproverID:  strPtr("admin"),
	})
	expense := f.submit(t, "emp", 250, "USD")

	result, err := f.approvalSvc.Decide(ctx, "admin", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "approved", result.Outcome)
}

func TestApproverHiredAfterSchedulingCanDecide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 60, "USD")

	// mgr3 joins after level 0 was scheduled; no placeholder row exists.
	f.addUser(t, "mgr3", model.RoleManager, nil)

	result, err := f.approvalSvc.Decide(ctx, "mgr3", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, "advance", result.Outcome)
	require.NotNil(t, result.Record)
	assert.Equal(t, "mgr3", result.Record.ApproverID)
}

func TestPendingForSkipsResolvedLevels(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 75, "USD")

	items, err := f.approvalSvc.PendingFor(ctx, "mgr2")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, expense.ID, items[0].Expense.ID)

	_, err = f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "")
	require.NoError(t, err)

	// mgr2's level-0 placeholder is stale once the expense moved on.
	items, err = f.approvalSvc.PendingFor(ctx, "mgr2")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = f.approvalSvc.PendingFor(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestHistoryVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 75, "USD")

	_, err := f.approvalSvc.Decide(ctx, "mgr", expense.ID, approval.DecisionApprove, "ok")
	require.NoError(t, err)

	history, err := f.approvalSvc.History(ctx, &f.employee, expense.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, history)

	other := f.addUser(t, "emp2", model.RoleEmployee, nil)
	_, err = f.approvalSvc.History(ctx, &other, expense.ID)
	require.Error(t, err)
}

func TestConcurrentDecisionsAdvanceOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.setActiveRule(t, managerThenAdminRule())
	expense := f.submit(t, "emp", 75, "USD")

	done := make(chan error, 2)
	for _, approver := range []string{"mgr", "mgr2"} {
		go func(id string) {
			_, err := f.approvalSvc.Decide(ctx, id, expense.ID, approval.DecisionApprove, "")
			done <- err
		}(approver)
	}
	var failures int
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			failures++
			// The loser races a level that has already advanced.
			require.ErrorIs(t, err, approval.ErrUnauthorized)
		}
	}
	require.Equal(t, 1, failures)

	stored, err := f.expenses.GetByID(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CurrentLevel)
	assert.Equal(t, model.ExpensePending, stored.Status)
}
