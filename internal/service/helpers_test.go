package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/ocr"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// staticNormalizer converts by a fixed rate, or reports degradation when
// told to fail.
type staticNormalizer struct {
	rate decimal.Decimal
	fail bool
}

func (n staticNormalizer) Normalize(_ context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return amount, false
	}
	if n.fail {
		return amount, true
	}
	return amount.Mul(n.rate).Round(2), false
}

// fixture wires the services onto in-memory repos with one seeded company:
// an admin, two managers and an employee reporting to the first manager.
type fixture struct {
	companies *repository.MemoryCompanyRepo
	users     *repository.MemoryUserRepo
	expenses  *repository.MemoryExpenseRepo
	approvals *repository.MemoryApprovalRepo
	rules     *repository.MemoryRuleRepo

	expenseSvc  *ExpenseService
	approvalSvc *ApprovalService
	ruleSvc     *RuleService
	userSvc     *UserService

	admin    model.User
	manager  model.User
	manager2 model.User
	employee model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		companies: repository.NewMemoryCompanyRepo(),
		users:     repository.NewMemoryUserRepo(),
		expenses:  repository.NewMemoryExpenseRepo(),
		approvals: repository.NewMemoryApprovalRepo(),
		rules:     repository.NewMemoryRuleRepo(),
	}
	f.expenseSvc = NewExpenseService(f.expenses, f.approvals, f.rules, f.companies, f.users, staticNormalizer{rate: decimal.NewFromInt(1)}, ocr.NewMockProvider())
	f.approvalSvc = NewApprovalService(f.expenses, f.approvals, f.users)
	f.ruleSvc = NewRuleService(f.rules, f.users)
	f.userSvc = NewUserService(f.users)

	ctx := context.Background()
	require.NoError(t, f.companies.Create(ctx, &model.Company{ID: "c1", Name: "Acme", Country: "United States", BaseCurrency: "USD"}))

	f.admin = f.addUser(t, "admin", model.RoleAdmin, nil)
	f.manager = f.addUser(t, "mgr", model.RoleManager, nil)
	f.manager2 = f.addUser(t, "mgr2", model.RoleManager, nil)
	f.employee = f.addUser(t, "emp", model.RoleEmployee, strPtr("mgr"))
	return f
}

func (f *fixture) addUser(t *testing.T, id string, role model.Role, managerID *string) model.User {
	t.Helper()
	user := model.User{
		ID:        id,
		CompanyID: "c1",
		Email:     id + "@acme.test",
		FullName:  id,
		Role:      role,
		ManagerID: managerID,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.users.Create(context.Background(), &user))
	return user
}

func (f *fixture) setActiveRule(t *testing.T, rule model.ApprovalRule) model.ApprovalRule {
	t.Helper()
	if rule.ID == "" {
		rule.ID = "rule-" + string(rule.RuleType)
	}
	rule.CompanyID = "c1"
	rule.IsActive = true
	require.NoError(t, f.rules.Create(context.Background(), &rule))
	return rule
}

func (f *fixture) submit(t *testing.T, userID string, amount int64, currency string) *model.Expense {
	t.Helper()
	expense, err := f.expenseSvc.Submit(context.Background(), userID, SubmitExpenseInput{
		Amount:      decimal.NewFromInt(amount),
		Currency:    currency,
		Category:    "Travel",
		Description: "taxi",
		ExpenseDate: time.Now(),
	})
	require.NoError(t, err)
	return expense
}

func sequentialRule(levels ...model.ApprovalLevel) model.ApprovalRule {
	return model.ApprovalRule{Name: "Sequential", RuleType: model.RuleSequential, Levels: levels}
}

func managerThenAdminRule() model.ApprovalRule {
	return sequentialRule(
		model.ApprovalLevel{Level: 0, Roles: []model.Role{model.RoleManager}},
		model.ApprovalLevel{Level: 1, Roles: []model.Role{model.RoleAdmin}},
	)
}
