package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

// In-memory implementations of every repo. They back the `storage: memory`
// run mode (the original product shipped entirely on a mock store) and the
// test suite. Same conditional-write semantics as the gorm versions.

type MemoryCompanyRepo struct {
	mu        sync.RWMutex
	companies map[string]model.Company
}

func NewMemoryCompanyRepo() *MemoryCompanyRepo {
	return &MemoryCompanyRepo{companies: make(map[string]model.Company)}
}

func (r *MemoryCompanyRepo) Create(_ context.Context, company *model.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[company.ID] = *company
	return nil
}

func (r *MemoryCompanyRepo) GetByID(_ context.Context, id string) (*model.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *MemoryCompanyRepo) Update(_ context.Context, company *model.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[company.ID] = *company
	return nil
}

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]model.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) GetUsersByRole(_ context.Context, companyID string, role model.Role) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []model.User
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Role == role {
			users = append(users, u)
		}
	}
	sortByCreated(users, func(u model.User) time.Time { return u.CreatedAt })
	return users, nil
}

func (r *MemoryUserRepo) GetManagerOf(ctx context.Context, userID string) (*model.User, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil || user == nil || user.ManagerID == nil {
		return nil, err
	}
	return r.GetUser(ctx, *user.ManagerID)
}

func (r *MemoryUserRepo) ListByCompany(_ context.Context, companyID string) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []model.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			users = append(users, u)
		}
	}
	sortByCreated(users, func(u model.User) time.Time { return u.CreatedAt })
	return users, nil
}

type MemoryExpenseRepo struct {
	mu       sync.RWMutex
	expenses map[string]model.Expense
}

func NewMemoryExpenseRepo() *MemoryExpenseRepo {
	return &MemoryExpenseRepo{expenses: make(map[string]model.Expense)}
}

func (r *MemoryExpenseRepo) Create(_ context.Context, expense *model.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[expense.ID] = *expense
	return nil
}

func (r *MemoryExpenseRepo) GetByID(_ context.Context, id string) (*model.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.expenses[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r *MemoryExpenseRepo) List(_ context.Context, filter ExpenseFilter) ([]model.Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var expenses []model.Expense
	for _, e := range r.expenses {
		if filter.CompanyID != "" && e.CompanyID != filter.CompanyID {
			continue
		}
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		expenses = append(expenses, e)
	}
	if filter.SortBy == "amount" {
		sort.Slice(expenses, func(i, j int) bool {
			return expenses[i].Amount.GreaterThan(expenses[j].Amount)
		})
	} else {
		sort.Slice(expenses, func(i, j int) bool {
			return expenses[i].ExpenseDate.After(expenses[j].ExpenseDate)
		})
	}
	return expenses, nil
}

func (r *MemoryExpenseRepo) AdvanceLevel(_ context.Context, id string, fromLevel, toLevel int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.Status != model.ExpensePending || e.CurrentLevel != fromLevel {
		return ErrConflict
	}
	e.CurrentLevel = toLevel
	e.UpdatedAt = time.Now()
	r.expenses[id] = e
	return nil
}

func (r *MemoryExpenseRepo) Finalize(_ context.Context, id string, status model.ExpenseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.Status != model.ExpensePending {
		return ErrConflict
	}
	e.Status = status
	e.UpdatedAt = time.Now()
	r.expenses[id] = e
	return nil
}

type MemoryApprovalRepo struct {
	mu      sync.RWMutex
	records map[string]model.ExpenseApproval
}

func NewMemoryApprovalRepo() *MemoryApprovalRepo {
	return &MemoryApprovalRepo{records: make(map[string]model.ExpenseApproval)}
}

func (r *MemoryApprovalRepo) Create(_ context.Context, record *model.ExpenseApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *MemoryApprovalRepo) CreateBatch(ctx context.Context, records []model.ExpenseApproval) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return nil
}

func (r *MemoryApprovalRepo) ListByExpense(_ context.Context, expenseID string) ([]model.ExpenseApproval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []model.ExpenseApproval
	for _, rec := range r.records {
		if rec.ExpenseID == expenseID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Level != records[j].Level {
			return records[i].Level < records[j].Level
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (r *MemoryApprovalRepo) ListByExpenseLevel(_ context.Context, expenseID string, level int) ([]model.ExpenseApproval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []model.ExpenseApproval
	for _, rec := range r.records {
		if rec.ExpenseID == expenseID && rec.Level == level {
			records = append(records, rec)
		}
	}
	sortByCreated(records, func(a model.ExpenseApproval) time.Time { return a.CreatedAt })
	return records, nil
}

func (r *MemoryApprovalRepo) FindPendingFor(_ context.Context, approverID string) ([]model.ExpenseApproval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []model.ExpenseApproval
	for _, rec := range r.records {
		if rec.ApproverID == approverID && rec.Status == model.ApprovalPending {
			records = append(records, rec)
		}
	}
	sortByCreated(records, func(a model.ExpenseApproval) time.Time { return a.CreatedAt })
	return records, nil
}

func (r *MemoryApprovalRepo) Finalize(_ context.Context, id string, status model.ApprovalStatus, comments string, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.Status != model.ApprovalPending {
		return ErrConflict
	}
	rec.Status = status
	rec.Comments = comments
	rec.DecidedAt = &decidedAt
	rec.UpdatedAt = time.Now()
	r.records[id] = rec
	return nil
}

type MemoryRuleRepo struct {
	mu    sync.RWMutex
	rules map[string]model.ApprovalRule
}

func NewMemoryRuleRepo() *MemoryRuleRepo {
	return &MemoryRuleRepo{rules: make(map[string]model.ApprovalRule)}
}

func (r *MemoryRuleRepo) Create(_ context.Context, rule *model.ApprovalRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = *rule
	return nil
}

func (r *MemoryRuleRepo) Update(_ context.Context, rule *model.ApprovalRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = *rule
	return nil
}

func (r *MemoryRuleRepo) GetByID(_ context.Context, id string) (*model.ApprovalRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rule, ok := r.rules[id]; ok {
		return &rule, nil
	}
	return nil, nil
}

func (r *MemoryRuleRepo) GetActive(_ context.Context, companyID string) (*model.ApprovalRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.CompanyID == companyID && rule.IsActive {
			rule := rule
			return &rule, nil
		}
	}
	return nil, nil
}

func (r *MemoryRuleRepo) ListByCompany(_ context.Context, companyID string) ([]model.ApprovalRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rules []model.ApprovalRule
	for _, rule := range r.rules {
		if rule.CompanyID == companyID {
			rules = append(rules, rule)
		}
	}
	sortByCreated(rules, func(a model.ApprovalRule) time.Time { return a.CreatedAt })
	return rules, nil
}

func (r *MemoryRuleRepo) Activate(_ context.Context, companyID, ruleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := r.rules[ruleID]
	if !ok || target.CompanyID != companyID {
		return ErrConflict
	}
	for id, rule := range r.rules {
		if rule.CompanyID == companyID {
			rule.IsActive = id == ruleID
			r.rules[id] = rule
		}
	}
	return nil
}

func sortByCreated[T any](items []T, createdAt func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return createdAt(items[i]).Before(createdAt(items[j]))
	})
}
