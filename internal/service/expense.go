package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/ocr"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"github.com/shopspring/decimal"
)

// Normalizer converts an amount to the company base currency, reporting
// whether the conversion was degraded. Satisfied by exchange.Normalizer.
type Normalizer interface {
	Normalize(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, bool)
}

type ExpenseService struct {
	expenseRepo  repository.ExpenseRepo
	approvalRepo repository.ApprovalRepo
	ruleRepo     repository.RuleRepo
	companyRepo  repository.CompanyRepo
	directory    approval.Directory
	normalizer   Normalizer
	ocr          ocr.Provider
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepo,
	approvalRepo repository.ApprovalRepo,
	ruleRepo repository.RuleRepo,
	companyRepo repository.CompanyRepo,
	directory approval.Directory,
	normalizer Normalizer,
	ocrProvider ocr.Provider,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		ruleRepo:     ruleRepo,
		companyRepo:  companyRepo,
		directory:    directory,
		normalizer:   normalizer,
		ocr:          ocrProvider,
	}
}

type SubmitExpenseInput struct {
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Description string
	ExpenseDate time.Time
	ReceiptURL  *string
}

// Submit creates the expense, binds the company's active rule as an
// immutable snapshot, normalizes the amount into the base currency and
// schedules the first approval level. The currency lookup is the only
// external call and is bounded by the provider's timeout; on failure the
// raw amount is stored and flagged degraded.
func (s *ExpenseService) Submit(ctx context.Context, userID string, input SubmitExpenseInput) (*model.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, errors.New("amount must be positive")
	}

	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company not found")
	}

	rule, err := s.ruleRepo.GetActive(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors.New("no active approval rule configured")
	}

	amountInBase, degraded := s.normalizer.Normalize(ctx, input.Amount, input.Currency, company.BaseCurrency)

	expense := &model.Expense{
		ID:                 newID(),
		UserID:             user.ID,
		CompanyID:          user.CompanyID,
		Amount:             input.Amount,
		Currency:           input.Currency,
		AmountInBase:       amountInBase,
		ConversionDegraded: degraded,
		Category:           input.Category,
		Description:        input.Description,
		ExpenseDate:        input.ExpenseDate,
		ReceiptURL:         input.ReceiptURL,
		Status:             model.ExpensePending,
		CurrentLevel:       0,
		Rule:               rule.Snapshot(),
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.scheduleLevel(ctx, expense, 0); err != nil {
		return nil, fmt.Errorf("schedule first approval level: %w", err)
	}

	slog.Info("expense submitted",
		"expense", expense.ID, "user", user.ID, "rule", rule.ID,
		"amount", input.Amount, "currency", input.Currency,
		"degraded", degraded)
	return expense, nil
}

func (s *ExpenseService) scheduleLevel(ctx context.Context, expense *model.Expense, level int) error {
	return scheduleLevel(ctx, s.directory, s.approvalRepo, expense, level)
}

// scheduleLevel creates one pending approval record per eligible approver
// of the given level. An empty set is tolerated (the directory may have
// changed since the bound rule was activated) but logged loudly. Shared by
// submission (level 0) and the decision flow (subsequent levels).
func scheduleLevel(ctx context.Context, dir approval.Directory, approvalRepo repository.ApprovalRepo, expense *model.Expense, level int) error {
	eligible, err := approval.EligibleApprovers(ctx, dir, expense.CompanyID, expense.Rule, level)
	if err != nil {
		return err
	}
	if len(eligible) == 0 {
		slog.Warn("no eligible approvers resolve at level, expense stalls pending",
			"expense", expense.ID, "level", level)
		return nil
	}

	records := make([]model.ExpenseApproval, 0, len(eligible))
	for approverID := range eligible {
		records = append(records, model.ExpenseApproval{
			ID:         newID(),
			ExpenseID:  expense.ID,
			ApproverID: approverID,
			Level:      level,
			Status:     model.ApprovalPending,
			CreatedAt:  time.Now(),
		})
	}
	return approvalRepo.CreateBatch(ctx, records)
}

func (s *ExpenseService) List(ctx context.Context, filter repository.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.List(ctx, filter)
}

// GetByID enforces visibility: owners see their own expenses, managers and
// admins see any expense in their company.
func (s *ExpenseService) GetByID(ctx context.Context, requester *model.User, expenseID string) (*model.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.CompanyID != requester.CompanyID {
		return nil, errors.New("expense not found")
	}
	if expense.UserID != requester.ID && requester.Role == model.RoleEmployee {
		return nil, errors.New("expense not found")
	}
	return expense, nil
}

// ScanReceipt returns the OCR provider's best-effort (amount, date)
// suggestion for a receipt. Purely advisory: the form pre-fills from it
// and the user may override both fields.
func (s *ExpenseService) ScanReceipt(ctx context.Context, receiptURL string) (*ocr.Suggestion, error) {
	return s.ocr.ScanReceipt(ctx, receiptURL)
}
