package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
)

// decideRetries caps the optimistic-concurrency retry loop. With the keyed
// lock in front, conflicts only happen when an out-of-band writer touched
// the expense, so retries should resolve immediately.
const decideRetries = 3

type ApprovalService struct {
	expenseRepo  repository.ExpenseRepo
	approvalRepo repository.ApprovalRepo
	directory    approval.Directory

	// mu serializes decisions per expense so the level-completion
	// re-evaluation always observes a consistent decision set. Without it,
	// two approvers at the same level could both advance the expense.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewApprovalService(expenseRepo repository.ExpenseRepo, approvalRepo repository.ApprovalRepo, directory approval.Directory) *ApprovalService {
	return &ApprovalService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		directory:    directory,
		locks:        make(map[string]*sync.Mutex),
	}
}

func (s *ApprovalService) lockExpense(expenseID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[expenseID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[expenseID] = lock
	}
	return lock
}

// DecisionResult reports where the expense ended up after a decision.
type DecisionResult struct {
	Expense *model.Expense         `json:"expense"`
	Record  *model.ExpenseApproval `json:"record"`
	Outcome string                 `json:"outcome"`
}

// Decide records one approver's decision on an expense and advances the
// state machine. Preconditions, checked inside the per-expense critical
// section: the expense is still pending, the approver is eligible at its
// current level, and has not decided at this level before. Violations
// surface as the domain's sentinel errors and mutate nothing.
func (s *ApprovalService) Decide(ctx context.Context, approverID, expenseID string, decision approval.Decision, comments string) (*DecisionResult, error) {
	if !decision.Valid() {
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	lock := s.lockExpense(expenseID)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < decideRetries; attempt++ {
		result, err := s.decideOnce(ctx, approverID, expenseID, decision, comments)
		if errors.Is(err, repository.ErrConflict) {
			// Commit-time state check failed: re-read and reapply.
			lastErr = err
			continue
		}
		return result, err
	}
	return nil, fmt.Errorf("decision did not converge: %w", lastErr)
}

func (s *ApprovalService) decideOnce(ctx context.Context, approverID, expenseID string, decision approval.Decision, comments string) (*DecisionResult, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, errors.New("expense not found")
	}
	if expense.Status != model.ExpensePending {
		return nil, approval.ErrInvalidTransition
	}
	level := expense.CurrentLevel

	eligible, err := approval.EligibleApprovers(ctx, s.directory, expense.CompanyID, expense.Rule, level)
	if err != nil {
		return nil, err
	}
	if _, ok := eligible[approverID]; !ok {
		return nil, approval.ErrUnauthorized
	}

	decisions, err := s.approvalRepo.ListByExpenseLevel(ctx, expenseID, level)
	if err != nil {
		return nil, err
	}

	// Idempotency: one finalized decision per approver per level.
	var record *model.ExpenseApproval
	for i := range decisions {
		if decisions[i].ApproverID != approverID {
			continue
		}
		if decisions[i].Decided() {
			return nil, approval.ErrDuplicateDecision
		}
		record = &decisions[i]
		break
	}
	if record == nil {
		// Eligible but without a placeholder (e.g. hired after the level
		// was scheduled): create the row on the fly.
		record = &model.ExpenseApproval{
			ID:         newID(),
			ExpenseID:  expenseID,
			ApproverID: approverID,
			Level:      level,
			Status:     model.ApprovalPending,
			CreatedAt:  time.Now(),
		}
		if err := s.approvalRepo.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if err := s.approvalRepo.Finalize(ctx, record.ID, decision.Status(), comments, now); err != nil {
		return nil, err
	}
	record.Status = decision.Status()
	record.Comments = comments
	record.DecidedAt = &now

	// Re-read the decision set including the one just recorded, then let
	// the engine evaluate the level.
	decisions, err = s.approvalRepo.ListByExpenseLevel(ctx, expenseID, level)
	if err != nil {
		return nil, err
	}
	outcome := approval.Evaluate(expense.Rule, level, decisions, eligible)

	switch outcome {
	case approval.OutcomeAdvance:
		if err := s.expenseRepo.AdvanceLevel(ctx, expenseID, level, level+1); err != nil {
			return nil, err
		}
		expense.CurrentLevel = level + 1
		if err := scheduleLevel(ctx, s.directory, s.approvalRepo, expense, level+1); err != nil {
			return nil, err
		}
	case approval.OutcomeApproved:
		if err := s.expenseRepo.Finalize(ctx, expenseID, model.ExpenseApproved); err != nil {
			return nil, err
		}
		expense.Status = model.ExpenseApproved
	case approval.OutcomeRejected:
		if err := s.expenseRepo.Finalize(ctx, expenseID, model.ExpenseRejected); err != nil {
			return nil, err
		}
		expense.Status = model.ExpenseRejected
	}

	slog.Info("approval decision recorded",
		"expense", expenseID, "approver", approverID, "level", level,
		"decision", decision, "outcome", outcome.String())

	return &DecisionResult{Expense: expense, Record: record, Outcome: outcome.String()}, nil
}

// PendingItem pairs a pending approval record with its expense for queue
// rendering.
type PendingItem struct {
	Record  model.ExpenseApproval `json:"record"`
	Expense model.Expense         `json:"expense"`
}

// PendingFor lists the approver's open queue. Records whose expense is no
// longer pending, or whose level the expense has moved past, are skipped:
// they are leftovers of levels resolved by someone else.
func (s *ApprovalService) PendingFor(ctx context.Context, approverID string) ([]PendingItem, error) {
	records, err := s.approvalRepo.FindPendingFor(ctx, approverID)
	if err != nil {
		return nil, err
	}

	items := make([]PendingItem, 0, len(records))
	for _, record := range records {
		expense, err := s.expenseRepo.GetByID(ctx, record.ExpenseID)
		if err != nil {
			return nil, err
		}
		if expense == nil || expense.Status != model.ExpensePending || expense.CurrentLevel != record.Level {
			continue
		}
		items = append(items, PendingItem{Record: record, Expense: *expense})
	}
	return items, nil
}

// History returns every decision record for an expense, all levels, in
// order. Records are never deleted, so this is the full audit trail.
func (s *ApprovalService) History(ctx context.Context, requester *model.User, expenseID string) ([]model.ExpenseApproval, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.CompanyID != requester.CompanyID {
		return nil, errors.New("expense not found")
	}
	if requester.Role == model.RoleEmployee && expense.UserID != requester.ID {
		return nil, errors.New("expense not found")
	}
	return s.approvalRepo.ListByExpense(ctx, expenseID)
}
