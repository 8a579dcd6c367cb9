package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
)

type RuleService struct {
	ruleRepo  repository.RuleRepo
	directory approval.Directory
}

func NewRuleService(ruleRepo repository.RuleRepo, directory approval.Directory) *RuleService {
	return &RuleService{ruleRepo: ruleRepo, directory: directory}
}

type RuleInput struct {
	Name                string
	RuleType            model.RuleType
	Levels              model.ApprovalLevels
	PercentageThreshold *int
	SpecificApproverID  *string
	Activate            bool
}

// CreateRule stores a rule. Drafts may be saved in any shape; only
// activation runs the misconfiguration check, per the error policy.
func (s *RuleService) CreateRule(ctx context.Context, companyID string, input RuleInput) (*model.ApprovalRule, error) {
	rule := &model.ApprovalRule{
		ID:                  newID(),
		CompanyID:           companyID,
		Name:                input.Name,
		RuleType:            input.RuleType,
		Levels:              input.Levels,
		PercentageThreshold: input.PercentageThreshold,
		SpecificApproverID:  input.SpecificApproverID,
	}
	if input.Activate {
		if err := approval.ValidateRule(ctx, s.directory, rule); err != nil {
			return nil, err
		}
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	if input.Activate {
		if err := s.ruleRepo.Activate(ctx, companyID, rule.ID); err != nil {
			return nil, err
		}
		rule.IsActive = true
		slog.Info("approval rule activated", "rule", rule.ID, "company", companyID)
	}
	return rule, nil
}

// UpdateRule edits a rule in place. Expenses already bound to it are not
// affected: they evaluate from their submission-time snapshot.
func (s *RuleService) UpdateRule(ctx context.Context, companyID, ruleID string, input RuleInput) (*model.ApprovalRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.CompanyID != companyID {
		return nil, errors.New("rule not found")
	}

	rule.Name = input.Name
	rule.RuleType = input.RuleType
	rule.Levels = input.Levels
	rule.PercentageThreshold = input.PercentageThreshold
	rule.SpecificApproverID = input.SpecificApproverID

	if rule.IsActive || input.Activate {
		if err := approval.ValidateRule(ctx, s.directory, rule); err != nil {
			return nil, err
		}
	}
	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	if input.Activate && !rule.IsActive {
		if err := s.ruleRepo.Activate(ctx, companyID, rule.ID); err != nil {
			return nil, err
		}
		rule.IsActive = true
	}
	return rule, nil
}

// ActivateRule makes the rule the company's one active rule, deactivating
// the rest. Misconfigured rules are refused here and only here.
func (s *RuleService) ActivateRule(ctx context.Context, companyID, ruleID string) (*model.ApprovalRule, error) {
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.CompanyID != companyID {
		return nil, errors.New("rule not found")
	}
	if err := approval.ValidateRule(ctx, s.directory, rule); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Activate(ctx, companyID, ruleID); err != nil {
		return nil, err
	}
	rule.IsActive = true
	slog.Info("approval rule activated", "rule", ruleID, "company", companyID)
	return rule, nil
}

func (s *RuleService) ListRules(ctx context.Context, companyID string) ([]model.ApprovalRule, error) {
	return s.ruleRepo.ListByCompany(ctx, companyID)
}
