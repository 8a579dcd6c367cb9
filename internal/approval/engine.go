package approval

import (
	"context"
	"fmt"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

// EligibleApprovers resolves the concrete set of users allowed to decide at
// the given level of a bound rule. Eligibility is the union of the level's
// role set and explicit id set; for specific_approver and hybrid rules the
// designated approver is always included.
//
// Ids that no longer resolve are skipped, not failed: a bound expense keeps
// its snapshot even if the directory changed underneath it.
func EligibleApprovers(ctx context.Context, dir Directory, companyID string, snap model.RuleSnapshot, level int) (map[string]model.User, error) {
	eligible := make(map[string]model.User)

	if lvl, ok := levelAt(snap, level); ok {
		for _, role := range lvl.Roles {
			users, err := dir.GetUsersByRole(ctx, companyID, role)
			if err != nil {
				return nil, fmt.Errorf("resolve role %q: %w", role, err)
			}
			for _, u := range users {
				eligible[u.ID] = u
			}
		}
		for _, id := range lvl.UserIDs {
			u, err := dir.GetUser(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("resolve user %q: %w", id, err)
			}
			if u != nil && u.CompanyID == companyID {
				eligible[u.ID] = *u
			}
		}
	}

	if snap.RuleType == model.RuleSpecificApprover || snap.RuleType == model.RuleHybrid {
		if snap.SpecificApproverID != nil {
			u, err := dir.GetUser(ctx, *snap.SpecificApproverID)
			if err != nil {
				return nil, fmt.Errorf("resolve specific approver: %w", err)
			}
			if u != nil && u.CompanyID == companyID {
				eligible[u.ID] = *u
			}
		}
	}

	return eligible, nil
}

// levelAt picks the level entry that supplies the eligible set. Sequential
// rules walk their whole sequence; the other types evaluate a single level
// and use Levels[0] as the eligibility source when present.
func levelAt(snap model.RuleSnapshot, level int) (model.ApprovalLevel, bool) {
	if snap.RuleType != model.RuleSequential {
		level = 0
	}
	if level < 0 || level >= len(snap.Levels) {
		return model.ApprovalLevel{}, false
	}
	return snap.Levels[level], true
}

// ValidateRule checks a rule before activation and wraps every failure in
// ErrRuleMisconfigured. It is intentionally strict here and nowhere else:
// an expense already bound to a rule is evaluated from its snapshot no
// matter what this function would say about the rule today.
func ValidateRule(ctx context.Context, dir Directory, rule *model.ApprovalRule) error {
	if !rule.RuleType.Valid() {
		return fmt.Errorf("%w: unknown rule type %q", ErrRuleMisconfigured, rule.RuleType)
	}

	switch rule.RuleType {
	case model.RuleSequential:
		if len(rule.Levels) == 0 {
			return fmt.Errorf("%w: sequential rule has no levels", ErrRuleMisconfigured)
		}
	case model.RulePercentage:
		if err := validateThreshold(rule); err != nil {
			return err
		}
		if len(rule.Levels) == 0 {
			return fmt.Errorf("%w: percentage rule needs a level to define its approver pool", ErrRuleMisconfigured)
		}
	case model.RuleSpecificApprover:
		if err := validateSpecificApprover(ctx, dir, rule); err != nil {
			return err
		}
	case model.RuleHybrid:
		if err := validateThreshold(rule); err != nil {
			return err
		}
		if err := validateSpecificApprover(ctx, dir, rule); err != nil {
			return err
		}
	}

	for i, lvl := range rule.Levels {
		if lvl.Level != i {
			return fmt.Errorf("%w: level indices must be contiguous from 0, got %d at position %d", ErrRuleMisconfigured, lvl.Level, i)
		}
		if len(lvl.Roles) == 0 && len(lvl.UserIDs) == 0 {
			return fmt.Errorf("%w: level %d is empty", ErrRuleMisconfigured, i)
		}
		for _, role := range lvl.Roles {
			if !role.Valid() {
				return fmt.Errorf("%w: level %d references unknown role %q", ErrRuleMisconfigured, i, role)
			}
		}
		for _, id := range lvl.UserIDs {
			u, err := dir.GetUser(ctx, id)
			if err != nil {
				return fmt.Errorf("resolve user %q: %w", id, err)
			}
			if u == nil || u.CompanyID != rule.CompanyID {
				return fmt.Errorf("%w: level %d references invalid approver %q", ErrRuleMisconfigured, i, id)
			}
		}
	}

	// Every level must resolve to at least one live approver right now.
	snap := rule.Snapshot()
	for level := 0; level < snap.LevelCount(); level++ {
		eligible, err := EligibleApprovers(ctx, dir, rule.CompanyID, snap, level)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			return fmt.Errorf("%w: no eligible approver resolves at level %d", ErrRuleMisconfigured, level)
		}
	}

	return nil
}

func validateThreshold(rule *model.ApprovalRule) error {
	if rule.PercentageThreshold == nil {
		return fmt.Errorf("%w: %s rule needs a percentage threshold", ErrRuleMisconfigured, rule.RuleType)
	}
	t := *rule.PercentageThreshold
	if t <= 0 || t > 100 {
		return fmt.Errorf("%w: percentage threshold %d out of range (0,100]", ErrRuleMisconfigured, t)
	}
	return nil
}

func validateSpecificApprover(ctx context.Context, dir Directory, rule *model.ApprovalRule) error {
	if rule.SpecificApproverID == nil || *rule.SpecificApproverID == "" {
		return fmt.Errorf("%w: %s rule needs a specific approver", ErrRuleMisconfigured, rule.RuleType)
	}
	u, err := dir.GetUser(ctx, *rule.SpecificApproverID)
	if err != nil {
		return fmt.Errorf("resolve specific approver: %w", err)
	}
	if u == nil || u.CompanyID != rule.CompanyID {
		return fmt.Errorf("%w: specific approver %q not found in company", ErrRuleMisconfigured, *rule.SpecificApproverID)
	}
	return nil
}
