package approval

import (
	"github.com/ayush-04jha/Expence-Management/internal/model"
)

// Decision is what an approver submits.
type Decision string

const (
	DecisionApprove Decision = "approved"
	DecisionReject  Decision = "rejected"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Status translates the decision into the stored approval status.
func (d Decision) Status() model.ApprovalStatus {
	if d == DecisionApprove {
		return model.ApprovalApproved
	}
	return model.ApprovalRejected
}

// Outcome is the state machine's verdict after re-evaluating the current
// level against the recorded decision set. Transitions are total: every
// decision set maps to exactly one outcome.
type Outcome int

const (
	// OutcomePending: level incomplete, stay at Pending(level).
	OutcomePending Outcome = iota
	// OutcomeAdvance: level complete, move to Pending(level+1).
	OutcomeAdvance
	// OutcomeApproved: last level complete, expense fully approved.
	OutcomeApproved
	// OutcomeRejected: rejection finalized, later levels never evaluated.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdvance:
		return "advance"
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Evaluate applies the level-completion policy for the snapshot's rule type.
// decisions are the recorded ExpenseApproval rows at the current level;
// eligible is the resolved approver set for that level. Rows from users who
// are no longer eligible are ignored rather than counted.
func Evaluate(snap model.RuleSnapshot, level int, decisions []model.ExpenseApproval, eligible map[string]model.User) Outcome {
	switch snap.RuleType {
	case model.RulePercentage:
		return evaluatePercentage(snap, decisions, eligible)
	case model.RuleSpecificApprover:
		return evaluateSpecific(snap, decisions)
	case model.RuleHybrid:
		return evaluateHybrid(snap, decisions, eligible)
	default:
		return evaluateSequential(snap, level, decisions, eligible)
	}
}

// evaluateSequential: any one approval completes the level; any rejection
// short-circuits the whole expense.
func evaluateSequential(snap model.RuleSnapshot, level int, decisions []model.ExpenseApproval, eligible map[string]model.User) Outcome {
	approved := false
	for _, d := range decisions {
		if _, ok := eligible[d.ApproverID]; !ok {
			continue
		}
		switch d.Status {
		case model.ApprovalRejected:
			return OutcomeRejected
		case model.ApprovalApproved:
			approved = true
		}
	}
	if !approved {
		return OutcomePending
	}
	if level+1 < snap.LevelCount() {
		return OutcomeAdvance
	}
	return OutcomeApproved
}

// evaluatePercentage: approve once approvals reach the threshold share of
// the eligible pool; reject as soon as the remaining undecided approvers
// could not reach it even if they all approved. Integer math throughout,
// so 2 of 3 at 60% approves (200 >= 180) without rounding trouble.
func evaluatePercentage(snap model.RuleSnapshot, decisions []model.ExpenseApproval, eligible map[string]model.User) Outcome {
	threshold := 0
	if snap.PercentageThreshold != nil {
		threshold = *snap.PercentageThreshold
	}
	total := len(eligible)
	if total == 0 || threshold <= 0 {
		return OutcomePending
	}

	approvals, rejections := tally(decisions, eligible)
	if approvals*100 >= threshold*total {
		return OutcomeApproved
	}
	if (total-rejections)*100 < threshold*total {
		return OutcomeRejected
	}
	return OutcomePending
}

// evaluateSpecific: only the designated approver moves the state machine.
// Everyone else's decisions are recorded but informational.
func evaluateSpecific(snap model.RuleSnapshot, decisions []model.ExpenseApproval) Outcome {
	if snap.SpecificApproverID == nil {
		return OutcomePending
	}
	for _, d := range decisions {
		if d.ApproverID != *snap.SpecificApproverID {
			continue
		}
		switch d.Status {
		case model.ApprovalApproved:
			return OutcomeApproved
		case model.ApprovalRejected:
			return OutcomeRejected
		}
	}
	return OutcomePending
}

// evaluateHybrid: approved when either the specific-approver or the
// percentage condition holds. Rejection follows the specific sub-rule when
// a specific approver is configured (their veto is the only terminal
// rejection, since they could still approve); otherwise percentage
// impossibility applies.
func evaluateHybrid(snap model.RuleSnapshot, decisions []model.ExpenseApproval, eligible map[string]model.User) Outcome {
	if snap.SpecificApproverID != nil {
		if out := evaluateSpecific(snap, decisions); out != OutcomePending {
			return out
		}
		threshold := 0
		if snap.PercentageThreshold != nil {
			threshold = *snap.PercentageThreshold
		}
		total := len(eligible)
		if total == 0 || threshold <= 0 {
			return OutcomePending
		}
		approvals, _ := tally(decisions, eligible)
		if approvals*100 >= threshold*total {
			return OutcomeApproved
		}
		return OutcomePending
	}
	return evaluatePercentage(snap, decisions, eligible)
}

func tally(decisions []model.ExpenseApproval, eligible map[string]model.User) (approvals, rejections int) {
	for _, d := range decisions {
		if _, ok := eligible[d.ApproverID]; !ok {
			continue
		}
		switch d.Status {
		case model.ApprovalApproved:
			approvals++
		case model.ApprovalRejected:
			rejections++
		}
	}
	return approvals, rejections
}
