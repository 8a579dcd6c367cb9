package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-04jha/Expence-Management/internal/model"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func eligibleSet(ids ...string) map[string]model.User {
	m := make(map[string]model.User, len(ids))
	for _, id := range ids {
		m[id] = model.User{ID: id, CompanyID: "c1"}
	}
	return m
}

func approvedBy(id string) model.ExpenseApproval {
	return model.ExpenseApproval{ApproverID: id, Status: model.ApprovalApproved}
}

func rejectedBy(id string) model.ExpenseApproval {
	return model.ExpenseApproval{ApproverID: id, Status: model.ApprovalRejected}
}

func pendingFor(id string) model.ExpenseApproval {
	return model.ExpenseApproval{ApproverID: id, Status: model.ApprovalPending}
}

func sequentialSnap(levels int) model.RuleSnapshot {
	snap := model.RuleSnapshot{RuleID: "r1", RuleType: model.RuleSequential}
	for i := 0; i < levels; i++ {
		snap.Levels = append(snap.Levels, model.ApprovalLevel{Level: i, Roles: []model.Role{model.RoleManager}})
	}
	return snap
}

func TestEvaluateSequential(t *testing.T) {
	eligible := eligibleSet("m1", "m2")

	t.Run("no decisions stays pending", func(t *testing.T) {
		out := Evaluate(sequentialSnap(2), 0, nil, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("one approval completes a mid level", func(t *testing.T) {
		out := Evaluate(sequentialSnap(2), 0, []model.ExpenseApproval{approvedBy("m1"), pendingFor("m2")}, eligible)
		assert.Equal(t, OutcomeAdvance, out)
	})

	t.Run("one approval at the last level approves", func(t *testing.T) {
		out := Evaluate(sequentialSnap(2), 1, []model.ExpenseApproval{approvedBy("m2")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("single level rule approves immediately", func(t *testing.T) {
		out := Evaluate(sequentialSnap(1), 0, []model.ExpenseApproval{approvedBy("m1")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("any rejection short-circuits", func(t *testing.T) {
		out := Evaluate(sequentialSnap(3), 0, []model.ExpenseApproval{approvedBy("m1"), rejectedBy("m2")}, eligible)
		assert.Equal(t, OutcomeRejected, out)
	})

	t.Run("decisions from ineligible users are ignored", func(t *testing.T) {
		out := Evaluate(sequentialSnap(2), 0, []model.ExpenseApproval{approvedBy("stranger")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})
}

func TestEvaluatePercentage(t *testing.T) {
	snap := model.RuleSnapshot{
		RuleID:              "r1",
		RuleType:            model.RulePercentage,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(60),
	}
	eligible := eligibleSet("m1", "m2", "m3")

	t.Run("below threshold stays pending", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("two of three at 60 percent approves", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), approvedBy("m2")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("one rejection leaves the threshold reachable", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), rejectedBy("m2")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("rejects once the threshold is unreachable", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{rejectedBy("m1"), rejectedBy("m2")}, eligible)
		assert.Equal(t, OutcomeRejected, out)
	})

	t.Run("hundred percent needs everyone", func(t *testing.T) {
		all := snap
		all.PercentageThreshold = intPtr(100)
		out := Evaluate(all, 0, []model.ExpenseApproval{approvedBy("m1"), approvedBy("m2")}, eligible)
		assert.Equal(t, OutcomePending, out)

		out = Evaluate(all, 0, []model.ExpenseApproval{approvedBy("m1"), approvedBy("m2"), approvedBy("m3")}, eligible)
		assert.Equal(t, OutcomeApproved, out)

		out = Evaluate(all, 0, []model.ExpenseApproval{rejectedBy("m1")}, eligible)
		assert.Equal(t, OutcomeRejected, out)
	})

	t.Run("empty eligible pool stalls instead of dividing by zero", func(t *testing.T) {
		out := Evaluate(snap, 0, nil, map[string]model.User{})
		assert.Equal(t, OutcomePending, out)
	})
}

func TestEvaluateSpecificApprover(t *testing.T) {
	snap := model.RuleSnapshot{
		RuleID:             "r1",
		RuleType:           model.RuleSpecificApprover,
		Levels:             model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		SpecificApproverID: strPtr("cfo"),
	}
	eligible := eligibleSet("cfo", "m1", "m2")

	t.Run("other approvals are informational only", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), approvedBy("m2")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("other rejections are informational only", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{rejectedBy("m1")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("designated approver approves", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{rejectedBy("m1"), approvedBy("cfo")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("designated approver rejects", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), rejectedBy("cfo")}, eligible)
		assert.Equal(t, OutcomeRejected, out)
	})
}

func TestEvaluateHybrid(t *testing.T) {
	snap := model.RuleSnapshot{
		RuleID:              "r1",
		RuleType:            model.RuleHybrid,
		Levels:              model.ApprovalLevels{{Level: 0, Roles: []model.Role{model.RoleManager}}},
		PercentageThreshold: intPtr(60),
		SpecificApproverID:  strPtr("cfo"),
	}
	eligible := eligibleSet("cfo", "m1", "m2", "m3")

	t.Run("specific approver alone approves", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("cfo")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("percentage alone approves", func(t *testing.T) {
		// 3 of 4 eligible: 300 >= 60*4.
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), approvedBy("m2"), approvedBy("m3")}, eligible)
		assert.Equal(t, OutcomeApproved, out)
	})

	t.Run("specific veto rejects", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{approvedBy("m1"), rejectedBy("cfo")}, eligible)
		assert.Equal(t, OutcomeRejected, out)
	})

	t.Run("pool rejections do not reject while the specific approver is undecided", func(t *testing.T) {
		out := Evaluate(snap, 0, []model.ExpenseApproval{rejectedBy("m1"), rejectedBy("m2"), rejectedBy("m3")}, eligible)
		assert.Equal(t, OutcomePending, out)
	})

	t.Run("without a specific approver it degenerates to percentage", func(t *testing.T) {
		pct := snap
		pct.SpecificApproverID = nil
		pool := eligibleSet("m1", "m2", "m3")
		out := Evaluate(pct, 0, []model.ExpenseApproval{rejectedBy("m1"), rejectedBy("m2")}, pool)
		assert.Equal(t, OutcomeRejected, out)
	})
}

func TestDecision(t *testing.T) {
	require.True(t, DecisionApprove.Valid())
	require.True(t, DecisionReject.Valid())
	require.False(t, Decision("maybe").Valid())

	assert.Equal(t, model.ApprovalApproved, DecisionApprove.Status())
	assert.Equal(t, model.ApprovalRejected, DecisionReject.Status())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "pending", OutcomePending.String())
	assert.Equal(t, "advance", OutcomeAdvance.String())
	assert.Equal(t, "approved", OutcomeApproved.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
}
