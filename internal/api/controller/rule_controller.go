package controller

import (
	"log/slog"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
)

type RuleController struct {
	service *service.RuleService
}

func NewRuleController(s *service.RuleService) *RuleController {
	return &RuleController{service: s}
}

type RuleLevelRequest struct {
	Level       int      `json:"level"`
	Roles       []string `json:"roles"`
	UserIDs     []string `json:"user_ids"`
	Description string   `json:"description"`
}

type RuleRequest struct {
	Name                string             `json:"name" binding:"required,min=2,max=255"`
	RuleType            string             `json:"rule_type" binding:"required,oneof=sequential percentage specific_approver hybrid"`
	Levels              []RuleLevelRequest `json:"levels"`
	PercentageThreshold *int               `json:"percentage_threshold"`
	SpecificApproverID  *string            `json:"specific_approver_id"`
	Activate            bool               `json:"activate"`
}

func (r RuleRequest) toInput() service.RuleInput {
	levels := make(model.ApprovalLevels, 0, len(r.Levels))
	for _, lvl := range r.Levels {
		roles := make([]model.Role, 0, len(lvl.Roles))
		for _, role := range lvl.Roles {
			roles = append(roles, model.Role(role))
		}
		levels = append(levels, model.ApprovalLevel{
			Level:       lvl.Level,
			Roles:       roles,
			UserIDs:     lvl.UserIDs,
			Description: lvl.Description,
		})
	}
	return service.RuleInput{
		Name:                r.Name,
		RuleType:            model.RuleType(r.RuleType),
		Levels:              levels,
		PercentageThreshold: r.PercentageThreshold,
		SpecificApproverID:  r.SpecificApproverID,
		Activate:            r.Activate,
	}
}

// Create stores an approval rule
// @Summary Create an approval rule
// @Description Drafts may be any shape; activation validates the rule and deactivates the company's other rules.
// @Tags Rule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RuleRequest true "rule"
// @Success 200 {object} response.Response{data=model.ApprovalRule}
// @Failure 422 {object} response.Response "misconfigured rule"
// @Router /rules [post]
func (ctrl *RuleController) Create(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	rule, err := ctrl.service.CreateRule(c.Request.Context(), c.GetString("companyID"), req.toInput())
	if err != nil {
		if status, ok := statusFor(err); ok {
			response.Error(c, status, err.Error())
			return
		}
		slog.Error("rule creation failed", "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, rule)
}

// Update edits a rule
// @Summary Update an approval rule
// @Description In-flight expenses keep the snapshot they were submitted under.
// @Tags Rule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "rule id"
// @Param request body RuleRequest true "rule"
// @Success 200 {object} response.Response{data=model.ApprovalRule}
// @Failure 422 {object} response.Response "misconfigured rule"
// @Router /rules/{id} [put]
func (ctrl *RuleController) Update(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	rule, err := ctrl.service.UpdateRule(c.Request.Context(), c.GetString("companyID"), c.Param("id"), req.toInput())
	if err != nil {
		if status, ok := statusFor(err); ok {
			response.Error(c, status, err.Error())
			return
		}
		slog.Error("rule update failed", "rule", c.Param("id"), "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, rule)
}

// Activate makes a rule the company's active one
// @Summary Activate an approval rule
// @Tags Rule
// @Produce json
// @Security BearerAuth
// @Param id path string true "rule id"
// @Success 200 {object} response.Response{data=model.ApprovalRule}
// @Failure 422 {object} response.Response "misconfigured rule"
// @Router /rules/{id}/activate [post]
func (ctrl *RuleController) Activate(c *gin.Context) {
	rule, err := ctrl.service.ActivateRule(c.Request.Context(), c.GetString("companyID"), c.Param("id"))
	if err != nil {
		if status, ok := statusFor(err); ok {
			response.Error(c, status, err.Error())
			return
		}
		slog.Error("rule activation failed", "rule", c.Param("id"), "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, rule)
}

// List returns the company's rules
// @Summary List approval rules
// @Tags Rule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.ApprovalRule}
// @Router /rules [get]
func (ctrl *RuleController) List(c *gin.Context) {
	rules, err := ctrl.service.ListRules(c.Request.Context(), c.GetString("companyID"))
	if err != nil {
		slog.Error("rule listing failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "listing failed")
		return
	}
	response.Success(c, rules)
}
