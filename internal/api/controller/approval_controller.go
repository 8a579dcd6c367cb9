package controller

import (
	"log/slog"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
)

type ApprovalController struct {
	service *service.ApprovalService
}

func NewApprovalController(s *service.ApprovalService) *ApprovalController {
	return &ApprovalController{service: s}
}

// Pending lists the caller's open approval queue
// @Summary Pending approvals
// @Tags Approval
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.PendingItem}
// @Router /approvals/pending [get]
func (ctrl *ApprovalController) Pending(c *gin.Context) {
	items, err := ctrl.service.PendingFor(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		slog.Error("pending approvals lookup failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	response.Success(c, items)
}

type DecideRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

// Decide records an approve/reject decision
// @Summary Decide on an expense
// @Description Records the decision and advances the approval state machine. Ineligible approvers get 403 even if the UI showed them the button; repeat decisions at the same level get 409.
// @Tags Approval
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "expense id"
// @Param request body DecideRequest true "decision"
// @Success 200 {object} response.Response{data=service.DecisionResult}
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /approvals/{id}/decide [post]
func (ctrl *ApprovalController) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	result, err := ctrl.service.Decide(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		approval.Decision(req.Decision),
		req.Comments,
	)
	if err != nil {
		if status, ok := statusFor(err); ok {
			response.Error(c, status, err.Error())
			return
		}
		slog.Error("decision failed", "expense", c.Param("id"), "err", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, result)
}

// History returns the full decision trail of an expense
// @Summary Approval history
// @Tags Approval
// @Produce json
// @Security BearerAuth
// @Param id path string true "expense id"
// @Success 200 {object} response.Response{data=[]model.ExpenseApproval}
// @Router /approvals/{id}/history [get]
func (ctrl *ApprovalController) History(c *gin.Context) {
	records, err := ctrl.service.History(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	response.Success(c, records)
}
