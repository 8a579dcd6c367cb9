package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseController struct {
	service *service.ExpenseService
}

func NewExpenseController(s *service.ExpenseService) *ExpenseController {
	return &ExpenseController{service: s}
}

type SubmitExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,len=3"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date" binding:"required"` // 2006-01-02
	ReceiptURL  *string         `json:"receipt_url"`
}

// Submit creates an expense
// @Summary Submit an expense
// @Description Normalizes the amount into the company base currency, binds the active approval rule and schedules the first approval level.
// @Tags Expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitExpenseRequest true "expense"
// @Success 200 {object} response.Response{data=model.Expense}
// @Failure 400 {object} response.Response
// @Router /expenses [post]
func (ctrl *ExpenseController) Submit(c *gin.Context) {
	var req SubmitExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "expense_date must be YYYY-MM-DD")
		return
	}

	expense, err := ctrl.service.Submit(c.Request.Context(), c.GetString("userID"), service.SubmitExpenseInput{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Description: req.Description,
		ExpenseDate: expenseDate,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		slog.Error("expense submission failed", "user", c.GetString("userID"), "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, expense)
}

type ListExpensesRequest struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	SortBy   string `form:"sort_by"` // date | amount
	All      bool   `form:"all"`     // managers/admins: whole company
}

// List filters expenses
// @Summary List expenses
// @Description Own expenses by default; managers and admins may pass all=true for the whole company.
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending|approved|rejected"
// @Param category query string false "category filter"
// @Param sort_by query string false "date|amount"
// @Param all query bool false "company-wide listing"
// @Success 200 {object} response.Response{data=[]model.Expense}
// @Router /expenses [get]
func (ctrl *ExpenseController) List(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters")
		return
	}

	user := currentUser(c)
	filter := repository.ExpenseFilter{
		CompanyID: user.CompanyID,
		UserID:    user.ID,
		Status:    model.ExpenseStatus(req.Status),
		Category:  req.Category,
		SortBy:    req.SortBy,
	}
	if req.All && user.Role != model.RoleEmployee {
		filter.UserID = ""
	}

	expenses, err := ctrl.service.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("expense listing failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "listing failed")
		return
	}
	response.Success(c, expenses)
}

// Get fetches one expense
// @Summary Get an expense
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param id path string true "expense id"
// @Success 200 {object} response.Response{data=model.Expense}
// @Failure 404 {object} response.Response
// @Router /expenses/{id} [get]
func (ctrl *ExpenseController) Get(c *gin.Context) {
	expense, err := ctrl.service.GetByID(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	response.Success(c, expense)
}

type ScanReceiptRequest struct {
	ReceiptURL string `json:"receipt_url" binding:"required,url"`
}

// ScanReceipt suggests amount and date from a receipt
// @Summary Scan a receipt
// @Description Best-effort OCR suggestion; the submitter may override both fields.
// @Tags Expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScanReceiptRequest true "receipt"
// @Success 200 {object} response.Response{data=ocr.Suggestion}
// @Router /expenses/receipt/scan [post]
func (ctrl *ExpenseController) ScanReceipt(c *gin.Context) {
	var req ScanReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	suggestion, err := ctrl.service.ScanReceipt(c.Request.Context(), req.ReceiptURL)
	if err != nil {
		slog.Warn("receipt scan failed", "err", err)
		response.Error(c, http.StatusBadGateway, "receipt scan failed")
		return
	}
	response.Success(c, suggestion)
}
