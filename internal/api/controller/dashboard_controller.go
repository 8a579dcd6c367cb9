package controller

import (
	"log/slog"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	service *service.DashboardService
}

func NewDashboardController(s *service.DashboardService) *DashboardController {
	return &DashboardController{service: s}
}

// Summary aggregates expenses in base currency
// @Summary Dashboard summary
// @Description Counts by status and totals by category. Employees see their own numbers, managers and admins the company's.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=service.Summary}
// @Router /dashboard/summary [get]
func (ctrl *DashboardController) Summary(c *gin.Context) {
	summary, err := ctrl.service.Summarize(c.Request.Context(), currentUser(c))
	if err != nil {
		slog.Error("dashboard summary failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "summary failed")
		return
	}
	response.Success(c, summary)
}
