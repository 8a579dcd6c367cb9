package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ayush-04jha/Expence-Management/internal/api/controller"
	"github.com/ayush-04jha/Expence-Management/internal/api/middleware"
	"github.com/ayush-04jha/Expence-Management/internal/model"

	_ "github.com/ayush-04jha/Expence-Management/docs"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Auth      *controller.AuthController
	User      *controller.UserController
	Expense   *controller.ExpenseController
	Approval  *controller.ApprovalController
	Rule      *controller.RuleController
	Dashboard *controller.DashboardController
}

// RegisterRoutes mounts all routes. Role gates here are a convenience; the
// approval engine re-checks eligibility on every decision regardless.
func RegisterRoutes(r *gin.Engine, ctrls Controllers) {
	r.Use(middleware.Cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/api/v1")
	{
		public.POST("/auth/signup", ctrls.Auth.Signup)
		public.POST("/auth/login", ctrls.Auth.Login)
		public.GET("/countries", ctrls.Auth.Countries)
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		protected.POST("/expenses", ctrls.Expense.Submit)
		protected.GET("/expenses", ctrls.Expense.List)
		protected.GET("/expenses/:id", ctrls.Expense.Get)
		protected.POST("/expenses/receipt/scan", ctrls.Expense.ScanReceipt)

		protected.GET("/approvals/pending", ctrls.Approval.Pending)
		protected.POST("/approvals/:id/decide", ctrls.Approval.Decide)
		protected.GET("/approvals/:id/history", ctrls.Approval.History)

		protected.GET("/dashboard/summary", ctrls.Dashboard.Summary)

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(string(model.RoleAdmin)))
		{
			admin.POST("/users", ctrls.User.Create)
			admin.GET("/users", ctrls.User.List)
			admin.PATCH("/users/:id", ctrls.User.Update)

			admin.GET("/rules", ctrls.Rule.List)
			admin.POST("/rules", ctrls.Rule.Create)
			admin.PUT("/rules/:id", ctrls.Rule.Update)
			admin.POST("/rules/:id/activate", ctrls.Rule.Activate)
		}
	}
}
