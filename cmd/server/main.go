package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayush-04jha/Expence-Management/internal/api"
	"github.com/ayush-04jha/Expence-Management/internal/api/controller"
	"github.com/ayush-04jha/Expence-Management/internal/config"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/countries"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/database"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/exchange"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/ocr"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"github.com/ayush-04jha/Expence-Management/internal/service"
)

// @title           Expense Management API
// @version         1.0
// @description     Expense claims with configurable approval workflows: sequential, percentage, specific-approver and hybrid rules.

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>" (with a space after Bearer)

type repos struct {
	companies repository.CompanyRepo
	users     repository.UserRepo
	expenses  repository.ExpenseRepo
	approvals repository.ApprovalRepo
	rules     repository.RuleRepo
}

func openStorage(cfg config.StorageConfig) repos {
	if cfg.Driver == "memory" {
		slog.Info("using in-memory storage, data will not survive restarts")
		return repos{
			companies: repository.NewMemoryCompanyRepo(),
			users:     repository.NewMemoryUserRepo(),
			expenses:  repository.NewMemoryExpenseRepo(),
			approvals: repository.NewMemoryApprovalRepo(),
			rules:     repository.NewMemoryRuleRepo(),
		}
	}
	db := database.NewMySQLConnection(cfg.DSN)
	return repos{
		companies: repository.NewCompanyRepo(db),
		users:     repository.NewUserRepo(db),
		expenses:  repository.NewExpenseRepo(db),
		approvals: repository.NewApprovalRepo(db),
		rules:     repository.NewRuleRepo(db),
	}
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	if conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := openStorage(conf.Storage)

	exchangeTimeout := time.Duration(conf.Exchange.TimeoutSeconds) * time.Second
	if exchangeTimeout <= 0 {
		exchangeTimeout = 5 * time.Second
	}
	normalizer := exchange.NewNormalizer(exchange.NewClient(conf.Exchange.BaseURL, exchangeTimeout))

	countriesTimeout := time.Duration(conf.Countries.TimeoutSeconds) * time.Second
	if countriesTimeout <= 0 {
		countriesTimeout = 10 * time.Second
	}
	countryClient := countries.NewClient(conf.Countries.BaseURL, countriesTimeout)

	var ocrProvider ocr.Provider = ocr.NewMockProvider()
	if conf.OCR.Provider == "openai" {
		ocrProvider = ocr.NewOpenAIProvider(conf.OCR.OpenAI.APIKey, conf.OCR.OpenAI.BaseURL, conf.OCR.OpenAI.Model)
	}

	authSvc := service.NewAuthService(r.companies, r.users, r.rules, countryClient)
	userSvc := service.NewUserService(r.users)
	ruleSvc := service.NewRuleService(r.rules, r.users)
	expenseSvc := service.NewExpenseService(r.expenses, r.approvals, r.rules, r.companies, r.users, normalizer, ocrProvider)
	approvalSvc := service.NewApprovalService(r.expenses, r.approvals, r.users)
	dashboardSvc := service.NewDashboardService(r.expenses, r.companies)

	engine := gin.Default()
	api.RegisterRoutes(engine, api.Controllers{
		Auth:      controller.NewAuthController(authSvc, countryClient),
		User:      controller.NewUserController(userSvc),
		Expense:   controller.NewExpenseController(expenseSvc),
		Approval:  controller.NewApprovalController(approvalSvc),
		Rule:      controller.NewRuleController(ruleSvc),
		Dashboard: controller.NewDashboardController(dashboardSvc),
	})

	slog.Info("expense management server starting", "port", conf.Server.Port)
	if err := engine.Run(conf.Server.Port); err != nil {
		slog.Error("server exited", "error", err)
	}
}
