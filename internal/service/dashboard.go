package service

import (
	"context"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"github.com/shopspring/decimal"
)

type DashboardService struct {
	expenseRepo repository.ExpenseRepo
	companyRepo repository.CompanyRepo
}

func NewDashboardService(expenseRepo repository.ExpenseRepo, companyRepo repository.CompanyRepo) *DashboardService {
	return &DashboardService{expenseRepo: expenseRepo, companyRepo: companyRepo}
}

// Summary aggregates a company's expenses in base currency. Degraded counts
// how many totals include an unconverted amount, so readers know when the
// numbers are soft.
type Summary struct {
	BaseCurrency    string                      `json:"base_currency"`
	CountByStatus   map[model.ExpenseStatus]int `json:"count_by_status"`
	TotalInBase     decimal.Decimal             `json:"total_in_base"`
	TotalByCategory map[string]decimal.Decimal  `json:"total_by_category"`
	Degraded        int                         `json:"degraded_conversions"`
}

// Summarize scopes to the requester: employees see their own expenses,
// managers and admins the whole company.
func (s *DashboardService) Summarize(ctx context.Context, requester *model.User) (*Summary, error) {
	company, err := s.companyRepo.GetByID(ctx, requester.CompanyID)
	if err != nil {
		return nil, err
	}

	filter := repository.ExpenseFilter{CompanyID: requester.CompanyID}
	if requester.Role == model.RoleEmployee {
		filter.UserID = requester.ID
	}
	expenses, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		CountByStatus:   make(map[model.ExpenseStatus]int),
		TotalByCategory: make(map[string]decimal.Decimal),
	}
	if company != nil {
		summary.BaseCurrency = company.BaseCurrency
	}
	for _, e := range expenses {
		summary.CountByStatus[e.Status]++
		summary.TotalInBase = summary.TotalInBase.Add(e.AmountInBase)
		summary.TotalByCategory[e.Category] = summary.TotalByCategory[e.Category].Add(e.AmountInBase)
		if e.ConversionDegraded {
			summary.Degraded++
		}
	}
	return summary, nil
}
