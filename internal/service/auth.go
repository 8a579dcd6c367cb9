package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/repository"
	"github.com/google/uuid"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// CurrencyResolver maps a country name to its currency code. Satisfied by
// the restcountries client.
type CurrencyResolver interface {
	CurrencyFor(ctx context.Context, countryName string) (string, error)
}

type AuthService struct {
	companyRepo repository.CompanyRepo
	userRepo    repository.UserRepo
	ruleRepo    repository.RuleRepo
	currencies  CurrencyResolver
}

func NewAuthService(companyRepo repository.CompanyRepo, userRepo repository.UserRepo, ruleRepo repository.RuleRepo, currencies CurrencyResolver) *AuthService {
	return &AuthService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		ruleRepo:    ruleRepo,
		currencies:  currencies,
	}
}

// SignupInput bootstraps a whole tenant: the company, its first admin and a
// default approval rule.
type SignupInput struct {
	CompanyName string
	Country     string
	FullName    string
	Email       string
	Password    string
}

// Signup creates the company (base currency derived from the chosen
// country), its admin account, and a default sequential manager-then-admin
// rule so submissions work before anyone touches settings.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*model.User, string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", errors.New("email already registered")
	}

	// Country lookup fails open to USD: signup should not hinge on a
	// third-party directory being up.
	baseCurrency, err := s.currencies.CurrencyFor(ctx, input.Country)
	if err != nil {
		slog.Warn("currency resolution failed, defaulting to USD", "country", input.Country, "error", err)
		baseCurrency = "USD"
	}

	companyID := newID()
	company := &model.Company{
		ID:           companyID,
		Name:         input.CompanyName,
		Country:      input.Country,
		BaseCurrency: baseCurrency,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	admin := &model.User{
		ID:        newID(),
		CompanyID: companyID,
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      model.RoleAdmin,
		Password:  string(hash),
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, "", err
	}

	rule := &model.ApprovalRule{
		ID:        newID(),
		CompanyID: companyID,
		Name:      "Standard Sequential Approval",
		RuleType:  model.RuleSequential,
		Levels: model.ApprovalLevels{
			{Level: 0, Roles: []model.Role{model.RoleManager}, Description: "Manager approval"},
			{Level: 1, Roles: []model.Role{model.RoleAdmin}, Description: "Admin approval"},
		},
		IsActive: true,
	}
	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// Login checks credentials and issues a JWT carrying id, role and company.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		// Vague on purpose.
		return nil, "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", errors.New("invalid credentials")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) generateToken(user *model.User) (string, error) {
	secret := viper.GetString("jwt.secret")
	expireHours := viper.GetInt("jwt.expire_hours")
	if expireHours <= 0 {
		expireHours = 24
	}

	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"company_id": user.CompanyID,
		"role":       string(user.Role),
		"exp":        time.Now().Add(time.Hour * time.Duration(expireHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
