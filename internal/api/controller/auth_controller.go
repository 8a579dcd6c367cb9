package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/infrastructure/countries"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
)

// CountryLister feeds the signup form's country dropdown. Satisfied by the
// restcountries client.
type CountryLister interface {
	List(ctx context.Context) ([]countries.Country, error)
}

type AuthController struct {
	authService *service.AuthService
	countries   CountryLister
}

func NewAuthController(authService *service.AuthService, countryLister CountryLister) *AuthController {
	return &AuthController{
		authService: authService,
		countries:   countryLister,
	}
}

type SignupRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=2,max=255"`
	Country     string `json:"country" binding:"required"`
	FullName    string `json:"full_name" binding:"required,min=2,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Signup bootstraps a company
// @Summary Company signup
// @Description Creates the company (base currency from the chosen country), its admin user and a default approval rule.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "signup parameters"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Router /auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	user, token, err := ctrl.authService.Signup(c.Request.Context(), service.SignupInput{
		CompanyName: req.CompanyName,
		Country:     req.Country,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		slog.Warn("signup failed", "email", req.Email, "err", err)
		response.Error(c, http.StatusBadRequest, "signup failed: "+err.Error())
		return
	}

	slog.Info("company signed up", "email", req.Email, "company", user.CompanyID)
	response.Success(c, AuthResponse{Token: token, User: user})
}

// Login issues a JWT
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "login parameters"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters")
		return
	}

	user, token, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "err", err)
		// Vague message, resists enumeration.
		response.Error(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	response.Success(c, AuthResponse{Token: token, User: user})
}

type CountryOption struct {
	Name       string   `json:"name"`
	Currencies []string `json:"currencies"`
}

// Countries lists signup country choices
// @Summary Countries and their currencies
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response{data=[]CountryOption}
// @Router /countries [get]
func (ctrl *AuthController) Countries(c *gin.Context) {
	all, err := ctrl.countries.List(c.Request.Context())
	if err != nil {
		slog.Error("country list failed", "err", err)
		response.Error(c, http.StatusBadGateway, "country service unavailable")
		return
	}

	options := make([]CountryOption, 0, len(all))
	for _, country := range all {
		opt := CountryOption{Name: country.Name.Common}
		for code := range country.Currencies {
			opt.Currencies = append(opt.Currencies, code)
		}
		options = append(options, opt)
	}
	response.Success(c, options)
}
