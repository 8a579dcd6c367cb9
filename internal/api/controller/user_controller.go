package controller

import (
	"log/slog"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/api/response"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/ayush-04jha/Expence-Management/internal/service"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *service.UserService
}

func NewUserController(s *service.UserService) *UserController {
	return &UserController{service: s}
}

type CreateUserRequest struct {
	Email     string  `json:"email" binding:"required,email"`
	FullName  string  `json:"full_name" binding:"required,min=2,max=255"`
	Role      string  `json:"role" binding:"required,oneof=admin manager employee"`
	ManagerID *string `json:"manager_id"`
	Password  string  `json:"password" binding:"required,min=6"`
}

// Create adds a user to the admin's company
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "user"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /users [post]
func (ctrl *UserController) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	user, err := ctrl.service.CreateUser(c.Request.Context(), c.GetString("companyID"), service.CreateUserInput{
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      model.Role(req.Role),
		ManagerID: req.ManagerID,
		Password:  req.Password,
	})
	if err != nil {
		slog.Warn("user creation failed", "email", req.Email, "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, user)
}

// List returns the company's users
// @Summary List users
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /users [get]
func (ctrl *UserController) List(c *gin.Context) {
	users, err := ctrl.service.ListUsers(c.Request.Context(), c.GetString("companyID"))
	if err != nil {
		slog.Error("user listing failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "listing failed")
		return
	}
	response.Success(c, users)
}

type UpdateUserRequest struct {
	FullName     *string `json:"full_name"`
	Role         *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	ManagerID    *string `json:"manager_id"`
	ClearManager bool    `json:"clear_manager"`
}

// Update edits a user
// @Summary Update a user
// @Description Role changes and manager assignment; cyclic reporting chains are refused.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Param request body UpdateUserRequest true "fields to change"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /users/{id} [patch]
func (ctrl *UserController) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid parameters: "+err.Error())
		return
	}

	input := service.UpdateUserInput{
		FullName:     req.FullName,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		input.Role = &role
	}

	user, err := ctrl.service.UpdateUser(c.Request.Context(), c.GetString("companyID"), c.Param("id"), input)
	if err != nil {
		slog.Warn("user update failed", "user", c.Param("id"), "err", err)
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, user)
}
