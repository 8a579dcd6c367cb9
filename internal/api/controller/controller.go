package controller

import (
	"errors"
	"net/http"

	"github.com/ayush-04jha/Expence-Management/internal/approval"
	"github.com/ayush-04jha/Expence-Management/internal/model"
	"github.com/gin-gonic/gin"
)

// currentUser rebuilds the acting user from the JWT claims the middleware
// stashed in the context. Enough for visibility checks; anything that
// matters is re-verified against the store.
func currentUser(c *gin.Context) *model.User {
	return &model.User{
		ID:        c.GetString("userID"),
		CompanyID: c.GetString("companyID"),
		Role:      model.Role(c.GetString("role")),
	}
}

// statusFor maps domain errors onto HTTP statuses. Unknown errors are the
// caller's problem to classify.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, approval.ErrUnauthorized):
		return http.StatusForbidden, true
	case errors.Is(err, approval.ErrDuplicateDecision),
		errors.Is(err, approval.ErrInvalidTransition):
		return http.StatusConflict, true
	case errors.Is(err, approval.ErrRuleMisconfigured):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}
