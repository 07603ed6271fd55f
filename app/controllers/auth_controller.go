package controllers

import (
	"net/http"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/bind"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/middleware"
	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register creates a new account.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	user, err := c.service.Register(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, "Registered successfully", response.M{"user": user})
}

// Login verifies credentials and returns a signed token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	user, token, err := c.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Logged in successfully", response.M{
		"user":  user,
		"token": token,
	})
}

// ForgotPassword resets the password when the recovery answer matches.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string `json:"email"       validate:"required,email"`
		Answer      string `json:"answer"      validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=6"`
	}
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	if err := c.service.ResetPassword(r.Context(), in.Email, in.Answer, in.NewPassword); err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Password reset successfully", nil)
}

// Profile applies a partial profile update for the authenticated user.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var in services.ProfileInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationFailed(w, "Validation failed", errs)
		return
	}

	user, err := c.service.UpdateProfile(r.Context(), userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.OK(w, "Profile updated successfully", response.M{"user": user})
}

// Check answers gate probes: reaching this handler means the middleware
// chain (auth, optionally admin) let the request through.
func (c *AuthController) Check(w http.ResponseWriter, r *http.Request) {
	response.OK(w, "", response.M{"ok": true})
}
