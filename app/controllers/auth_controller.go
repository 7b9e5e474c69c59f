package controllers

import (
	"errors"
	"net/http"

	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/services"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/response"
)

type AuthController struct {
	service *services.AuthService
	users   *repositories.UserRepository
}

func NewAuthController(service *services.AuthService, users *repositories.UserRepository) *AuthController {
	return &AuthController{service: service, users: users}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"     validate:"required,max=255"`
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, pair, err := c.service.Register(body.Name, body.Email, body.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		response.Conflict(w, "Email already registered")
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create account")
		return
	}

	response.Created(w, map[string]interface{}{"user": user, "tokens": pair})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, pair, err := c.service.Login(body.Email, body.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		response.Unauthorized(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	response.Success(w, map[string]interface{}{"user": user, "tokens": pair})
}

func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.service.Refresh(body.RefreshToken)
	if err != nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, pair)
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := c.users.FindByID(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, user)
}
