package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"foodexpress/models"
	"foodexpress/services"

	"github.com/sirupsen/logrus"
)

// UserController handles registration and login requests
type UserController struct {
	identity *services.IdentityService
	logger   *logrus.Logger
}

// NewUserController creates a new UserController
func NewUserController(identity *services.IdentityService, logger *logrus.Logger) *UserController {
	return &UserController{identity: identity, logger: logger}
}

// Register handles POST /api/register
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": invalidInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.identity.Register(ctx, req)
	if err != nil {
		respondWithError(w, uc.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "User registered successfully",
		"userId":   user.ID,
		"username": user.Username,
	})
}

// Login handles POST /api/login. No token or session is issued; credentials are
// checked per request.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, map[string]string{"message": invalidInputMessage})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := uc.identity.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		respondWithError(w, uc.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"userId":   summary.ID,
		"username": summary.Username,
		"email":    summary.Email,
		"phone":    summary.Phone,
		"address":  summary.Address,
	})
}
