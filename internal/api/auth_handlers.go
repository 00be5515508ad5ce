package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"filevault/internal/auth"
	"filevault/internal/credentials"
)

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret123"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret123"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VybmFtZSI6ImFsaWNlIn0...."`
}

// @Summary      Registers a new user
// @Description  Creates an account with a unique username. The password is stored as a salted bcrypt hash.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "Credentials"
// @Success      201              {object}  MessageResponse
// @Failure      400              {object}  ErrorResponse "Missing or invalid fields"
// @Failure      409              {object}  ErrorResponse "Username already exists"
// @Failure      500              {object}  ErrorResponse "Internal Server Error"
// @Router       /register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, err := s.credentials.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, credentials.ErrDuplicateUsername):
			writeError(w, http.StatusConflict, "Username already exists")
		default:
			s.internalError(w, r, "failed to register user", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: fmt.Sprintf("User '%s' created successfully", req.Username),
	})
}

// @Summary      Logs a user in
// @Description  Verifies credentials and returns a signed, time-limited access token. The error is identical for unknown users and wrong passwords.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {object}  ErrorResponse "Invalid request body"
// @Failure      401            {object}  ErrorResponse "Invalid username or password"
// @Failure      429            {object}  ErrorResponse "Too many failed login attempts"
// @Failure      500            {object}  ErrorResponse "Internal Server Error"
// @Router       /login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.limiter.Check(req.Username); err != nil {
		loginAttemptsTotal.WithLabelValues("locked").Inc()
		writeError(w, http.StatusTooManyRequests, "Too many failed login attempts, try again later")
		return
	}

	ok, err := s.credentials.Verify(r.Context(), req.Username, req.Password)
	if err != nil {
		s.internalError(w, r, "failed to verify credentials", err)
		return
	}
	if !ok {
		loginAttemptsTotal.WithLabelValues("failure").Inc()
		if s.limiter.RecordFailure(req.Username) {
			s.logger.Warn("login locked out after repeated failures")
		}
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	s.limiter.RecordSuccess(req.Username)
	loginAttemptsTotal.WithLabelValues("success").Inc()

	accessToken, err := s.tokens.IssueToken(req.Username)
	if err != nil {
		s.internalError(w, r, "failed to generate access token", err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}

var _ TokenService = (*auth.Service)(nil)
