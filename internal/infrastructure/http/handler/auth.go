package handler

import (
	"net/http"

	"github.com/rezkam/taskpad/internal/application/auth"
	"github.com/rezkam/taskpad/internal/infrastructure/http/response"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	err := s.auth.Register(r.Context(), auth.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusCreated, "user registered successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, loginResponse{Token: token})
}

// handleLogout is a stateless no-op: tokens are bearer-only and expire on
// their own, the client just discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "logged out successfully")
}
