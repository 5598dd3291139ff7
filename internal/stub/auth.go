package stub

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token    string    `json:"token"`
	User     loginUser `json:"user"`
	UserType string    `json:"userType"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed login request")
		return
	}

	s.data.mu.Lock()
	acct, ok := s.data.accounts[req.Email]
	s.data.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := generateToken(s.secret, claims{
		UserID:   acct.ID,
		Email:    acct.Email,
		Name:     acct.Name,
		Role:     acct.Role,
		UserType: acct.UserType,
	}, s.ttl)
	if err != nil {
		s.logger.Error("token generation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User: loginUser{
			ID:    acct.ID,
			Email: acct.Email,
			Name:  acct.Name,
			Role:  acct.Role,
		},
		UserType: acct.UserType,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout just acknowledges.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	writeJSON(w, http.StatusOK, loginResponse{
		User: loginUser{
			ID:    c.UserID,
			Email: c.Email,
			Name:  c.Name,
			Role:  c.Role,
		},
		UserType: c.UserType,
	})
}
