package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Domenick1991/travelbooking/internal/domain"
	"github.com/Domenick1991/travelbooking/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_register(t *testing.T) {
	s := newTestServer()
	input := auth.RegisterInput{Username: "asha", Email: "asha@example.com", Password: "longenough"}
	s.auth.On("Register", mock.Anything, input).Return(&domain.User{ID: 5, Username: "asha", PasswordHash: "$2a$hash"}, nil).Once()

	w := s.do(http.MethodPost, "/api/auth/register", "", `{"username":"asha","email":"asha@example.com","password":"longenough"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
	s.auth.AssertExpectations(t)
}

func TestAuthHandler_register_Conflict(t *testing.T) {
	s := newTestServer()
	s.auth.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ConflictError{Resource: "user", Msg: "username already taken"}).Once()

	w := s.do(http.MethodPost, "/api/auth/register", "", `{"username":"asha","password":"longenough"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, "asha", "longenough").Return("jwt", &domain.User{ID: 5}, nil).Once()
	s.auth.On("Login", mock.Anything, "asha", "wrong").Return("", nil, domain.ErrUnauthorized).Once()

	w := s.do(http.MethodPost, "/api/auth/login", "", `{"username":"asha","password":"longenough"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt", resp.Token)

	w = s.do(http.MethodPost, "/api/auth/login", "", `{"username":"asha","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_profile(t *testing.T) {
	s := newTestServer()
	s.auth.On("Profile", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Username: "asha"}, nil).Once()
	s.auth.On("UpdateProfile", mock.Anything, int64(3), auth.ProfileInput{FirstName: "Asha"}).Return(&domain.User{ID: 3, FirstName: "Asha"}, nil).Once()

	w := s.do(http.MethodGet, "/api/profile", userToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"asha"`)

	w = s.do(http.MethodPut, "/api/profile", userToken, `{"first_name":"Asha"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"first_name":"Asha"`)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/profile", "", "").Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	w := s.do(http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
