package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator map[string]uuid.UUID

func (v stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return stubClaims(userID), nil
}

type stubClaims uuid.UUID

func (c stubClaims) GetUserID() uuid.UUID {
	return uuid.UUID(c)
}

// recordUser returns a handler that stores the user it sees in the context.
func recordUser(called *bool, seen *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*seen, _ = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := stubValidator{"good-token": userID}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUser   uuid.UUID
	}{
		{"valid token", "Bearer good-token", http.StatusOK, userID},
		{"lowercase scheme", "bearer good-token", http.StatusOK, userID},
		{"extra spaces", "Bearer   good-token", http.StatusOK, userID},
		{"missing header", "", http.StatusUnauthorized, uuid.Nil},
		{"no scheme", "good-token", http.StatusUnauthorized, uuid.Nil},
		{"scheme only", "Bearer", http.StatusUnauthorized, uuid.Nil},
		{"basic auth", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, uuid.Nil},
		{"unknown token", "Bearer other-token", http.StatusUnauthorized, uuid.Nil},
		{"too many parts", "Bearer good-token extra", http.StatusUnauthorized, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var seen uuid.UUID
			handler := AuthMiddleware(validator)(recordUser(&called, &seen))

			req := httptest.NewRequest(http.MethodGet, "/resumes", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			assert.Equal(t, tt.wantUser, seen)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), "Unauthorized")
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := stubValidator{"good-token": userID}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUser   uuid.UUID
	}{
		{"anonymous", "", http.StatusOK, uuid.Nil},
		{"valid token", "Bearer good-token", http.StatusOK, userID},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized, uuid.Nil},
		{"malformed header", "Token good-token", http.StatusUnauthorized, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var seen uuid.UUID
			handler := OptionalAuth(validator)(recordUser(&called, &seen))

			req := httptest.NewRequest(http.MethodGet, "/skill-gap/resume/x/multi-job", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey(), userID))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorContains(t, err, "user ID not found")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey(), "not-a-uuid"))
	got, err = GetUserID(req)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}
