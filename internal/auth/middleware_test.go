package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func signToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestJWTMiddleware(t *testing.T) {
	const secret = "test-secret"
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := JWTMiddleware(secret)(next)

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{"no token", "", "", http.StatusUnauthorized},
		{"garbage header", "Bearer not-a-token", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other", "admin"), "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + signToken(t, secret, "viewer"), "", http.StatusForbidden},
		{"valid header", "Bearer " + signToken(t, secret, "admin"), "", http.StatusNoContent},
		{"valid query token", "", signToken(t, secret, "admin"), http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := "/api/admin/results"
			if tc.query != "" {
				target += "?token=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rec := httptest.NewRecorder()
			guarded.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
