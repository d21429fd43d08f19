package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "ValidToken",
			header:     "Bearer " + signToken(t, secret, userID.String()),
			wantStatus: http.StatusOK,
		},
		{
			name:       "MissingHeader",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "NotBearer",
			header:     "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WrongSecret",
			header:     "Bearer " + signToken(t, "other-secret", userID.String()),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "SubjectNotUUID",
			header:     "Bearer " + signToken(t, secret, "not-a-uuid"),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uuid.UUID

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := UserID(r.Context())
				require.True(t, ok)
				gotUserID = id
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			Middleware(secret)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
			}
		})
	}
}

func TestMiddlewareRejectsNoneAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: uuid.New().String(),
	})

	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rec := httptest.NewRecorder()
	Middleware(secret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserID(req.Context())

	assert.False(t, ok)
}
