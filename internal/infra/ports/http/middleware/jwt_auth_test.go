package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrave1/RoomSync/internal/infra/appctx"
)

const testSecret = "test-secret"

func signed(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func newProtected() *echo.Echo {
	e := echo.New()

	e.GET("/ws", func(c echo.Context) error {
		userID, _ := appctx.UserID(c.Request().Context())
		return c.String(http.StatusOK, userID)
	}, JWTAuthMiddleware(testSecret))

	return e
}

func TestJWTAuthMiddleware(t *testing.T) {
	valid := signed(t, testSecret, "user-42", time.Now().Add(time.Hour))

	tests := []struct {
		name     string
		prepare  func(r *http.Request)
		wantCode int
		wantBody string
	}{
		{
			name:     "cookie",
			prepare:  func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "jwt", Value: valid}) },
			wantCode: http.StatusOK,
			wantBody: "user-42",
		},
		{
			name:     "bearer header",
			prepare:  func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+valid) },
			wantCode: http.StatusOK,
			wantBody: "user-42",
		},
		{
			name:     "missing token",
			prepare:  func(r *http.Request) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong secret",
			prepare: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer "+signed(t, "other", "user-42", time.Now().Add(time.Hour)))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "expired",
			prepare: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer "+signed(t, testSecret, "user-42", time.Now().Add(-time.Minute)))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "empty subject",
			prepare: func(r *http.Request) {
				r.Header.Set(echo.HeaderAuthorization, "Bearer "+signed(t, testSecret, "", time.Now().Add(time.Hour)))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			tt.prepare(req)

			rec := httptest.NewRecorder()
			newProtected().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
