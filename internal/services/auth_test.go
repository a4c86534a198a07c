package services

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/logging"
	"github.com/ruralpay/expense-tracker/internal/middleware"
	"github.com/ruralpay/expense-tracker/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testJWT    = config.JWTConfig{SecretKey: "test-secret", ExpiryHours: 24}
	testArgon2 = config.Argon2Config{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16}
)

func newTestAuthService(db *sql.DB) *AuthService {
	return NewAuthService(db, nil, testJWT, testArgon2, logging.Discard())
}

func postJSON(t *testing.T, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
}

func TestAuthService_Register(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := newTestAuthService(db)

	t.Run("successful registration", func(t *testing.T) {
		w := httptest.NewRecorder()
		service.Register(w, postJSON(t, "/auth/register", RegisterRequest{
			Username: "somchai",
			Email:    "Somchai@Example.com",
			Password: "password123",
		}))

		assert.Equal(t, http.StatusCreated, w.Code)
		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "somchai", response.User.Username)
		assert.Equal(t, "somchai@example.com", response.User.Email)
		assert.Positive(t, response.User.UserID)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := httptest.NewRecorder()
		service.Register(w, postJSON(t, "/auth/register", RegisterRequest{
			Username: "somchai",
			Email:    "other@example.com",
			Password: "password123",
		}))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		service.Register(w, postJSON(t, "/auth/register", RegisterRequest{
			Username: "ab",
			Email:    "not-an-email",
			Password: "123",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Contains(t, response.Details, "username")
		assert.Contains(t, response.Details, "email")
		assert.Contains(t, response.Details, "password")
	})

	t.Run("invalid request body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("invalid"))
		w := httptest.NewRecorder()

		service.Register(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := newTestAuthService(db)

	w := httptest.NewRecorder()
	service.Register(w, postJSON(t, "/auth/register", RegisterRequest{Username: "malee", Email: "malee@example.com", Password: "password123"}))
	require.Equal(t, http.StatusCreated, w.Code)

	tests := []struct {
		name     string
		username string
		password string
		status   int
	}{
		{"successful login", "malee", "password123", http.StatusOK},
		{"wrong password", "malee", "password124", http.StatusUnauthorized},
		{"unknown user", "nobody", "password123", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			service.Login(w, postJSON(t, "/auth/login", LoginRequest{Username: tt.username, Password: tt.password}))

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				var response AuthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.NotEmpty(t, response.Token)
				assert.Equal(t, "malee", response.User.Username)
			} else {
				assert.Contains(t, w.Body.String(), "Invalid credentials")
			}
		})
	}
}

func TestAuthService_LoginDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_id, username, email, password_hash, created_at FROM users").
		WithArgs("malee").
		WillReturnError(errors.New("connection reset"))

	w := httptest.NewRecorder()
	newTestAuthService(db).Login(w, postJSON(t, "/auth/login", LoginRequest{Username: "malee", Password: "password123"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_TokenAcceptedByMiddleware(t *testing.T) {
	db := testutil.SetupTestDB(t)
	service := newTestAuthService(db)

	w := httptest.NewRecorder()
	service.Register(w, postJSON(t, "/auth/register", RegisterRequest{Username: "niran", Email: "niran@example.com", Password: "password123"}))
	require.Equal(t, http.StatusCreated, w.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	auth := middleware.NewAuthenticator(testJWT.SecretKey, nil, logging.Discard())
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+registered.Token)
	w = httptest.NewRecorder()

	auth.Middleware(http.HandlerFunc(service.Me)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "niran", me["username"])
	assert.Equal(t, float64(registered.User.UserID), me["user_id"])
}

func TestAuthService_Logout(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claims := &jwt.RegisteredClaims{
		Subject:   "7",
		ID:        "token-id",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	t.Run("blacklists jti until expiry", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectSet(middleware.BlacklistKey("token-id"), "1", time.Hour).SetVal("OK")

		service := NewAuthService(nil, rdb, testJWT, testArgon2, logging.Discard())
		service.now = func() time.Time { return now }

		r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		r = r.WithContext(middleware.WithClaims(middleware.WithUserID(r.Context(), 7), claims))
		w := httptest.NewRecorder()

		service.Logout(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectSet(middleware.BlacklistKey("token-id"), "1", time.Hour).SetErr(errors.New("redis down"))

		service := NewAuthService(nil, rdb, testJWT, testArgon2, logging.Discard())
		service.now = func() time.Time { return now }

		r := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		r = r.WithContext(middleware.WithClaims(r.Context(), claims))
		w := httptest.NewRecorder()

		service.Logout(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("without claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		newTestAuthService(nil).Logout(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPasswordHashing(t *testing.T) {
	hasher := passwordHasher(testArgon2)

	hashed, err := hasher.hash("testpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, hashed)

	assert.True(t, hasher.verify("testpassword", hashed))
	assert.False(t, hasher.verify("wrongpassword", hashed))
	assert.False(t, hasher.verify("testpassword", "not-a-hash"))
}

func TestGenerateJWT(t *testing.T) {
	service := newTestAuthService(nil)

	token, err := service.generateJWT(123)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testJWT.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(123), claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
