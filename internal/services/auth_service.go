package services

import (
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/ruralpay/expense-tracker/internal/ledger"
	"github.com/ruralpay/expense-tracker/internal/middleware"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"
)

type AuthService struct {
	db        *sql.DB
	redis     *redis.Client
	validator *ValidationHelper
	jwt       config.JWTConfig
	hasher    passwordHasher
	log       *logrus.Entry
	now       func() time.Time
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"somchai"`           // Username
	Password string `json:"password" validate:"required,min=6" example:"password123"` // User password
}

// RegisterRequest represents the registration request payload
// @Description Registration request structure
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"somchai"` // Username
	Email    string `json:"email" validate:"required,email" example:"user@example.com"`  // User email address
	Password string `json:"password" validate:"required,min=6" example:"password123"`    // User password
}

// AuthResponse represents the authentication response
// @Description Authentication response structure
type AuthResponse struct {
	Token string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT token
	User  models.User `json:"user"`                                                    // User information
}

func NewAuthService(db *sql.DB, redisClient *redis.Client, jwtCfg config.JWTConfig, argonCfg config.Argon2Config, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		db:        db,
		redis:     redisClient,
		validator: NewValidationHelper(),
		jwt:       jwtCfg,
		hasher:    passwordHasher(argonCfg),
		log:       log.WithField("component", "auth"),
		now:       time.Now,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new user with username, email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse "Registration successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (s *AuthService) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if violations := s.validator.ValidateStruct(&req); violations != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, violations)
		return
	}

	log := s.log.WithField("username", req.Username)

	hashedPassword, err := s.hasher.hash(req.Password)
	if err != nil {
		log.WithError(err).Error("Password hashing failed")
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	user := models.User{Username: req.Username, Email: req.Email, CreatedAt: s.now().UTC()}
	err = s.db.QueryRowContext(r.Context(),
		`INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING user_id`,
		user.Username, user.Email, hashedPassword, user.CreatedAt,
	).Scan(&user.UserID)
	if err != nil {
		if database.ClassifyConstraint(err) == database.ConstraintUnique {
			log.Info("Registration rejected, username taken")
			WriteLedgerError(w, log, &ledger.DuplicateError{Entity: "user", Field: "username", Value: req.Username})
			return
		}
		log.WithError(err).Error("User creation failed")
		SendErrorResponse(w, "Failed to create user", http.StatusInternalServerError, nil)
		return
	}

	token, err := s.generateJWT(user.UserID)
	if err != nil {
		log.WithError(err).Error("JWT generation failed")
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.WithField("user_id", user.UserID).Info("User registered")
	sendJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate user with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse "Login successful"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if violations := s.validator.ValidateStruct(&req); violations != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, violations)
		return
	}

	log := s.log.WithField("username", req.Username)

	var user models.User
	var hashedPassword string
	err := s.db.QueryRowContext(r.Context(),
		`SELECT user_id, username, email, password_hash, created_at FROM users WHERE username = $1`,
		req.Username,
	).Scan(&user.UserID, &user.Username, &user.Email, &hashedPassword, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("Login failed, unknown user")
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}
	if err != nil {
		log.WithError(err).Error("User lookup failed")
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	if !s.hasher.verify(req.Password, hashedPassword) {
		log.Info("Login failed, wrong password")
		SendErrorResponse(w, "Invalid credentials", http.StatusUnauthorized, nil)
		return
	}

	token, err := s.generateJWT(user.UserID)
	if err != nil {
		log.WithError(err).Error("JWT generation failed")
		SendErrorResponse(w, "Failed to generate token", http.StatusInternalServerError, nil)
		return
	}

	log.WithField("user_id", user.UserID).Info("Login successful")
	sendJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the current token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Logout successful"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Token could not be revoked"
// @Router /auth/logout [post]
func (s *AuthService) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}

	switch {
	case s.redis == nil:
		s.log.Warn("Redis unavailable, token not blacklisted")
	case ttl > 0:
		if err := s.redis.Set(r.Context(), middleware.BlacklistKey(claims.ID), "1", ttl).Err(); err != nil {
			s.log.WithError(err).Error("Failed to blacklist token")
			SendErrorResponse(w, "Failed to revoke token", http.StatusInternalServerError, nil)
			return
		}
	}

	sendJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// Me returns the authenticated user
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Current user"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /auth/me [get]
func (s *AuthService) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	user, err := fetchUser(r, s.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to fetch user")
		SendErrorResponse(w, "Failed to fetch user details", http.StatusInternalServerError, nil)
		return
	}

	sendJSON(w, http.StatusOK, user)
}

func fetchUser(r *http.Request, db *sql.DB, userID int64) (*models.User, error) {
	var user models.User
	err := db.QueryRowContext(r.Context(),
		`SELECT user_id, username, email, created_at FROM users WHERE user_id = $1`, userID,
	).Scan(&user.UserID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateJWT(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.jwt.ExpiryHours) * time.Hour)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwt.SecretKey))
}

// passwordHasher derives argon2id hashes stored as base64(salt)$base64(hash).
type passwordHasher config.Argon2Config

func (p passwordHasher) hash(password string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (p passwordHasher) verify(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(hash) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computed) == 1
}
