package auth

import (
	"errors"
	"time"

	"umd-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID     int    `json:"user_id"`
	Username   string `json:"username"`
	Role       Role   `json:"role_id"`
	BusinessID int    `json:"business_id"`
	BranchID   *int   `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into a request identity.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:     c.UserID,
		Username:   c.Username,
		Role:       c.Role,
		BusinessID: c.BusinessID,
		BranchID:   c.BranchID,
	}
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// GenerateToken creates a new JWT token for an authenticated identity
func (j *JWTManager) GenerateToken(id Identity) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(j.cfg.JWT.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID:     id.UserID,
		Username:   id.Username,
		Role:       id.Role,
		BusinessID: id.BusinessID,
		BranchID:   id.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if !claims.Role.Valid() {
		return nil, errors.New("invalid role claim")
	}

	return claims, nil
}
