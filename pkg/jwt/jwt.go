package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the role claim
const (
	RoleAdmin  = "admin"
	RoleTalent = "talent"
	// RoleVoter marks voter cookies; it never authorizes a request
	RoleVoter = "voter"
)

const voterTokenTTL = 365 * 24 * time.Hour

// Claims represents JWT claims structure
type Claims struct {
	SubjectID string `json:"subject_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret string
	ttl    time.Duration
}

// NewManager creates new JWT manager
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: secret, ttl: ttl}
}

// GenerateToken signs an access token for the given subject and role.
func (m *Manager) GenerateToken(subjectID, email, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		SubjectID: subjectID,
		Email:     email,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	switch claims.Role {
	case RoleAdmin, RoleTalent:
	default:
		return nil, fmt.Errorf("invalid role claim: %q", claims.Role)
	}

	return claims, nil
}

// GenerateVoterToken signs a long-lived voter id for the voter cookie.
func (m *Manager) GenerateVoterToken(voterID string) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: voterID,
		Role:      RoleVoter,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   voterID,
			ExpiresAt: jwt.NewNumericDate(now.Add(voterTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.secret))
	if err != nil {
		return "", fmt.Errorf("sign voter token: %w", err)
	}
	return signed, nil
}

// ParseVoterToken returns the voter id carried by a token from GenerateVoterToken.
func (m *Manager) ParseVoterToken(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		return "", err
	}
	if claims.Role != RoleVoter || claims.SubjectID == "" {
		return "", fmt.Errorf("not a voter token")
	}
	return claims.SubjectID, nil
}
