package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"
)

// RoleAdmin is the only role the dashboard knows about.
const RoleAdmin = "admin"

// ContextSubject is the echo context key under which the JWT middleware
// stores the caller's Subject.
const ContextSubject = "subject"

// ErrInvalidToken is returned by ParseAccessToken for any token that does
// not verify.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string. Exp stores the expiration
// timestamp. The token is sent in the Authorization header when calling
// admin endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Subject identifies who a token was issued to.
type Subject struct {
	ID       string // admin id, or the demo username for demo logins
	Username string
	Role     string
}

// NewAccessToken builds and signs an HS256 JWT for an admin. The JWT
// carries sub, username, role, a random jti, exp and iat.
func NewAccessToken(secret string, sub Subject, ttlMin int) (AccessToken, error) {
	if secret == "" {
		return AccessToken{}, errors.New("jwt secret is empty")
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	role := sub.Role
	if role == "" {
		role = RoleAdmin
	}
	claims := jwt.MapClaims{
		"sub":      sub.ID,
		"username": sub.Username,
		"role":     role,
		"jti":      uuid.NewString(),
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw with secret and returns its subject.
// Only HMAC signatures are accepted.
func ParseAccessToken(secret, raw string) (Subject, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return Subject{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Subject{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return Subject{ID: sub, Username: username, Role: role}, nil
}
