// internal/app/system/auth/tokens.go
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an identity token: the user's document id and
// role, plus the registered expiry/issuer set.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed, time-limited identity tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 15 * time.Minute

// ErrInvalidToken is returned by Verify for any token that does not parse,
// fails signature verification, or has expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewTokenManager builds a TokenManager. ttl <= 0 selects DefaultTTL.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issue signs a token carrying the user's id and role.
func (tm *TokenManager) Issue(userID, role string) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(tm.ttl)
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify parses and validates a token string, returning its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ExtractBearer pulls the token out of an Authorization header value.
// It returns an error when the header is absent or not a Bearer scheme.
func ExtractBearer(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("authorization header missing or malformed")
	}
	return parts[1], nil
}
