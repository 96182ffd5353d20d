package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vertisaas/medisuite/internal/pkg/env"
)

// Claims carries the principal identity and its tenant store binding. The
// tenant store name in the token is informational only; the binder always
// re-reads it from the master store record.
type Claims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TenantDBName string `json:"tenant_db_name,omitempty"`
	ProductID    string `json:"product_id,omitempty"`
	jwt.RegisteredClaims
}

func signingKey() []byte {
	return []byte(env.GetEnv("JWT_SIGNING_KEY", "medisuite-dev-only"))
}

// Generate issues a signed bearer token for the user.
func Generate(userID uint, email, tenantDBName, productID string) (string, error) {
	ttl := time.Duration(env.GetEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour

	claims := Claims{
		UserID:       userID,
		Email:        email,
		TenantDBName: tenantDBName,
		ProductID:    productID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

// Validate parses and verifies a bearer token and returns its claims.
func Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
