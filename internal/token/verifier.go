package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned for any missing, malformed, expired, or
// forged credential. Callers map it to 401.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier resolves a bearer credential to a stable subject identifier.
type Verifier interface {
	Verify(ctx context.Context, raw string) (uid string, err error)
}

// JWTVerifier validates HS256 ID tokens issued by the identity provider.
// Verification is read-only and never retried; provider key rotation is a
// deploy-time concern (the signing key is injected at startup).
type JWTVerifier struct {
	signingKey []byte
	issuer     string
	audience   string
}

type idClaims struct {
	jwt.RegisteredClaims
}

func NewJWTVerifier(signingKey, issuer, audience string) *JWTVerifier {
	return &JWTVerifier{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// Verify checks the token's signature, expiry, issuer, and audience, and
// returns the subject claim.
func (v *JWTVerifier) Verify(_ context.Context, raw string) (string, error) {
	if raw == "" {
		return "", ErrUnauthenticated
	}

	parsed, err := jwt.ParseWithClaims(raw, &idClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	claims, ok := parsed.Claims.(*idClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrUnauthenticated
	}

	return claims.Subject, nil
}

// Issue signs a short-lived ID token for the given subject. Production
// tokens come from the identity provider; this exists for local development
// and tests.
func (v *JWTVerifier) Issue(uid string, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, idClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    v.issuer,
			Audience:  []string{v.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := t.SignedString(v.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
