package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minHMACSecret = 32

var (
	ErrMissingToken          = errors.New("jwtx: missing token")
	ErrInvalidOrExpiredToken = errors.New("jwtx: invalid or expired token")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

type verifier struct {
	method string
	key    any
	issuer string
	now    func() time.Time
}

// NewVerifierHS256 verifies tokens signed by an HS256Signer with the same
// secret. An empty issuer is not enforced.
func NewVerifierHS256(secret []byte, issuer string) Verifier {
	return &verifier{method: jwt.SigningMethodHS256.Alg(), key: secret, issuer: issuer, now: time.Now}
}

// NewVerifierEdDSA verifies tokens signed with the private half of pub.
func NewVerifierEdDSA(pub ed25519.PublicKey, issuer string) Verifier {
	return &verifier{method: jwt.SigningMethodEdDSA.Alg(), key: pub, issuer: issuer, now: time.Now}
}

func (v *verifier) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{v.method}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	}
	if !token.Valid {
		return Claims{}, errors.New("jwtx: invalid token")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.now()); err != nil {
		return Claims{}, err
	}
	if claims.Identity() == "" {
		return Claims{}, errors.New("jwtx: token has no subject")
	}

	return claims, nil
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it. It returns ErrMissingToken when there is no token and an
// error wrapping ErrInvalidOrExpiredToken for everything else.
func Authenticate(v Verifier, authorization string) (Claims, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	raw = strings.TrimSpace(raw)
	if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
		return Claims{}, ErrMissingToken
	}

	claims, err := v.Verify(raw)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidOrExpiredToken, err)
	}
	return claims, nil
}
