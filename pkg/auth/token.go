package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "github.com/foodhub-app/client-core/pkg/errors"
)

// CheckToken fails fast on bearer tokens the backend is guaranteed to
// reject: missing tokens and JWTs whose exp claim already passed. The
// signature is NOT verified here; that is the backend's job. Opaque
// (non-JWT) tokens and JWTs without an exp claim pass through untouched.
func CheckToken(token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing auth token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT; let the backend decide.
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if now.After(exp.Time) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	return nil
}
