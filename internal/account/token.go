package account

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects the token's exp claim without verifying the
// signature; verification belongs to the server. Tokens that do not
// parse or carry no expiry are assumed live and left for the server to
// reject.
func TokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
