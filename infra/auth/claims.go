package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CrestNiraj12/boardterm/app"
)

// Claims is the access token payload. Subject holds the numeric user ID.
type Claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// UserID parses the subject; malformed subjects yield 0.
func (c *Claims) UserID() int {
	v, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0
	}
	return v
}

// Sign issues an HS256 token for the user that expires after ttl.
func Sign(userID int, nickname, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("secret not configured")
	}
	now := time.Now()
	claims := Claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Verify checks signature and expiry.
func Verify(token, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	var claims Claims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Identify reads the token payload without verifying it. The client cannot
// verify tokens; it only needs the nickname for display and mention
// filtering, and the expiry to warn before the server rejects the token.
func Identify(token string) (app.Identity, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return app.Identity{}, fmt.Errorf("decoding token: %w", err)
	}
	id := app.Identity{UserID: claims.UserID(), Nickname: claims.Nickname}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}

// Expired reports whether the identity carries an expiry in the past.
func Expired(id app.Identity, now time.Time) bool {
	return !id.ExpiresAt.IsZero() && !now.Before(id.ExpiresAt)
}
