package exts

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const viewerLocalKey = "viewer"

func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// NewToken signs a token whose subject is the viewer id.
func NewToken(secret []byte, userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}).SignedString(secret)
}

// ContextMiddleware resolves the viewer from the bearer token when there is one.
// Requests without a valid token keep going as guests.
func ContextMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || len(token) == 0 {
			return c.Next()
		}

		claims, err := DecodeJWT(token, secret)
		if err != nil {
			return c.Next()
		}
		subject, err := claims.GetSubject()
		if err != nil {
			return c.Next()
		}
		id, err := strconv.ParseUint(subject, 10, 0)
		if err != nil || id == 0 {
			return c.Next()
		}

		c.Locals(viewerLocalKey, uint(id))
		return c.Next()
	}
}

func GetViewer(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(viewerLocalKey).(uint)
	return id, ok
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := GetViewer(c); !ok {
		return fiber.NewError(fiber.StatusUnauthorized)
	}
	return nil
}
