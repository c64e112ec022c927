package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rfqengine/cmd/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// PermissionsClaim carries the actor's permission bitmask.
const PermissionsClaim = "perms"

type TokenData struct {
	Sub         string
	Permissions entity.Permission
	Exp         int64
}

// TokenValidator checks HS256 bearer tokens issued by the back-office.
type TokenValidator struct {
	secret []byte
}

func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func (v *TokenValidator) ValidateToken(tokenString string) (*TokenData, error) {
	clean := sanitizeToken(tokenString)
	if clean == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.Parse(clean, v.keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	sub := getValue(claims, "sub")
	if sub == "" {
		return nil, errors.New("token has no subject")
	}

	return &TokenData{
		Sub:         sub,
		Permissions: entity.Permission(getInt64(claims, PermissionsClaim)),
		Exp:         getInt64(claims, "exp"),
	}, nil
}

func (v *TokenValidator) ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return v.ValidateToken(token)
}

// IssueToken signs a token for sub. It is used by operators' tooling and tests.
func (v *TokenValidator) IssueToken(sub string, perms entity.Permission, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            sub,
		PermissionsClaim: int64(perms),
		"iat":            now.Unix(),
		"exp":            now.Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}

func (v *TokenValidator) keyfunc(*jwt.Token) (any, error) {
	return v.secret, nil
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
