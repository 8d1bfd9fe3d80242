package http

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Role is the actor role carried in the access token.
type Role string

const (
	RoleDriver     Role = "driver"
	RoleDispatcher Role = "dispatcher"
	RoleAdmin      Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleDriver, RoleDispatcher, RoleAdmin:
		return true
	default:
		return false
	}
}

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

const actorContextKey = "dispatch.actor"

var jwtSigningMethod = jwt.SigningMethodHS256

// AuthConfig holds the token settings.
type AuthConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Actor is the authenticated caller. ID is opaque to the core; for drivers it
// is the driver id stored on assigned parcels.
type Actor struct {
	ID   string
	Role Role
}

// ActorClaims is the JWT payload. The actor id travels in the subject claim.
type ActorClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// MintActorToken issues a signed token for an actor. Used by tooling and tests;
// production tokens come from the identity service with the same claims.
func MintActorToken(cfg AuthConfig, now time.Time, actor Actor) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if strings.TrimSpace(actor.ID) == "" {
		return "", fmt.Errorf("actor id is required")
	}
	if !actor.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", actor.Role)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	claims := ActorClaims{
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseActorToken validates the token and returns the actor it names.
func ParseActorToken(cfg AuthConfig, tokenString string) (Actor, error) {
	if cfg.Secret == "" {
		return Actor{}, fmt.Errorf("jwt secret is required")
	}

	claims := &ActorClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Actor{}, err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return Actor{}, fmt.Errorf("token has no subject")
	}
	if !claims.Role.IsValid() {
		return Actor{}, fmt.Errorf("invalid role %q", claims.Role)
	}

	return Actor{ID: claims.Subject, Role: claims.Role}, nil
}

// Authenticate requires a valid bearer token and stores the actor on the
// request context.
func Authenticate(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return fmt.Errorf("%w: missing bearer token", ErrUnauthenticated)
			}

			actor, err := ParseActorToken(cfg, strings.TrimSpace(token))
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnauthenticated, err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireRoles rejects actors whose role is not listed.
func RequireRoles(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return ErrUnauthenticated
			}
			if !slices.Contains(roles, actor.Role) {
				return fmt.Errorf("%w: role %s", ErrForbidden, actor.Role)
			}
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Authenticate.
func ActorFrom(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorContextKey).(Actor)
	return actor, ok
}
