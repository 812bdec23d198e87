package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

// RequireUser ensures an individual user is authenticated.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Kind != domain.ActorKindUser || principal.User == nil {
			return apperrors.NewWrongActorKind("not authorized as user")
		}
		return c.Next()
	}
}

// RequireBloodBank ensures the caller holds a valid blood-bank token. A
// valid token of the wrong kind is rejected with the same 401 status as an
// authentication failure, only the message differs.
func RequireBloodBank() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Kind != domain.ActorKindBloodBank || principal.Bank == nil {
			return apperrors.NewWrongActorKind("not authorized as blood bank")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller is an individual with the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Kind != domain.ActorKindUser || principal.User == nil {
			return apperrors.NewWrongActorKind("not authorized as admin")
		}
		if principal.User.Role != domain.UserRoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}

// RequireAnyActor ensures the caller is authenticated (user or blood bank).
func RequireAnyActor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthenticated("no authentication token, access denied")
		}
		return c.Next()
	}
}
