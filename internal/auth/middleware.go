package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bloodlink-service/internal/domain"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	apperrors "github.com/spec-kit/bloodlink-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. The actor kind is decided
// here, once, and carried explicitly into services.
type Principal struct {
	Kind domain.ActorKind
	User *domain.User
	Bank *domain.BloodBank
}

// Actor collapses the principal into the id/kind pair services consume.
func (p *Principal) Actor() domain.Actor {
	actor := domain.Actor{Kind: p.Kind}
	switch p.Kind {
	case domain.ActorKindUser:
		if p.User != nil {
			actor.ID = p.User.ID
		}
	case domain.ActorKindBloodBank:
		if p.Bank != nil {
			actor.ID = p.Bank.ID
		}
	}
	return actor
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	banks  repository.BloodBankRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, banks repository.BloodBankRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, banks: banks}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthenticated("no authentication token, access denied")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewInvalidToken()
	}

	principal := &Principal{Kind: claims.Kind}

	switch claims.Kind {
	case domain.ActorKindUser:
		user, err := m.users.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewInvalidToken()
			}
			return apperrors.MapError(err)
		}
		principal.User = user
	case domain.ActorKindBloodBank:
		bank, err := m.banks.GetByID(c.Context(), claims.SubjectID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewInvalidToken()
			}
			return apperrors.MapError(err)
		}
		principal.Bank = bank
	default:
		return apperrors.NewInvalidToken()
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
