package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmedinae/stock-hospitalario/internal/application/dto"
	"github.com/jmedinae/stock-hospitalario/internal/domain"
)

// Headers con el contexto del actor, poblados por el gateway upstream que ya
// autenticó la sesión. El núcleo nunca lee estado de sesión ambiente: el actor
// viaja explícito como argumento en cada operación.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderCenterID  = "X-Center-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Locals key para el actor en Fiber.
const localActor = "actor"

// ActorMiddleware materializa el actor desde los headers del gateway y lo deja
// en c.Locals. Rechaza peticiones sin identidad de actor.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := domain.Actor{
			ID:       c.Get(HeaderActorID),
			CenterID: c.Get(HeaderCenterID),
			Role:     c.Get(HeaderActorRole),
		}
		if !actor.Valid() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ACTOR", Message: "header " + HeaderActorID + " requerido"})
		}
		c.Locals(localActor, actor)
		return c.Next()
	}
}

// GetActor devuelve el actor del contexto (después del middleware).
func GetActor(c *fiber.Ctx) domain.Actor {
	v := c.Locals(localActor)
	if v == nil {
		return domain.Actor{}
	}
	actor, _ := v.(domain.Actor)
	return actor
}
