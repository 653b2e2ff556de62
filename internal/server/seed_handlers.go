package server

import (
	"log/slog"

	"holocron/internal/importer"
	"holocron/internal/middleware"
	"holocron/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SeedSwapiRequest is the optional body of POST /seed/swapi. Absent limits
// default to importer.DefaultLimit; a limit of zero or below skips that type.
type SeedSwapiRequest struct {
	PeopleLimit  *int `json:"people_limit"`
	PlanetsLimit *int `json:"planets_limit"`
}

func (r SeedSwapiRequest) options() importer.Options {
	opts := importer.Options{PlanetsLimit: importer.DefaultLimit, PeopleLimit: importer.DefaultLimit}
	if r.PlanetsLimit != nil {
		opts.PlanetsLimit = *r.PlanetsLimit
	}
	if r.PeopleLimit != nil {
		opts.PeopleLimit = *r.PeopleLimit
	}
	return opts
}

// SeedSwapi handles POST /seed/swapi
// @Summary Import planets and people from SWAPI
// @Tags seed
// @Accept json
// @Produce json
// @Param request body SeedSwapiRequest false "Import limits"
// @Success 201 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /seed/swapi [post]
func (s *Server) SeedSwapi(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req SeedSwapiRequest
	if body := c.Body(); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &req); err != nil {
			// An unreadable body means "use the defaults".
			middleware.Logger.WarnContext(ctx, "Ignoring unreadable seed body", slog.String("error", err.Error()))
			req = SeedSwapiRequest{}
		}
	}
	opts := req.options()

	if _, err := s.identity.Materialize(ctx, s.currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	created, err := s.importer.Run(ctx, opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"msg":            "SWAPI seed failed",
			"error":          err.Error(),
			"code":           models.ErrorCode(err),
			"created_so_far": created,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":     "SWAPI seeded!",
		"created": created,
	})
}

// SeedTestData handles POST /seed/test
// @Summary Insert one fixed planet and person
// @Tags seed
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /seed/test [post]
func (s *Server) SeedTestData(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if _, err := s.identity.Materialize(ctx, s.currentUserID(c)); err != nil {
		return respondError(c, err)
	}

	planet, person, err := s.seeder.TestData(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"msg":    "Test data created",
		"planet": planet,
		"person": person,
	})
}
