package server

import (
	"log/slog"

	"holocron/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetPeople handles GET /people
// @Summary List people
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Person
// @Router /people [get]
func (s *Server) GetPeople(c *fiber.Ctx) error {
	people, err := s.catalogService.ListPeople(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(people)
}

// GetPerson handles GET /people/:id
// @Summary Get a person
// @Tags catalog
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} models.Person
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /people/{id} [get]
func (s *Server) GetPerson(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	person, err := s.catalogService.GetPerson(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(person)
}

// GetPlanets handles GET /planets
// @Summary List planets
// @Tags catalog
// @Produce json
// @Success 200 {array} models.Planet
// @Router /planets [get]
func (s *Server) GetPlanets(c *fiber.Ctx) error {
	planets, err := s.catalogService.ListPlanets(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(planets)
}

// GetPlanet handles GET /planets/:id
// @Summary Get a planet
// @Tags catalog
// @Produce json
// @Param id path int true "Planet ID"
// @Success 200 {object} models.Planet
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /planets/{id} [get]
func (s *Server) GetPlanet(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	planet, err := s.catalogService.GetPlanet(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(planet)
}

// GetUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.catalogService.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// DeleteUser handles DELETE /users/:id. The user's favorites go with it.
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	if err := s.catalogService.DeleteUser(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	middleware.Logger.InfoContext(c.UserContext(), "User deleted", slog.Uint64("deleted_user_id", uint64(id)))
	return c.JSON(fiber.Map{"msg": "Deleted"})
}
