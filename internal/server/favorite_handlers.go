package server

import (
	"context"

	"holocron/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUserFavorites handles GET /users/favorites
// @Summary List the current user's favorites
// @Tags favorites
// @Produce json
// @Success 200 {array} models.Favorite
// @Router /users/favorites [get]
func (s *Server) GetUserFavorites(c *fiber.Ctx) error {
	favorites, err := s.favoriteService.ListFavorites(c.UserContext(), s.currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(favorites)
}

// AddFavoritePlanet handles POST /favorite/planet/:id
// @Summary Favorite a planet
// @Tags favorites
// @Produce json
// @Param id path int true "Planet ID"
// @Success 201 {object} models.Favorite
// @Success 200 {object} map[string]interface{} "already a favorite"
// @Failure 404 {object} models.ErrorResponse
// @Router /favorite/planet/{id} [post]
func (s *Server) AddFavoritePlanet(c *fiber.Ctx) error {
	return s.addFavorite(c, s.favoriteService.AddFavoritePlanet)
}

// AddFavoritePerson handles POST /favorite/people/:id
// @Summary Favorite a person
// @Tags favorites
// @Produce json
// @Param id path int true "Person ID"
// @Success 201 {object} models.Favorite
// @Success 200 {object} map[string]interface{} "already a favorite"
// @Failure 404 {object} models.ErrorResponse
// @Router /favorite/people/{id} [post]
func (s *Server) AddFavoritePerson(c *fiber.Ctx) error {
	return s.addFavorite(c, s.favoriteService.AddFavoritePerson)
}

func (s *Server) addFavorite(c *fiber.Ctx, add func(ctx context.Context, userID, targetID uint) (*service.AddResult, error)) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	res, err := add(c.UserContext(), s.currentUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	if !res.Created {
		return c.JSON(fiber.Map{
			"msg":      "Favorite already exists",
			"favorite": res.Favorite,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(res.Favorite)
}

// RemoveFavoritePlanet handles DELETE /favorite/planet/:id
// @Summary Remove a favorite planet
// @Tags favorites
// @Produce json
// @Param id path int true "Planet ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /favorite/planet/{id} [delete]
func (s *Server) RemoveFavoritePlanet(c *fiber.Ctx) error {
	return s.removeFavorite(c, s.favoriteService.RemoveFavoritePlanet)
}

// RemoveFavoritePerson handles DELETE /favorite/people/:id
// @Summary Remove a favorite person
// @Tags favorites
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /favorite/people/{id} [delete]
func (s *Server) RemoveFavoritePerson(c *fiber.Ctx) error {
	return s.removeFavorite(c, s.favoriteService.RemoveFavoritePerson)
}

func (s *Server) removeFavorite(c *fiber.Ctx, remove func(ctx context.Context, userID, targetID uint) error) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}
	if err := remove(c.UserContext(), s.currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "Deleted"})
}
