package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/recipebox/recipebox/config"
	"github.com/recipebox/recipebox/database"
	dbmodels "github.com/recipebox/recipebox/database/models"
	webmodels "github.com/recipebox/recipebox/models"
	"github.com/recipebox/recipebox/services"
	"github.com/recipebox/recipebox/utils"
)

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config  *config.Config
	DB      *database.DB
	Repos   *webmodels.Repositories
	Spaces  *services.SpacesService
	Users   *services.UserService
	Tokens  *services.TokenService
	Recipes *services.RecipeService
	Version string
	Commit  string
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// CurrentUser returns the authenticated user placed into the request
// context by the auth middleware.
func CurrentUser(c *fiber.Ctx) (*dbmodels.User, bool) {
	user, ok := c.Locals("user").(*dbmodels.User)
	return user, ok
}

// pageParams extracts and clamps pagination query parameters.
func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", config.DefaultPageLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > config.MaxPageLimit {
		limit = config.DefaultPageLimit
	}
	return page, limit
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "healthy"
		if err := webApp.DB.Ping(c.Context()); err != nil {
			status = "degraded"
		}

		return utils.SendSuccess(c, fiber.Map{
			"status":  status,
			"version": webApp.Version,
			"commit":  webApp.Commit,
		}, "Health check successful")
	}
}
