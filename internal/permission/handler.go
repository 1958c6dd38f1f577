package permission

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/response"
)

func ListCatalogHandler(c *fiber.Ctx) error {
	permissions, err := ListCatalog(database.DB)
	if err != nil {
		return response.InternalError(c, "Failed to fetch permissions")
	}
	return response.Success(c, permissions, "Permissions retrieved successfully")
}
