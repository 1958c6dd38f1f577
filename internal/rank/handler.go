package rank

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/response"
)

type rankEntry struct {
	ItemID     uint  `json:"item_id"`
	Rank       uint  `json:"rank"`
	IsFavorite *bool `json:"is_favorite,omitempty"`
}

// ListRanksHandler returns the caller's active ordering for one category:
// non-terminal entries by rank ascending. Favorites are only a task concept.
func ListRanksHandler(c *fiber.Ctx) error {
	category := models.Category(c.Params("category"))
	adapter := AdapterFor(category)
	if adapter == nil {
		return response.BadRequest(c, "Unknown category", nil)
	}

	userID := c.Locals("user_id").(uint)

	var entries []models.Rank
	err := database.DB.
		Where("user_id = ? AND category = ? AND is_active = ? AND rank > 0", userID, category, true).
		Order("rank").Find(&entries).Error
	if err != nil {
		return response.InternalError(c, "Failed to fetch ranks")
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ItemID)
	}
	statuses, err := adapter.StatusesByID(database.DB, ids)
	if err != nil {
		return response.InternalError(c, "Failed to fetch item statuses")
	}

	out := make([]rankEntry, 0, len(entries))
	for _, e := range entries {
		status, ok := statuses[e.ItemID]
		if !ok || adapter.Terminal(status) {
			continue
		}
		row := rankEntry{ItemID: e.ItemID, Rank: e.Rank}
		if category == models.CategoryTask {
			fav := e.IsFavorite
			row.IsFavorite = &fav
		}
		out = append(out, row)
	}

	return response.Success(c, out, "Ranks retrieved successfully")
}

// ToggleFavoriteHandler flips the is_favorite flag on one of the caller's
// task rank entries.
func ToggleFavoriteHandler(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("item_id")
	if err != nil {
		return response.BadRequest(c, "Invalid item ID", nil)
	}

	userID := c.Locals("user_id").(uint)

	var entry models.Rank
	err = database.DB.
		Where("user_id = ? AND category = ? AND item_id = ?", userID, models.CategoryTask, itemID).
		First(&entry).Error
	if err != nil {
		return response.NotFound(c, "Rank entry")
	}

	entry.IsFavorite = !entry.IsFavorite
	if err := database.DB.Save(&entry).Error; err != nil {
		return response.InternalError(c, "Failed to update favorite")
	}

	return response.Success(c, fiber.Map{
		"item_id":     entry.ItemID,
		"is_favorite": entry.IsFavorite,
	}, "Favorite updated")
}
