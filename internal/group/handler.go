package group

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/rank"
	"github.com/tupt100/lexops/internal/response"
)

func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID := c.Locals("user_id").(uint)
	var user models.User
	if err := database.DB.Preload("Group").First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateGroupHandler(c *fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}

	var body struct {
		Name           string `json:"name"`
		IsCompanyAdmin bool   `json:"is_company_admin"`
		IsUserSpecific bool   `json:"is_user_specific"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	g := models.Group{
		Name:           body.Name,
		CompanyID:      admin.CompanyID,
		IsCompanyAdmin: body.IsCompanyAdmin,
		IsUserSpecific: body.IsUserSpecific,
		CanBeDeleted:   true,
	}
	if _, err := CreateGroup(database.DB, &g); err != nil {
		return response.InternalError(c, "Failed to create group")
	}

	return response.Created(c, g, "Group created successfully")
}

func ListGroupsHandler(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.CompanyID == nil {
		return response.Success(c, []models.Group{}, "Groups retrieved successfully")
	}

	groups, err := ListGroups(database.DB, *user.CompanyID)
	if err != nil {
		return response.InternalError(c, "Failed to fetch groups")
	}
	return response.Success(c, groups, "Groups retrieved successfully")
}

func DeleteGroupHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID", nil)
	}

	if err := DeleteGroup(database.DB, uint(id)); err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}
	return response.Success(c, nil, "Group deleted successfully")
}

// GetGroupGrantsHandler lists a group's grants within the caller's company.
func GetGroupGrantsHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID", nil)
	}

	admin, err := currentUser(c)
	if err != nil || admin.CompanyID == nil {
		return response.Unauthorized(c, "User not found")
	}

	grants, err := permission.GroupGrants(database.DB, uint(id), *admin.CompanyID)
	if err != nil {
		return response.InternalError(c, "Failed to fetch grants")
	}
	return response.Success(c, grants, "Grants retrieved successfully")
}

// ReplaceGroupGrantsHandler replaces a group's grants wholesale, then
// re-runs rank reconciliation for every member of the group. A
// reconciliation failure fails the request: the grants transaction has
// committed but members are retried via the same endpoint.
func ReplaceGroupGrantsHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID", nil)
	}

	admin, err := currentUser(c)
	if err != nil || admin.CompanyID == nil {
		return response.Unauthorized(c, "User not found")
	}

	var body struct {
		PermissionIDs []uint `json:"permission_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	var g models.Group
	if err := database.DB.First(&g, id).Error; err != nil {
		return response.NotFound(c, "Group")
	}

	if err := permission.ReplaceGroupGrants(database.DB, g.ID, *admin.CompanyID, body.PermissionIDs); err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	if err := rank.NewReconciler(database.DB).PermissionsReplaced(g.ID); err != nil {
		return response.InternalError(c, "Failed to reconcile member ranks")
	}

	return response.Success(c, nil, "Group permissions updated")
}
