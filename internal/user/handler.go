package user

import (
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/response"

	"github.com/gofiber/fiber/v2"
)

func CreateUserHandler(c *fiber.Ctx) error {
	adminID := c.Locals("user_id").(uint)

	var admin models.User
	if err := database.DB.First(&admin, adminID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if admin.CompanyID == nil {
		return response.Forbidden(c, "User has no company")
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		GroupID  uint   `json:"group_id"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" || body.Name == "" || body.GroupID == 0 {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
			"name":     "name is required",
			"group_id": "group_id is required",
		})
	}

	var g models.Group
	if err := database.DB.First(&g, body.GroupID).Error; err != nil {
		return response.NotFound(c, "Group")
	}

	var existing models.User
	if err := database.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		return response.Conflict(c, "User with this email already exists")
	}

	u := models.User{
		Email:     body.Email,
		Password:  body.Password,
		Name:      body.Name,
		Status:    "active",
		CompanyID: admin.CompanyID,
		GroupID:   &body.GroupID,
	}

	if _, err := CreateUser(database.DB, &u); err != nil {
		return response.InternalError(c, "Failed to create user")
	}

	database.DB.Preload("Group").First(&u, u.ID)
	u.Password = ""

	return response.Created(c, u, "User created successfully")
}

func ListUsersHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var me models.User
	if err := database.DB.First(&me, userID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if me.CompanyID == nil {
		return response.Success(c, []models.User{}, "Users retrieved successfully")
	}

	users, err := ListUsers(*me.CompanyID)
	if err != nil {
		return response.InternalError(c, "Failed to fetch users")
	}

	for i := range users {
		users[i].Password = ""
	}

	return response.Success(c, users, "Users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var u models.User
	if err := database.DB.Preload("Group").Preload("Company").First(&u, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	u.Password = ""

	return response.Success(c, u, "User retrieved successfully")
}

// AssignGroupHandler reassigns a user's group. This is the role-change
// trigger: rank reconciliation runs with the save and a failure rolls the
// reassignment back.
func AssignGroupHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var body struct {
		GroupID uint `json:"group_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.GroupID == 0 {
		return response.ValidationError(c, map[string]string{"group_id": "group_id is required"})
	}

	var g models.Group
	if err := database.DB.First(&g, body.GroupID).Error; err != nil {
		return response.NotFound(c, "Group")
	}

	if err := AssignGroup(database.DB, uint(id), body.GroupID); err != nil {
		return response.InternalError(c, "Failed to assign group")
	}

	var u models.User
	database.DB.Preload("Group").First(&u, id)
	u.Password = ""

	return response.Success(c, u, "Group assigned successfully")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var u models.User
	if err := database.DB.First(&u, id).Error; err != nil {
		return response.NotFound(c, "User")
	}

	if err := database.DB.Delete(&u).Error; err != nil {
		return response.InternalError(c, "Failed to delete user")
	}

	return response.Success(c, nil, "User deleted successfully")
}
