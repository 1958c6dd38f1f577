package company

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/queue"
	"github.com/tupt100/lexops/internal/response"
	"github.com/tupt100/lexops/internal/user"
)

func CreateCompanyHandler(c *fiber.Ctx) error {
	var body struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	var existing models.Company
	if err := database.DB.Where("name = ?", body.Name).First(&existing).Error; err == nil {
		return response.Conflict(c, "Company with this name already exists")
	}

	company, err := Bootstrap(database.DB, body.Name, body.Address)
	if err != nil {
		return response.InternalError(c, "Failed to create company")
	}

	return response.Created(c, company, "Company created successfully")
}

func ListCompaniesHandler(c *fiber.Ctx) error {
	var companies []models.Company
	if err := database.DB.Find(&companies).Error; err != nil {
		return response.InternalError(c, "Failed to fetch companies")
	}
	return response.Success(c, companies, "Companies retrieved successfully")
}

func InviteHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var admin models.User
	if err := database.DB.First(&admin, userID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if admin.CompanyID == nil {
		return response.Forbidden(c, "User has no company")
	}

	var body struct {
		Email   string `json:"email"`
		GroupID uint   `json:"group_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Email == "" || body.GroupID == 0 {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"group_id": "group_id is required",
		})
	}

	inv, err := Invite(database.DB, *admin.CompanyID, body.GroupID, admin.ID, body.Email)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	queue.EnqueueInvitationEmail(queue.InvitationEmailPayload{InvitationID: inv.ID})

	return response.Created(c, inv, "Invitation sent")
}

// AcceptInviteHandler provisions a user from a pending invitation. The new
// user lands in the invited group, which seeds their rank ledgers.
func AcceptInviteHandler(c *fiber.Ctx) error {
	var body struct {
		Token    string `json:"token"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Token == "" || body.Name == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"token":    "token is required",
			"name":     "name is required",
			"password": "password is required",
		})
	}

	inv, err := ClaimInvitation(database.DB, body.Token)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	u := models.User{
		Name:      body.Name,
		Email:     inv.Email,
		Password:  body.Password,
		Status:    "active",
		CompanyID: &inv.CompanyID,
		GroupID:   &inv.GroupID,
	}
	if _, err := user.CreateUser(database.DB, &u); err != nil {
		return response.InternalError(c, "Failed to create user")
	}

	u.Password = ""
	return response.Created(c, u, "Invitation accepted")
}
