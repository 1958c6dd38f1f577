package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/response"
)

func LoginHandler(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if body.Email == "" || body.Password == "" {
		return response.ValidationError(c, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
	}

	token, user, err := LoginUser(body.Email, body.Password)
	if err != nil {
		return response.Unauthorized(c, "Invalid credentials")
	}

	user.Password = ""
	return response.Success(c, fiber.Map{
		"token": token,
		"user":  user,
	}, "Login successful")
}

func MeHandler(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.Preload("Group").Preload("Company").First(&user, userID).Error; err != nil {
		return response.NotFound(c, "User")
	}

	user.Password = ""
	return response.Success(c, user, "User retrieved successfully")
}
