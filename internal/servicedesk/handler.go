package servicedesk

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/response"
)

// IntakeHandler accepts external requests without authentication.
func IntakeHandler(c *fiber.Ctx) error {
	var body IntakeRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	errs := map[string]string{}
	if body.RequesterEmail == "" {
		errs["requester_email"] = "requester_email is required"
	}
	if body.Subject == "" {
		errs["subject"] = "subject is required"
	}
	if body.CompanyID == 0 {
		errs["company_id"] = "company_id is required"
	}
	if len(errs) > 0 {
		return response.ValidationError(c, errs)
	}

	sr, err := Intake(database.DB, body)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	return response.Created(c, fiber.Map{
		"access_key": sr.AccessKey,
		"status":     sr.Status,
	}, "Request submitted successfully")
}

// StatusLookupHandler lets a requester check status with their access key.
func StatusLookupHandler(c *fiber.Ctx) error {
	key := c.Params("accessKey")
	sr, err := FindByAccessKey(database.DB, key)
	if err != nil {
		return response.NotFound(c, "Request")
	}

	return response.Success(c, fiber.Map{
		"subject":    sr.Subject,
		"status":     sr.Status,
		"created_at": sr.CreatedAt,
		"updated_at": sr.UpdatedAt,
	}, "Request status retrieved")
}

func ListRequestsHandler(c *fiber.Ctx) error {
	var user models.User
	userID := c.Locals("user_id").(uint)
	if err := database.DB.First(&user, userID).Error; err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.CompanyID == nil {
		return response.Forbidden(c, "User has no company")
	}

	requests, err := ListForCompany(database.DB, *user.CompanyID, c.Query("status"))
	if err != nil {
		return response.InternalError(c, "Failed to fetch requests")
	}

	return response.Success(c, requests, "Requests retrieved successfully")
}

func GetRequestHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID", nil)
	}

	var sr models.ServiceRequest
	if err := database.DB.Preload("AssignedTo").First(&sr, id).Error; err != nil {
		return response.NotFound(c, "Request")
	}

	return response.Success(c, sr, "Request retrieved successfully")
}

func UpdateStatusHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID", nil)
	}

	var body struct {
		Status       string `json:"status"`
		AssignedToID *uint  `json:"assigned_to_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Status == "" {
		return response.ValidationError(c, map[string]string{"status": "status is required"})
	}

	sr, err := UpdateStatus(database.DB, uint(id), body.Status, body.AssignedToID)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	return response.Success(c, sr, "Request status updated")
}
