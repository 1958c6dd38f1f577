package workflow

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/response"
)

func requestUser(c *fiber.Ctx) (*models.User, error) {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u, nil
	}
	userID := c.Locals("user_id").(uint)
	var u models.User
	if err := database.DB.First(&u, userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateWorkflowHandler(c *fiber.Ctx) error {
	user, err := requestUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.CompanyID == nil {
		return response.Forbidden(c, "User has no company")
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		ProjectID   *uint  `json:"project_id"`
		OwnerID     *uint  `json:"owner_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	w := models.Workflow{
		Name:           body.Name,
		Description:    body.Description,
		Status:         models.WorkflowStatusActive,
		OrganizationID: *user.CompanyID,
		ProjectID:      body.ProjectID,
		OwnerID:        body.OwnerID,
		CreatedByID:    user.ID,
	}

	if _, err := CreateWorkflow(database.DB, &w); err != nil {
		return response.InternalError(c, "Failed to create workflow")
	}

	return response.Created(c, w, "Workflow created successfully")
}

func ListWorkflowsHandler(c *fiber.Ctx) error {
	user, err := requestUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}

	workflows, err := ListVisibleWorkflows(database.DB, user)
	if err != nil {
		return response.InternalError(c, "Failed to fetch workflows")
	}

	return response.Success(c, workflows, "Workflows retrieved successfully")
}

func GetWorkflowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid workflow ID", nil)
	}

	var w models.Workflow
	err = database.DB.Preload("Owner").Preload("Project").First(&w, id).Error
	if err != nil {
		return response.NotFound(c, "Workflow")
	}

	return response.Success(c, w, "Workflow retrieved successfully")
}

func ChangeStatusHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid workflow ID", nil)
	}

	var body struct {
		Status int `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	w, err := ChangeStatus(database.DB, uint(id), body.Status)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	return response.Success(c, w, "Workflow status updated")
}
