package task

import (
	"time"

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

func CreateTaskHandler(c *fiber.Ctx) error {
	user, err := requestUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if user.CompanyID == nil {
		return response.Forbidden(c, "User has no company")
	}

	var body struct {
		Title             string     `json:"title"`
		Description       string     `json:"description"`
		IsPrivate         bool       `json:"is_private"`
		AssignedToID      *uint      `json:"assigned_to_id"`
		AssignedToGroupID *uint      `json:"assigned_to_group_id"`
		DueDate           *time.Time `json:"due_date"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Title == "" {
		return response.ValidationError(c, map[string]string{"title": "title is required"})
	}

	t := models.Task{
		Title:             body.Title,
		Description:       body.Description,
		Status:            models.TaskStatusNew,
		IsPrivate:         body.IsPrivate,
		OrganizationID:    *user.CompanyID,
		AssignedToID:      body.AssignedToID,
		AssignedToGroupID: body.AssignedToGroupID,
		CreatedByID:       user.ID,
		DueDate:           body.DueDate,
	}

	if _, err := CreateTask(database.DB, &t); err != nil {
		return response.InternalError(c, "Failed to create task")
	}

	return response.Created(c, t, "Task created successfully")
}

func ListTasksHandler(c *fiber.Ctx) error {
	user, err := requestUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}

	tasks, err := ListVisibleTasks(database.DB, user)
	if err != nil {
		return response.InternalError(c, "Failed to fetch tasks")
	}

	return response.Success(c, tasks, "Tasks retrieved successfully")
}

func GetTaskHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID", nil)
	}

	var t models.Task
	if err := database.DB.Preload("AssignedTo").Preload("CreatedBy").First(&t, id).Error; err != nil {
		return response.NotFound(c, "Task")
	}

	return response.Success(c, t, "Task retrieved successfully")
}

func ChangeStatusHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid task ID", nil)
	}

	var body struct {
		Status int `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	t, err := ChangeStatus(database.DB, uint(id), body.Status)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	return response.Success(c, t, "Task status updated")
}
