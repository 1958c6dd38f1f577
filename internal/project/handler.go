package project

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/rank"
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

func CreateProjectHandler(c *fiber.Ctx) error {
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
		OwnerID     *uint  `json:"owner_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}
	if body.Name == "" {
		return response.ValidationError(c, map[string]string{"name": "name is required"})
	}

	p := models.Project{
		Name:           body.Name,
		Description:    body.Description,
		Status:         models.ProjectStatusActive,
		OrganizationID: *user.CompanyID,
		OwnerID:        body.OwnerID,
		CreatedByID:    user.ID,
	}

	if _, err := CreateProject(database.DB, &p); err != nil {
		return response.InternalError(c, "Failed to create project")
	}

	return response.Created(c, p, "Project created successfully")
}

func ListProjectsHandler(c *fiber.Ctx) error {
	user, err := requestUser(c)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}

	ordered, err := rank.OrderedVisibleIDs(database.DB, user, rank.ProjectAdapter{})
	if err != nil {
		return response.InternalError(c, "Failed to fetch projects")
	}
	if len(ordered) == 0 {
		return response.Success(c, []models.Project{}, "Projects retrieved successfully")
	}

	var projects []models.Project
	if err := database.DB.Preload("Owner").Where("id IN ?", ordered).Find(&projects).Error; err != nil {
		return response.InternalError(c, "Failed to fetch projects")
	}

	byID := make(map[uint]models.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	out := make([]models.Project, 0, len(ordered))
	for _, id := range ordered {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}

	return response.Success(c, out, "Projects retrieved successfully")
}

func GetProjectHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID", nil)
	}

	var p models.Project
	err = database.DB.Preload("Owner").Preload("AssignedToUsers").Preload("AssignedToGroups").
		First(&p, id).Error
	if err != nil {
		return response.NotFound(c, "Project")
	}

	return response.Success(c, p, "Project retrieved successfully")
}

func AssignUsersHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID", nil)
	}

	var body struct {
		UserIDs []uint `json:"user_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	if err := AssignUsers(database.DB, uint(id), body.UserIDs); err != nil {
		return response.InternalError(c, "Failed to assign users")
	}

	return response.Success(c, nil, "Project assignments updated")
}

func ChangeStatusHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid project ID", nil)
	}

	var body struct {
		Status int `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	p, err := ChangeStatus(database.DB, uint(id), body.Status)
	if err != nil {
		return response.BadRequest(c, err.Error(), nil)
	}

	return response.Success(c, p, "Project status updated")
}
