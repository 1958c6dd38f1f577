package server

import (
	"time"

	"github.com/tupt100/lexops/internal/auth"
	"github.com/tupt100/lexops/internal/company"
	"github.com/tupt100/lexops/internal/group"
	"github.com/tupt100/lexops/internal/middleware"
	"github.com/tupt100/lexops/internal/models"
	"github.com/tupt100/lexops/internal/notification"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/project"
	"github.com/tupt100/lexops/internal/rank"
	"github.com/tupt100/lexops/internal/servicedesk"
	"github.com/tupt100/lexops/internal/task"
	"github.com/tupt100/lexops/internal/user"
	"github.com/tupt100/lexops/internal/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS, PATCH",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "LexOps API is running",
		})
	})

	// ==========================================
	// AUTH ROUTES (No authentication required)
	// ==========================================
	authGroup := app.Group("/auth")
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}), auth.LoginHandler)

	app.Get("/me", auth.JWTProtected(), auth.MeHandler)

	// ==========================================
	// COMPANY MANAGEMENT (Staff only)
	// ==========================================
	companyGroup := app.Group("/companies")
	companyGroup.Use(auth.JWTProtected())
	companyGroup.Post("/", auth.StaffProtected(), company.CreateCompanyHandler)
	companyGroup.Get("/", auth.StaffProtected(), company.ListCompaniesHandler)

	// ==========================================
	// INVITATIONS
	// ==========================================
	app.Post("/invitations",
		auth.JWTProtected(),
		auth.CompanyAdminProtected(),
		company.InviteHandler)
	// Token-based acceptance, no auth required.
	app.Post("/invitations/accept", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}), company.AcceptInviteHandler)

	// ==========================================
	// USER MANAGEMENT (Company admin only)
	// ==========================================
	userGroup := app.Group("/users")
	userGroup.Use(auth.JWTProtected())
	userGroup.Use(auth.CompanyAdminProtected())
	userGroup.Post("/", user.CreateUserHandler)
	userGroup.Get("/", user.ListUsersHandler)
	userGroup.Get("/:id", user.GetUserHandler)
	userGroup.Put("/:id/group", user.AssignGroupHandler)
	userGroup.Delete("/:id", user.DeleteUserHandler)

	// ==========================================
	// GROUP & PERMISSION MANAGEMENT (Company admin only)
	// ==========================================
	groupGroup := app.Group("/groups")
	groupGroup.Use(auth.JWTProtected())
	groupGroup.Use(auth.CompanyAdminProtected())
	groupGroup.Post("/", group.CreateGroupHandler)
	groupGroup.Get("/", group.ListGroupsHandler)
	groupGroup.Delete("/:id", group.DeleteGroupHandler)
	groupGroup.Get("/:id/permissions", group.GetGroupGrantsHandler)
	groupGroup.Put("/:id/permissions", group.ReplaceGroupGrantsHandler)

	app.Get("/permissions", auth.JWTProtected(), permission.ListCatalogHandler)

	// ==========================================
	// TASKS
	// ==========================================
	taskGroup := app.Group("/tasks")
	taskGroup.Use(auth.JWTProtected())
	taskGroup.Post("/",
		middleware.CategoryProtected(models.CategoryTask, permission.ActionCreate),
		task.CreateTaskHandler)
	taskGroup.Get("/",
		middleware.ViewProtected(models.CategoryTask),
		task.ListTasksHandler)
	taskGroup.Get("/:id",
		middleware.ViewProtected(models.CategoryTask),
		task.GetTaskHandler)
	taskGroup.Put("/:id/status",
		middleware.CategoryProtected(models.CategoryTask, permission.ActionUpdate),
		task.ChangeStatusHandler)

	// ==========================================
	// PROJECTS
	// ==========================================
	projectGroup := app.Group("/projects")
	projectGroup.Use(auth.JWTProtected())
	projectGroup.Post("/",
		middleware.CategoryProtected(models.CategoryProject, permission.ActionCreate),
		project.CreateProjectHandler)
	projectGroup.Get("/",
		middleware.ViewProtected(models.CategoryProject),
		project.ListProjectsHandler)
	projectGroup.Get("/:id",
		middleware.ViewProtected(models.CategoryProject),
		project.GetProjectHandler)
	projectGroup.Put("/:id/assignees",
		middleware.CategoryProtected(models.CategoryProject, permission.ActionUpdate),
		project.AssignUsersHandler)
	projectGroup.Put("/:id/status",
		middleware.CategoryProtected(models.CategoryProject, permission.ActionUpdate),
		project.ChangeStatusHandler)

	// ==========================================
	// WORKFLOWS
	// ==========================================
	workflowGroup := app.Group("/workflows")
	workflowGroup.Use(auth.JWTProtected())
	workflowGroup.Post("/",
		middleware.CategoryProtected(models.CategoryWorkflow, permission.ActionCreate),
		workflow.CreateWorkflowHandler)
	workflowGroup.Get("/",
		middleware.ViewProtected(models.CategoryWorkflow),
		workflow.ListWorkflowsHandler)
	workflowGroup.Get("/:id",
		middleware.ViewProtected(models.CategoryWorkflow),
		workflow.GetWorkflowHandler)
	workflowGroup.Put("/:id/status",
		middleware.CategoryProtected(models.CategoryWorkflow, permission.ActionUpdate),
		workflow.ChangeStatusHandler)

	// ==========================================
	// RANKS
	// ==========================================
	rankGroup := app.Group("/ranks")
	rankGroup.Use(auth.JWTProtected())
	rankGroup.Put("/tasks/:item_id/favorite", rank.ToggleFavoriteHandler)
	rankGroup.Get("/:category", rank.ListRanksHandler)

	// ==========================================
	// NOTIFICATIONS
	// ==========================================
	notifGroup := app.Group("/notifications")
	notifGroup.Use(auth.JWTProtected())
	notifGroup.Get("/", notification.ListNotificationsHandler)
	notifGroup.Put("/:id/read", notification.MarkReadHandler)

	// ==========================================
	// SERVICE DESK
	// ==========================================
	deskGroup := app.Group("/servicedesk")
	// External intake and status lookup are public but rate limited.
	deskGroup.Post("/requests", limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
	}), servicedesk.IntakeHandler)
	deskGroup.Get("/requests/status/:accessKey", servicedesk.StatusLookupHandler)

	deskGroup.Get("/requests", auth.JWTProtected(), servicedesk.ListRequestsHandler)
	deskGroup.Get("/requests/:id", auth.JWTProtected(), servicedesk.GetRequestHandler)
	deskGroup.Put("/requests/:id/status", auth.JWTProtected(), servicedesk.UpdateStatusHandler)
}
