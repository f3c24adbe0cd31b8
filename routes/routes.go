package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"teamhub/config"
	controller "teamhub/controllers"
	"teamhub/middleware"
	"teamhub/repository"
	"teamhub/services"
	"teamhub/utils"
)

// Dependencies are the process-wide components shared by every route
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *logrus.Logger
	Tokens *utils.TokenService
	Hub    *services.ActivityHub

	// Optional
	Repos          *repository.Repositories
	Retry          services.RetryQueue
	Mailer         *utils.Mailer
	LimiterStorage fiber.Storage
	AccessLog      bool
}

// NewApp builds the Fiber application with every route wired
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "teamhub",
		ReadTimeout:  deps.Config.ReadTimeout,
		WriteTimeout: deps.Config.WriteTimeout,
		ErrorHandler: errorHandler(deps.Log),
	})

	app.Use(recover.New())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: deps.Config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         3600,
	}))
	if deps.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: time.RFC3339,
		}))
	}

	SetupRoutes(app, deps)
	return app
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	repos := deps.Repos
	if repos == nil {
		repos = repository.New(deps.DB)
	}
	if deps.Hub == nil {
		deps.Hub = services.NewActivityHub(0)
	}
	recorder := services.NewActivityRecorder(repos.Activities, deps.Hub, deps.Retry, deps.Log)

	var mailer controller.WelcomeSender
	if deps.Mailer != nil {
		mailer = deps.Mailer
	}

	authController := controller.NewAuthController(repos.Users, deps.Tokens, mailer, deps.Log)
	teamController := controller.NewTeamController(repos.Teams, deps.Log)
	projectController := controller.NewProjectController(repos.Projects, repos.Access, deps.Log)
	taskController := controller.NewTaskController(repos.Tasks, repos.Access, recorder, deps.Log)
	commentController := controller.NewCommentController(repos.Comments, repos.Tasks, repos.Access, recorder, deps.Log)
	activityController := controller.NewActivityController(recorder, deps.Hub, repos.Access, deps.Log)

	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth endpoints (no authentication required)
	auth := api.Group("/auth")
	limited := middleware.AuthRateLimiter(deps.Config.RateLimitAuth, deps.LimiterStorage, deps.Log)
	auth.Post("/signup", limited, authController.Signup)
	auth.Post("/login", limited, authController.Login)

	protected := middleware.Protected(deps.Tokens)
	auth.Get("/me", protected, authController.Me)

	teams := api.Group("/teams", protected)
	teams.Get("/", teamController.ListTeams)
	teams.Post("/", teamController.CreateTeam)

	projects := api.Group("/projects", protected)
	projects.Get("/:teamId", projectController.ListProjects)
	projects.Post("/", projectController.CreateProject)

	tasks := api.Group("/tasks", protected)
	tasks.Get("/:projectId", taskController.ListTasks)
	tasks.Post("/", taskController.CreateTask)
	tasks.Patch("/:id", taskController.UpdateTask)
	tasks.Delete("/:id", taskController.DeleteTask)

	comments := api.Group("/comments", protected)
	comments.Post("/", commentController.CreateComment)
	comments.Get("/:taskId", commentController.ListComments)
	comments.Delete("/:id", commentController.DeleteComment)

	activity := api.Group("/activity", protected)
	activity.Get("/:teamId/live", activityController.UpgradeLive, websocket.New(activityController.Live))
	activity.Get("/:teamId", activityController.ListActivity)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "The requested resource was not found",
		})
	})
}

func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.ErrorResponse(c, fe.Code, fe.Message)
		}
		utils.LogError(log, "unhandled", err, map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
		})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
