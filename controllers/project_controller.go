package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/models"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description"`
	Team        uint   `json:"team" validate:"required"`
}

type ProjectController struct {
	projects ProjectStore
	access   AccessChecker
	log      logrus.FieldLogger
}

func NewProjectController(projects ProjectStore, access AccessChecker, log logrus.FieldLogger) *ProjectController {
	return &ProjectController{
		projects: projects,
		access:   access,
		log:      log.WithField("component", "projects"),
	}
}

func (pc *ProjectController) ListProjects(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, pc.log, err)
	}
	teamID, err := paramID(c, "teamId")
	if err != nil {
		return writeError(c, pc.log, err)
	}

	if _, err := pc.access.RequireMember(c.UserContext(), teamID, userID); err != nil {
		return writeError(c, pc.log, err)
	}

	projects, err := pc.projects.ListByTeam(c.UserContext(), teamID)
	if err != nil {
		return writeError(c, pc.log, err)
	}
	return c.JSON(projects)
}

func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, pc.log, err)
	}

	var req CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	// the team must exist and the caller must belong to it
	if _, err := pc.access.RequireMember(c.UserContext(), req.Team, userID); err != nil {
		return writeError(c, pc.log, err)
	}

	project := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TeamID:      req.Team,
	}
	if err := pc.projects.Create(c.UserContext(), &project); err != nil {
		return writeError(c, pc.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}
