package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/models"
)

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type TeamController struct {
	teams TeamStore
	log   logrus.FieldLogger
}

func NewTeamController(teams TeamStore, log logrus.FieldLogger) *TeamController {
	return &TeamController{teams: teams, log: log.WithField("component", "teams")}
}

// ListTeams returns the teams the caller belongs to
func (tc *TeamController) ListTeams(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	teams, err := tc.teams.ListForUser(c.UserContext(), userID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	return c.JSON(teams)
}

// CreateTeam makes the caller leader and sole member of a new team
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}

	var req CreateTeamRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	team := models.Team{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := tc.teams.Create(c.UserContext(), &team, userID); err != nil {
		return writeError(c, tc.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}
