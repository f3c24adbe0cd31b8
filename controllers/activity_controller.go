package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"teamhub/repository"
)

const localsFeedTeam = "feedTeamID"

type ActivityController struct {
	activity ActivityLog
	feed     ActivityFeed
	access   AccessChecker
	log      logrus.FieldLogger
}

func NewActivityController(activity ActivityLog, feed ActivityFeed, access AccessChecker, log logrus.FieldLogger) *ActivityController {
	return &ActivityController{
		activity: activity,
		feed:     feed,
		access:   access,
		log:      log.WithField("component", "activity"),
	}
}

// ListActivity returns the team's most recent entries, newest first
func (ac *ActivityController) ListActivity(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, ac.log, err)
	}
	teamID, err := paramID(c, "teamId")
	if err != nil {
		return writeError(c, ac.log, err)
	}
	if _, err := ac.access.RequireMember(c.UserContext(), teamID, userID); err != nil {
		return writeError(c, ac.log, err)
	}

	limit := c.QueryInt("limit", repository.MaxActivityFeed)
	activities, err := ac.activity.ListRecent(c.UserContext(), teamID, limit)
	if err != nil {
		return writeError(c, ac.log, err)
	}
	return c.JSON(activities)
}

// UpgradeLive authorizes a websocket upgrade for the team feed
func (ac *ActivityController) UpgradeLive(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, ac.log, err)
	}
	teamID, err := paramID(c, "teamId")
	if err != nil {
		return writeError(c, ac.log, err)
	}
	if _, err := ac.access.RequireMember(c.UserContext(), teamID, userID); err != nil {
		return writeError(c, ac.log, err)
	}
	c.Locals(localsFeedTeam, teamID)
	return c.Next()
}

// Live streams new entries of the team as JSON messages until the client leaves
func (ac *ActivityController) Live(conn *websocket.Conn) {
	defer conn.Close()

	teamID, ok := conn.Locals(localsFeedTeam).(uint)
	if !ok {
		return
	}
	sub := ac.feed.Subscribe(teamID)
	defer ac.feed.Unsubscribe(sub)

	// reads only detect the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case activity, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(activity); err != nil {
				ac.log.WithError(err).WithField("team_id", teamID).Debug("live feed write failed")
				return
			}
		}
	}
}
