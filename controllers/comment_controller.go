package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/models"
	"teamhub/repository"
	"teamhub/services"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=5000"`
	Task uint   `json:"task" validate:"required"`
}

type CommentController struct {
	comments CommentStore
	tasks    TaskStore
	access   AccessChecker
	activity ActivityLog
	log      logrus.FieldLogger
}

func NewCommentController(comments CommentStore, tasks TaskStore, access AccessChecker, activity ActivityLog, log logrus.FieldLogger) *CommentController {
	return &CommentController{
		comments: comments,
		tasks:    tasks,
		access:   access,
		activity: activity,
		log:      log.WithField("component", "comments"),
	}
}

// CreateComment stores the comment, then records a comment_added entry for the
// task's team. The entry is best-effort; the comment is reported as created
// even when recording fails.
func (cc *CommentController) CreateComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, cc.log, err)
	}

	var req CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.UserContext()
	teamID, err := cc.access.TeamOfTask(ctx, req.Task)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	if _, err := cc.access.RequireMember(ctx, teamID, userID); err != nil {
		return writeError(c, cc.log, err)
	}

	comment := models.Comment{
		Text:     strings.TrimSpace(req.Text),
		AuthorID: userID,
		TaskID:   req.Task,
	}
	if err := cc.comments.Create(ctx, &comment); err != nil {
		return writeError(c, cc.log, err)
	}

	description := "added a comment on a task"
	if task, err := cc.tasks.Get(ctx, req.Task); err == nil {
		description = fmt.Sprintf("added a comment on task %q", task.Title)
	}
	cc.activity.Record(ctx, services.ActivityEntry{
		Action:      models.ActionCommentAdded,
		UserID:      userID,
		TeamID:      teamID,
		TaskID:      &comment.TaskID,
		Description: description,
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (cc *CommentController) ListComments(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	taskID, err := paramID(c, "taskId")
	if err != nil {
		return writeError(c, cc.log, err)
	}

	ctx := c.UserContext()
	teamID, err := cc.access.TeamOfTask(ctx, taskID)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	if _, err := cc.access.RequireMember(ctx, teamID, userID); err != nil {
		return writeError(c, cc.log, err)
	}

	comments, err := cc.comments.ListByTask(ctx, taskID)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	return c.JSON(comments)
}

// DeleteComment is allowed for the author and for the leader of the owning team
func (cc *CommentController) DeleteComment(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	commentID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, cc.log, err)
	}

	ctx := c.UserContext()
	comment, err := cc.comments.Get(ctx, commentID)
	if err != nil {
		return writeError(c, cc.log, err)
	}

	if comment.AuthorID != userID {
		teamID, err := cc.access.TeamOfComment(ctx, commentID)
		if errors.Is(err, repository.ErrNotFound) {
			// the task is gone; only the author can clean up
			return writeError(c, cc.log, fmt.Errorf("%w: only the author can delete this comment", repository.ErrForbidden))
		}
		if err != nil {
			return writeError(c, cc.log, err)
		}
		member, err := cc.access.RequireMember(ctx, teamID, userID)
		if err != nil {
			return writeError(c, cc.log, err)
		}
		if member.Role != models.TeamRoleLeader {
			return writeError(c, cc.log, fmt.Errorf("%w: only the author or team leader can delete this comment", repository.ErrForbidden))
		}
	}

	deleted, err := cc.comments.Delete(ctx, commentID)
	if err != nil {
		return writeError(c, cc.log, err)
	}
	return c.JSON(deleted)
}
