package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"teamhub/models"
	"teamhub/repository"
	"teamhub/services"
	"teamhub/utils"
)

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=200"`
	Description string `json:"description"`
	Project     uint   `json:"project" validate:"required"`
	Assignee    *uint  `json:"assignee"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest holds a partial update; absent fields stay unchanged
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Assignee    *uint   `json:"assignee"`
	DueDate     *string `json:"dueDate"`
}

func (r UpdateTaskRequest) toPatch() (models.TaskPatch, error) {
	var patch models.TaskPatch
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return patch, fmt.Errorf("%w: title is required", repository.ErrInvalidArgument)
		}
		patch.Title = &title
	}
	patch.Description = r.Description
	if r.Status != nil {
		status := models.TaskStatus(*r.Status)
		if !status.Valid() {
			return patch, fmt.Errorf("%w: status must be one of: todo in-progress done", repository.ErrInvalidArgument)
		}
		patch.Status = &status
	}
	patch.AssigneeID = r.Assignee
	if r.DueDate != nil {
		due, err := utils.ParseDueDate(*r.DueDate)
		if err != nil {
			return patch, fmt.Errorf("%w: %s", repository.ErrInvalidArgument, err.Error())
		}
		patch.DueDate = due
	}
	return patch, nil
}

type TaskController struct {
	tasks    TaskStore
	access   AccessChecker
	activity ActivityLog
	log      logrus.FieldLogger
}

func NewTaskController(tasks TaskStore, access AccessChecker, activity ActivityLog, log logrus.FieldLogger) *TaskController {
	return &TaskController{
		tasks:    tasks,
		access:   access,
		activity: activity,
		log:      log.WithField("component", "tasks"),
	}
}

func (tc *TaskController) ListTasks(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	projectID, err := paramID(c, "projectId")
	if err != nil {
		return writeError(c, tc.log, err)
	}

	if _, err := tc.requireProjectMember(c.UserContext(), projectID, userID); err != nil {
		return writeError(c, tc.log, err)
	}

	tasks, err := tc.tasks.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	return c.JSON(tasks)
}

func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}

	var req CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	dueDate, err := utils.ParseDueDate(req.DueDate)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx := c.UserContext()
	teamID, err := tc.requireProjectMember(ctx, req.Project, userID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	if err := tc.checkAssignee(ctx, teamID, req.Assignee); err != nil {
		return writeError(c, tc.log, err)
	}

	task := models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ProjectID:   req.Project,
		AssigneeID:  req.Assignee,
		Status:      models.TaskStatusTodo,
		DueDate:     dueDate,
	}
	if err := tc.tasks.Create(ctx, &task); err != nil {
		return writeError(c, tc.log, err)
	}

	tc.activity.Record(ctx, services.ActivityEntry{
		Action:      models.ActionTaskCreated,
		UserID:      userID,
		TeamID:      teamID,
		TaskID:      &task.ID,
		Description: fmt.Sprintf("created task %q", task.Title),
	})

	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask merges the supplied fields. Status may move between any two values.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	taskID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, tc.log, err)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	patch, err := req.toPatch()
	if err != nil {
		return writeError(c, tc.log, err)
	}

	ctx := c.UserContext()
	current, err := tc.tasks.Get(ctx, taskID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	teamID, err := tc.requireProjectMember(ctx, current.ProjectID, userID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	if err := tc.checkAssignee(ctx, teamID, patch.AssigneeID); err != nil {
		return writeError(c, tc.log, err)
	}

	updated, err := tc.tasks.Update(ctx, taskID, patch)
	if err != nil {
		return writeError(c, tc.log, err)
	}

	if current.Status != models.TaskStatusDone && updated.Status == models.TaskStatusDone {
		tc.activity.Record(ctx, services.ActivityEntry{
			Action:      models.ActionTaskCompleted,
			UserID:      userID,
			TeamID:      teamID,
			TaskID:      &updated.ID,
			Description: fmt.Sprintf("completed task %q", updated.Title),
		})
	}

	return c.JSON(updated)
}

// DeleteTask removes a task; its comments are not removed
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	taskID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, tc.log, err)
	}

	ctx := c.UserContext()
	task, err := tc.tasks.Get(ctx, taskID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	if _, err := tc.requireProjectMember(ctx, task.ProjectID, userID); err != nil {
		return writeError(c, tc.log, err)
	}

	deleted, err := tc.tasks.Delete(ctx, taskID)
	if err != nil {
		return writeError(c, tc.log, err)
	}
	return c.JSON(deleted)
}

// requireProjectMember resolves the project's team and checks the caller belongs to it
func (tc *TaskController) requireProjectMember(ctx context.Context, projectID, userID uint) (uint, error) {
	teamID, err := tc.access.TeamOfProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if _, err := tc.access.RequireMember(ctx, teamID, userID); err != nil {
		return 0, err
	}
	return teamID, nil
}

func (tc *TaskController) checkAssignee(ctx context.Context, teamID uint, assignee *uint) error {
	if assignee == nil {
		return nil
	}
	ok, err := tc.access.IsMember(ctx, teamID, *assignee)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: assignee is not a member of the team", repository.ErrInvalidArgument)
	}
	return nil
}
