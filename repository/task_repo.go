package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	if !task.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, task.Status)
	}
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Get(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err, "task")
	}
	return &task, nil
}

// ListByProject returns the project's tasks in insertion order
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update merges the supplied fields into the stored task. Any status may follow any other.
func (r *TaskRepository) Update(ctx context.Context, id uint, patch models.TaskPatch) (*models.Task, error) {
	task, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return task, nil
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, *patch.Status)
		}
		updates["status"] = *patch.Status
	}
	if patch.AssigneeID != nil {
		updates["assignee_id"] = *patch.AssigneeID
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}

	if err := r.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return r.Get(ctx, id)
}

// Delete removes the task and returns it. Comments on the task are left in place.
func (r *TaskRepository) Delete(ctx context.Context, id uint) (*models.Task, error) {
	task, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Task{}, id).Error; err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return task, nil
}
