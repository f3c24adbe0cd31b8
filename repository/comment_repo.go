package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"teamhub/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and loads its author
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.Author = nil
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	var author models.User
	if err := r.db.WithContext(ctx).First(&author, comment.AuthorID).Error; err != nil {
		return notFound(err, "author")
	}
	comment.Author = &author
	return nil
}

func (r *CommentRepository) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, notFound(err, "comment")
	}
	return &comment, nil
}

// ListByTask returns the task's comments with authors, oldest first
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).Preload("Author").Where("task_id = ?", taskID).Order("id").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Delete removes the comment and returns it as it was stored
func (r *CommentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}
	return comment, nil
}
