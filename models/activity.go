package models

import "time"

// Activity actions
const (
	ActionCommentAdded  = "comment_added"
	ActionTaskCreated   = "task_created"
	ActionTaskCompleted = "task_completed"
)

// Activity is an append-only entry in a team's feed
type Activity struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Action      string    `gorm:"not null;index" json:"action"`
	UserID      uint      `gorm:"not null" json:"user_id"`
	TeamID      uint      `gorm:"not null;index:idx_activities_team_created" json:"team_id"`
	TaskID      *uint     `json:"task_id,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"index:idx_activities_team_created" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
