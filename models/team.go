package models

import "time"

// Team represents a collaboration group led by one of its members
type Team struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	LeaderID    uint      `gorm:"not null;index" json:"leader_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// Team member roles
const (
	TeamRoleLeader = "leader"
	TeamRoleMember = "member"
)

// TeamMember links a user to a team
type TeamMember struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	TeamID    uint      `gorm:"not null;uniqueIndex:idx_team_members_team_user" json:"team_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_team_members_team_user;index" json:"user_id"`
	Role      string    `gorm:"default:'member'" json:"role"` // leader, member
	CreatedAt time.Time `json:"joined_at"`
}

// MemberIDs returns the user ids of every loaded member
func (t *Team) MemberIDs() []uint {
	ids := make([]uint, 0, len(t.Members))
	for _, m := range t.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
