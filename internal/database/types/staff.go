package types

import (
	"errors"
)

var ErrStaffProfileNotFound = errors.New("staff profile not found")

// SocialLinks holds a staff member's public links.
type SocialLinks struct {
	Discord string `json:"discord,omitempty"`
	Roblox  string `json:"roblox,omitempty"`
	YouTube string `json:"youtube,omitempty"`
}

// StaffProfile represents a staff member's public profile.
type StaffProfile struct {
	ID          int64       `bun:",pk,autoincrement" json:"id"`
	UserID      int64       `bun:",unique,notnull"   json:"userId"`
	RoleLabel   string      `bun:",notnull"          json:"roleLabel"`
	SocialLinks SocialLinks `bun:",notnull"          json:"socialLinks"`
}

// Comment represents a community note left on a staff profile.
type Comment struct {
	ID             int64  `bun:",pk,autoincrement" json:"id"`
	StaffProfileID int64  `bun:",notnull"          json:"staffProfileId"`
	AuthorID       int64  `bun:",notnull"          json:"authorId"`
	Content        string `bun:",notnull"          json:"content"`
}

// CommentWithAuthor pairs a comment with its author's user record.
type CommentWithAuthor struct {
	Comment

	Author *User `json:"author"`
}

// StaffMember aggregates a staff user with their profile and comments.
type StaffMember struct {
	User

	Profile  *StaffProfile        `json:"profile"`
	Comments []*CommentWithAuthor `json:"comments"`
}
