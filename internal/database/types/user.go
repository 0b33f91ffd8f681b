package types

import (
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

// CreatorUsername is elevated to full permissions on every read.
const CreatorUsername = ".meonix"

// User represents a community member.
type User struct {
	ID                 int64    `bun:",pk,autoincrement"      json:"id"`
	DiscordID          string   `bun:",unique,nullzero"       json:"discordId"`
	Username           string   `bun:",notnull"               json:"username"`
	Avatar             string   `bun:",nullzero"              json:"avatar"`
	Bio                string   `bun:",nullzero"              json:"bio"`
	Roles              []string `bun:",notnull"               json:"roles"`
	IsAdmin            bool     `bun:",notnull,default:false" json:"isAdmin"`
	IsStaff            bool     `bun:",notnull,default:false" json:"isStaff"`
	IsCreator          bool     `bun:",notnull,default:false" json:"isCreator"`
	TrackingEnabled    bool     `bun:",notnull,default:false" json:"trackingEnabled"`
	DiscordAccessToken string   `bun:",nullzero"              json:"-"`
}

// UserUpdate holds the mutable subset of user fields for partial updates.
// Nil fields are left untouched.
type UserUpdate struct {
	Username           *string   `json:"username"`
	Avatar             *string   `json:"avatar"`
	Bio                *string   `json:"bio"`
	Roles              *[]string `json:"roles"`
	IsAdmin            *bool     `json:"isAdmin"`
	IsStaff            *bool     `json:"isStaff"`
	IsCreator          *bool     `json:"isCreator"`
	TrackingEnabled    *bool     `json:"trackingEnabled"`
	DiscordAccessToken *string   `json:"-"`
}

// Elevate grants the hardcoded creator account full permissions.
// Applied on every read so the flags never depend on stored state.
func (u *User) Elevate() {
	if u.Username == CreatorUsername {
		u.IsCreator = true
		u.IsAdmin = true
		u.IsStaff = true
	}
}

// CanNotify reports whether the user is eligible for Discord delivery.
// Users without a linked Discord account or stored token are silently
// excluded from notification fan-outs.
func (u *User) CanNotify() bool {
	return u.DiscordID != "" && u.DiscordAccessToken != ""
}
