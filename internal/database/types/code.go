package types

import (
	"errors"
	"time"
)

var ErrCodeNotFound = errors.New("promotional code not found")

// CodeStatus represents whether a promotional code can still be redeemed.
type CodeStatus string

const (
	CodeStatusActive  CodeStatus = "active"
	CodeStatusExpired CodeStatus = "expired"
)

// PromoCode represents a redeemable promotional code.
type PromoCode struct {
	ID          int64      `bun:",pk,autoincrement"         json:"id"`
	Code        string     `bun:",unique,notnull"           json:"code"`
	Reward      []string   `bun:",notnull"                  json:"reward"`
	Description string     `bun:",notnull"                  json:"description"`
	Status      CodeStatus `bun:",notnull,default:'active'" json:"status"`
	CreatedAt   time.Time  `bun:",notnull"                  json:"createdAt"`
}

// PromoCodeUpdate holds the mutable subset of code fields for partial updates.
type PromoCodeUpdate struct {
	Code        *string     `json:"code"`
	Reward      *[]string   `json:"reward"`
	Description *string     `json:"description"`
	Status      *CodeStatus `json:"status"`
}
