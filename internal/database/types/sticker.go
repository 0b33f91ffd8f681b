package types

import (
	"errors"
)

var ErrStickerNotFound = errors.New("sticker not found")

// StickerTrend represents the direction a sticker's value is moving.
type StickerTrend string

const (
	StickerTrendStable  StickerTrend = "stable"
	StickerTrendRising  StickerTrend = "rising"
	StickerTrendFalling StickerTrend = "falling"
)

// StickerStatus represents how a sticker trades relative to its listed value.
type StickerStatus string

const (
	StickerStatusOverpay  StickerStatus = "overpay"
	StickerStatusStable   StickerStatus = "stable"
	StickerStatusUnderpay StickerStatus = "underpay"
)

// Sticker represents a collectible sticker valuation entry.
type Sticker struct {
	ID       int64         `bun:",pk,autoincrement"         json:"id"`
	Name     string        `bun:",notnull"                  json:"name"`
	Image    string        `bun:",notnull"                  json:"image"`
	Price    int64         `bun:",notnull,default:0"        json:"price"`
	Trend    StickerTrend  `bun:",notnull,default:'stable'" json:"trend"`
	Demand   int           `bun:",notnull,default:5"        json:"demand"`
	Status   StickerStatus `bun:",notnull,default:'stable'" json:"status"`
	Category string        `bun:",notnull,default:'common'" json:"category"`
}

// ApplyDefaults fills unset fields with their catalog defaults before insert.
func (s *Sticker) ApplyDefaults() {
	if s.Trend == "" {
		s.Trend = StickerTrendStable
	}

	if s.Status == "" {
		s.Status = StickerStatusStable
	}

	if s.Category == "" {
		s.Category = "common"
	}

	if s.Demand == 0 {
		s.Demand = 5
	}
}

// StickerUpdate holds the mutable subset of sticker fields for partial updates.
type StickerUpdate struct {
	Name     *string        `json:"name"`
	Image    *string        `json:"image"`
	Price    *int64         `json:"price"`
	Trend    *StickerTrend  `json:"trend"`
	Demand   *int           `json:"demand"`
	Status   *StickerStatus `json:"status"`
	Category *string        `json:"category"`
}

// StickerFilters narrows sticker list queries.
type StickerFilters struct {
	// Case-insensitive substring match on the sticker name.
	Search string
	// Exact category match.
	Category string
	// Exact trend match.
	Trend string
}
