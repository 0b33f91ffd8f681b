package types

import (
	"errors"
	"time"
)

var ErrChannelNotFound = errors.New("youtube channel not found")

// YouTubeChannel represents a creator channel surfaced on the hub.
type YouTubeChannel struct {
	ID        int64  `bun:",pk,autoincrement" json:"id"`
	ChannelID string `bun:",unique,notnull"   json:"channelId"`
	Title     string `bun:",notnull"          json:"title"`
	Thumbnail string `bun:",nullzero"         json:"thumbnail"`
	AddedBy   int64  `bun:",nullzero"         json:"addedBy"`
}

// YouTubeVideo represents a cached video from a tracked channel.
type YouTubeVideo struct {
	ID          int64     `bun:",pk,autoincrement" json:"id"`
	VideoID     string    `bun:",unique,notnull"   json:"videoId"`
	ChannelID   string    `bun:",notnull"          json:"channelId"`
	Title       string    `bun:",notnull"          json:"title"`
	Thumbnail   string    `bun:",notnull"          json:"thumbnail"`
	PublishedAt string    `bun:",notnull"          json:"publishedAt"`
	ViewCount   string    `bun:",nullzero"         json:"viewCount"`
	LastFetched time.Time `bun:",notnull"          json:"lastFetched"`
}
