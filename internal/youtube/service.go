package youtube

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/swarmlabs/hivehub/internal/database/types"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

const maxVideosPerChannel = 10

var (
	// ErrChannelNotFound indicates the channel ID or handle resolved to nothing.
	ErrChannelNotFound = errors.New("youtube channel not found")
	// ErrNotConfigured indicates no API key was provided.
	ErrNotConfigured = errors.New("youtube api not configured")
)

// Service wraps the YouTube Data API for channel resolution and video syncs.
type Service struct {
	api    *youtubeapi.Service
	logger *zap.Logger
}

// NewService creates a YouTube service with the given API key.
// Returns a disabled service when the key is empty.
func NewService(ctx context.Context, apiKey string, logger *zap.Logger) (*Service, error) {
	svc := &Service{logger: logger.Named("youtube")}
	if apiKey == "" {
		return svc, nil
	}

	api, err := youtubeapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	svc.api = api

	return svc, nil
}

// Enabled reports whether an API key was configured.
func (s *Service) Enabled() bool {
	return s.api != nil
}

// ChannelInfo holds the resolved identity of a channel.
type ChannelInfo struct {
	ChannelID string
	Title     string
	Thumbnail string
}

// ResolveChannel resolves a raw channel ID or an @handle to its canonical
// channel ID, title and thumbnail.
func (s *Service) ResolveChannel(ctx context.Context, idOrHandle string) (*ChannelInfo, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	call := s.api.Channels.List([]string{"snippet"}).Context(ctx)
	if handle, ok := strings.CutPrefix(idOrHandle, "@"); ok {
		call = call.ForHandle(handle)
	} else {
		call = call.Id(idOrHandle)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up channel %q: %w", idOrHandle, err)
	}

	if len(resp.Items) == 0 {
		return nil, ErrChannelNotFound
	}

	channel := resp.Items[0]
	info := &ChannelInfo{
		ChannelID: channel.Id,
		Title:     channel.Snippet.Title,
	}

	if thumbs := channel.Snippet.Thumbnails; thumbs != nil {
		switch {
		case thumbs.High != nil:
			info.Thumbnail = thumbs.High.Url
		case thumbs.Medium != nil:
			info.Thumbnail = thumbs.Medium.Url
		case thumbs.Default != nil:
			info.Thumbnail = thumbs.Default.Url
		}
	}

	return info, nil
}

// LatestVideos fetches the channel's most recent uploads, newest first.
func (s *Service) LatestVideos(ctx context.Context, channelID string) ([]*types.YouTubeVideo, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	searchResp, err := s.api.Search.List([]string{"snippet"}).
		Context(ctx).
		ChannelId(channelID).
		Order("date").
		Type("video").
		MaxResults(maxVideosPerChannel).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos for channel %s: %w", channelID, err)
	}

	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	videos := make([]*types.YouTubeVideo, 0, len(searchResp.Items))
	videoIDs := make([]string, 0, len(searchResp.Items))

	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		video := &types.YouTubeVideo{
			VideoID:     item.Id.VideoId,
			ChannelID:   channelID,
			Title:       item.Snippet.Title,
			PublishedAt: item.Snippet.PublishedAt,
		}
		if thumbs := item.Snippet.Thumbnails; thumbs != nil && thumbs.High != nil {
			video.Thumbnail = thumbs.High.Url
		}

		videos = append(videos, video)
		videoIDs = append(videoIDs, item.Id.VideoId)
	}

	// View counts come from a second lookup since search results carry none.
	statsResp, err := s.api.Videos.List([]string{"statistics"}).
		Context(ctx).
		Id(videoIDs...).
		Do()
	if err != nil {
		s.logger.Warn("Failed to fetch video statistics",
			zap.String("channelID", channelID),
			zap.Error(err))

		return videos, nil
	}

	viewCounts := make(map[string]uint64, len(statsResp.Items))
	for _, item := range statsResp.Items {
		if item.Statistics != nil {
			viewCounts[item.Id] = item.Statistics.ViewCount
		}
	}

	for _, video := range videos {
		video.ViewCount = strconv.FormatUint(viewCounts[video.VideoID], 10)
	}

	return videos, nil
}
