package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jaxron/roapi.go/pkg/api"
	"github.com/jaxron/roapi.go/pkg/api/resources/thumbnails"
	apiTypes "github.com/jaxron/roapi.go/pkg/api/types"
	"go.uber.org/zap"
)

// ErrIconUnavailable is returned when the group icon is missing or still processing.
var ErrIconUnavailable = errors.New("group icon unavailable")

// GroupDetails contains the subset of group information the hub tracks.
type GroupDetails struct {
	Name        string
	MemberCount uint64
}

// GroupFetcher handles retrieval of group information from the Roblox API.
type GroupFetcher struct {
	roAPI   *api.API
	groupID uint64
	logger  *zap.Logger
}

// NewGroupFetcher creates a GroupFetcher for the configured group.
func NewGroupFetcher(roAPI *api.API, groupID uint64, logger *zap.Logger) *GroupFetcher {
	return &GroupFetcher{
		roAPI:   roAPI,
		groupID: groupID,
		logger:  logger.Named("group_fetcher"),
	}
}

// GetGroupDetails retrieves the group's display name and current member count.
func (g *GroupFetcher) GetGroupDetails(ctx context.Context) (*GroupDetails, error) {
	groupInfo, err := g.roAPI.Groups().GetGroupInfo(ctx, g.groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group info: %w", err)
	}

	g.logger.Debug("Fetched group info",
		zap.Uint64("groupID", g.groupID),
		zap.String("name", groupInfo.Name),
		zap.Uint64("memberCount", groupInfo.MemberCount))

	return &GroupDetails{
		Name:        groupInfo.Name,
		MemberCount: groupInfo.MemberCount,
	}, nil
}

// GetGroupIcon retrieves the group's icon URL via the thumbnails API.
func (g *GroupFetcher) GetGroupIcon(ctx context.Context) (string, error) {
	requests := thumbnails.NewBatchThumbnailsBuilder()
	requests.AddRequest(apiTypes.ThumbnailRequest{
		Type:      apiTypes.GroupIconType,
		TargetID:  g.groupID,
		RequestID: strconv.FormatUint(g.groupID, 10),
		Size:      apiTypes.Size420x420,
		Format:    apiTypes.PNG,
	})

	resp, err := g.roAPI.Thumbnails().GetBatchThumbnails(ctx, requests.Build())
	if err != nil {
		return "", fmt.Errorf("failed to get group icon: %w", err)
	}

	for _, data := range resp.Data {
		if data.TargetID != g.groupID {
			continue
		}

		if data.State == apiTypes.ThumbnailStateCompleted && data.ImageURL != nil {
			return *data.ImageURL, nil
		}
	}

	return "", ErrIconUnavailable
}
