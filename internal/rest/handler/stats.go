package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sourcegraph/conc/pool"
	"github.com/swarmlabs/hivehub/internal/database"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Placeholders shown when a live stat source is unreachable.
const (
	placeholderPlayerCount   = "15k+"
	placeholderServerMembers = "TBD"
)

// PlayerCounter reports the live player count of the tracked game.
type PlayerCounter interface {
	GetPlayingCount(ctx context.Context) (uint64, error)
}

// MemberCounter reports the community server's approximate member count.
type MemberCounter interface {
	GetMemberCount(ctx context.Context) (int, error)
}

// StatsHandler aggregates hub statistics from the database and live sources.
type StatsHandler struct {
	db      database.Client
	games   PlayerCounter
	members MemberCounter
	logger  *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(db database.Client, games PlayerCounter, members MemberCounter, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		db:      db,
		games:   games,
		members: members,
		logger:  logger,
	}
}

// StatsResponse is the aggregated stats payload.
type StatsResponse struct {
	StickerCount  int    `json:"stickerCount"`
	PlayerCount   string `json:"playerCount"`
	ServerMembers string `json:"serverMembers"`
}

// Get returns hub statistics. Live player and member counts are fetched
// concurrently and degrade to placeholders when their sources fail.
func (h *StatsHandler) Get(w http.ResponseWriter, req bunrouter.Request) error {
	stickerCount, err := h.db.Model().Sticker().CountStickers(req.Context())
	if err != nil {
		h.logger.Error("Failed to count stickers", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	response := StatsResponse{
		StickerCount:  stickerCount,
		PlayerCount:   placeholderPlayerCount,
		ServerMembers: placeholderServerMembers,
	}

	p := pool.New().WithContext(req.Context())

	p.Go(func(ctx context.Context) error {
		playing, err := h.games.GetPlayingCount(ctx)
		if err != nil {
			h.logger.Warn("Failed to get player count", zap.Error(err))
			return nil
		}

		response.PlayerCount = groupDigits(strconv.FormatUint(playing, 10))

		return nil
	})

	p.Go(func(ctx context.Context) error {
		members, err := h.members.GetMemberCount(ctx)
		if err != nil {
			h.logger.Warn("Failed to get server member count", zap.Error(err))
			return nil
		}

		response.ServerMembers = groupDigits(strconv.Itoa(members))

		return nil
	})

	_ = p.Wait()

	return bunrouter.JSON(w, response)
}

// groupDigits inserts thousands separators into a decimal string.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var out []byte

	lead := len(digits) % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}

	for i := lead; i < len(digits); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}

		out = append(out, digits[i:i+3]...)
	}

	return string(out)
}
