package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/rest/middleware/auth"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type fakeGroupAPI struct {
	details    *fetcher.GroupDetails
	detailsErr error
	icon       string
	iconErr    error
}

func (f *fakeGroupAPI) GetGroupDetails(context.Context) (*fetcher.GroupDetails, error) {
	return f.details, f.detailsErr
}

func (f *fakeGroupAPI) GetGroupIcon(context.Context) (string, error) {
	return f.icon, f.iconErr
}

type fakeNotifier struct {
	disabled  bool
	joinErr   error
	dmErr     error
	joins     int
	dms       int
	lastEmbed disgodiscord.Embed
}

func (f *fakeNotifier) Enabled() bool {
	return !f.disabled
}

func (f *fakeNotifier) AddGuildMember(context.Context, string, string) error {
	f.joins++
	return f.joinErr
}

func (f *fakeNotifier) SendDM(_ context.Context, _ string, embed disgodiscord.Embed) error {
	f.dms++
	f.lastEmbed = embed

	return f.dmErr
}

func linkedUser() *types.User {
	return &types.User{
		ID:                 1,
		Username:           "beekeeper",
		DiscordID:          "123456789",
		DiscordAccessToken: "token",
	}
}

func serveTestPing(t *testing.T, user *types.User, groups GroupAPI, notifier Notifier) *httptest.ResponseRecorder {
	t.Helper()

	h := NewUserHandler(nil, groups, notifier, zap.NewNop())

	router := bunrouter.New()
	router.POST("/api/user/test-ping", h.TestPing)

	req := httptest.NewRequest(http.MethodPost, "/api/user/test-ping", nil)
	if user != nil {
		req = req.WithContext(auth.ContextWithUser(req.Context(), user))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestTestPingSendsDM(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{details: &fetcher.GroupDetails{Name: "Bee Club", MemberCount: 50}}
	notifier := &fakeNotifier{}

	w := serveTestPing(t, linkedUser(), groups, notifier)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, notifier.joins)
	assert.Equal(t, 1, notifier.dms)
}

func TestTestPingJoinFailureSurfacedAfterDM(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{details: &fetcher.GroupDetails{Name: "Bee Club", MemberCount: 50}}
	notifier := &fakeNotifier{joinErr: errors.New("missing guilds.join scope")}

	w := serveTestPing(t, linkedUser(), groups, notifier)

	// The DM is still attempted, but the caller learns the join failed.
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 1, notifier.dms)
}

func TestTestPingDMFailure(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{details: &fetcher.GroupDetails{Name: "Bee Club", MemberCount: 50}}
	notifier := &fakeNotifier{dmErr: errors.New("cannot message this user")}

	w := serveTestPing(t, linkedUser(), groups, notifier)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 1, notifier.joins)
}

func TestTestPingRequiresAuthentication(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}

	w := serveTestPing(t, nil, &fakeGroupAPI{}, notifier)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, notifier.joins)
	assert.Zero(t, notifier.dms)
}

func TestTestPingRequiresDiscordLink(t *testing.T) {
	t.Parallel()

	user := linkedUser()
	user.DiscordAccessToken = ""
	notifier := &fakeNotifier{}

	w := serveTestPing(t, user, &fakeGroupAPI{}, notifier)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, notifier.dms)
}

func TestTestPingDisabledNotifier(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{disabled: true}

	w := serveTestPing(t, linkedUser(), &fakeGroupAPI{}, notifier)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Zero(t, notifier.joins)
}

func TestTestPingEmptyGroupNameFallsBack(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{details: &fetcher.GroupDetails{Name: "", MemberCount: 50}}
	notifier := &fakeNotifier{}

	w := serveTestPing(t, linkedUser(), groups, notifier)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, notifier.lastEmbed.Description, fallbackGroupName)
}

func TestTestPingMetadataFailureFallsBack(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{detailsErr: errors.New("roblox down"), iconErr: errors.New("roblox down")}
	notifier := &fakeNotifier{}

	w := serveTestPing(t, linkedUser(), groups, notifier)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, notifier.lastEmbed.Description, fallbackGroupName)
	assert.Nil(t, notifier.lastEmbed.Thumbnail)
}
