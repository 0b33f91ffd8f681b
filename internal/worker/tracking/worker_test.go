package tracking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarmlabs/hivehub/internal/database/types"
	"github.com/swarmlabs/hivehub/internal/roblox/fetcher"
	"go.uber.org/zap"
)

var errFetch = errors.New("fetch failed")

// detailsResult scripts one GetGroupDetails call. Each tick consumes two:
// the metadata lookup first, then the member count lookup.
type detailsResult struct {
	details *fetcher.GroupDetails
	err     error
}

type fakeGroupAPI struct {
	results []detailsResult
	icon    string
	iconErr error
}

func (f *fakeGroupAPI) GetGroupDetails(context.Context) (*fetcher.GroupDetails, error) {
	if len(f.results) == 0 {
		return nil, errFetch
	}

	result := f.results[0]
	f.results = f.results[1:]

	return result.details, result.err
}

func (f *fakeGroupAPI) GetGroupIcon(context.Context) (string, error) {
	return f.icon, f.iconErr
}

// enqueueTick scripts a full tick where both lookups succeed with the count.
func (f *fakeGroupAPI) enqueueTick(name string, count uint64) {
	details := &fetcher.GroupDetails{Name: name, MemberCount: count}
	f.results = append(f.results,
		detailsResult{details: details},
		detailsResult{details: details},
	)
}

type fakeUserStore struct {
	users []*types.User
	err   error
}

func (f *fakeUserStore) GetUsersWithTracking(context.Context) ([]*types.User, error) {
	return f.users, f.err
}

type fakeNotifier struct {
	enabled  bool
	joinErrs map[string]error
	dmErrs   map[string]error

	joins []string
	dms   []string
	embed disgodiscord.Embed
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		enabled:  true,
		joinErrs: make(map[string]error),
		dmErrs:   make(map[string]error),
	}
}

func (f *fakeNotifier) Enabled() bool { return f.enabled }

func (f *fakeNotifier) AddGuildMember(_ context.Context, discordID, _ string) error {
	f.joins = append(f.joins, discordID)
	return f.joinErrs[discordID]
}

func (f *fakeNotifier) SendDM(_ context.Context, discordID string, embed disgodiscord.Embed) error {
	f.dms = append(f.dms, discordID)
	f.embed = embed

	return f.dmErrs[discordID]
}

func trackedUser(id int64, discordID string) *types.User {
	return &types.User{
		ID:                 id,
		Username:           fmt.Sprintf("user%d", id),
		DiscordID:          discordID,
		DiscordAccessToken: "token-" + discordID,
		TrackingEnabled:    true,
	}
}

func newTestWorker(groups *fakeGroupAPI, users *fakeUserStore, notifier *fakeNotifier) *Worker {
	return New(groups, users, notifier, time.Minute, zap.NewNop())
}

func TestFirstTickEstablishesBaseline(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	w.Tick(t.Context())

	assert.Empty(t, notifier.dms, "cold start must not fan out")
	assert.Equal(t, uint64(50), w.lastCount)
	assert.True(t, w.initialized)
}

func TestGrowthTriggersFanOut(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{icon: "https://cdn.example/icon.png"}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 52)

	users := &fakeUserStore{users: []*types.User{
		trackedUser(1, "100"),
		trackedUser(2, "200"),
	}}
	notifier := newFakeNotifier()
	w := newTestWorker(groups, users, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Equal(t, []string{"100", "200"}, notifier.joins)
	assert.Equal(t, []string{"100", "200"}, notifier.dms)
	assert.Equal(t, uint64(52), w.lastCount)

	// The embed carries the group name and the new member count
	require.Len(t, notifier.embed.Fields, 2)
	assert.Equal(t, "Bee Club", notifier.embed.Fields[0].Value)
	assert.Equal(t, "52", notifier.embed.Fields[1].Value)
	require.NotNil(t, notifier.embed.Thumbnail)
	assert.Equal(t, "https://cdn.example/icon.png", notifier.embed.Thumbnail.URL)
}

func TestCountFetchFailureAbortsTick(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 52)

	// Metadata lookup succeeds, count lookup fails
	details := &fetcher.GroupDetails{Name: "Bee Club", MemberCount: 52}
	groups.results = append(groups.results,
		detailsResult{details: details},
		detailsResult{err: errFetch},
	)

	// Recovery tick observes growth against the old baseline
	groups.enqueueTick("Bee Club", 53)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()

	w.Tick(ctx)
	require.Equal(t, uint64(52), w.lastCount)

	w.Tick(ctx)
	assert.Empty(t, notifier.dms, "aborted tick must not fan out")
	assert.Equal(t, uint64(52), w.lastCount, "aborted tick must not move the baseline")

	w.Tick(ctx)
	assert.Equal(t, []string{"100"}, notifier.dms, "next tick compares against the preserved baseline")
	assert.Equal(t, uint64(53), w.lastCount)
}

func TestEqualCountDoesNotFanOut(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 52)
	groups.enqueueTick("Bee Club", 52)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Empty(t, notifier.dms)
	assert.Equal(t, uint64(52), w.lastCount)
}

func TestShrinkDoesNotFanOut(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 52)
	groups.enqueueTick("Bee Club", 48)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Empty(t, notifier.dms)
	assert.Equal(t, uint64(48), w.lastCount, "baseline still follows the latest fetched value")
}

func TestJoinFailureDoesNotBlockDM(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 51)

	users := &fakeUserStore{users: []*types.User{
		trackedUser(1, "100"),
		trackedUser(2, "200"),
	}}
	notifier := newFakeNotifier()
	notifier.joinErrs["100"] = errors.New("guild join rejected")

	w := newTestWorker(groups, users, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	// User 100's DM is still attempted, and user 200 is unaffected
	assert.Equal(t, []string{"100", "200"}, notifier.joins)
	assert.Equal(t, []string{"100", "200"}, notifier.dms)
}

func TestDMFailureDoesNotBlockNextUser(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 51)

	users := &fakeUserStore{users: []*types.User{
		trackedUser(1, "100"),
		trackedUser(2, "200"),
	}}
	notifier := newFakeNotifier()
	notifier.dmErrs["100"] = errors.New("cannot DM user")

	w := newTestWorker(groups, users, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Equal(t, []string{"100", "200"}, notifier.dms)
}

func TestIneligibleUsersAreSkipped(t *testing.T) {
	t.Parallel()

	noDiscord := &types.User{ID: 3, Username: "user3", TrackingEnabled: true}
	noToken := &types.User{ID: 4, Username: "user4", DiscordID: "400", TrackingEnabled: true}

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 51)

	users := &fakeUserStore{users: []*types.User{
		noDiscord,
		trackedUser(1, "100"),
		noToken,
	}}
	notifier := newFakeNotifier()
	w := newTestWorker(groups, users, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Equal(t, []string{"100"}, notifier.joins)
	assert.Equal(t, []string{"100"}, notifier.dms)
}

func TestMetadataFailureDegradesToDefaults(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{iconErr: errFetch}
	groups.enqueueTick("Bee Club", 50)

	// Metadata lookup fails, count lookup succeeds
	groups.results = append(groups.results,
		detailsResult{err: errFetch},
		detailsResult{details: &fetcher.GroupDetails{Name: "Bee Club", MemberCount: 51}},
	)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	require.Equal(t, []string{"100"}, notifier.dms, "metadata failure must not suppress the fan-out")
	assert.Contains(t, notifier.embed.Description, defaultGroupName)
	assert.Nil(t, notifier.embed.Thumbnail)
	assert.Equal(t, uint64(51), w.lastCount)
}

func TestZeroMemberBaselineStillDetectsGrowth(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 0)
	groups.enqueueTick("Bee Club", 1)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()

	w.Tick(ctx)
	assert.True(t, w.initialized, "a legitimate zero count initializes the baseline")
	assert.Empty(t, notifier.dms)

	w.Tick(ctx)
	assert.Equal(t, []string{"100"}, notifier.dms, "growth from zero is real growth")
}

func TestDisabledNotifierStillTracksBaseline(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 55)

	notifier := newFakeNotifier()
	notifier.enabled = false

	w := newTestWorker(groups, &fakeUserStore{users: []*types.User{trackedUser(1, "100")}}, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Empty(t, notifier.joins)
	assert.Empty(t, notifier.dms)
	assert.Equal(t, uint64(55), w.lastCount)
}

func TestUserStoreFailureSkipsFanOut(t *testing.T) {
	t.Parallel()

	groups := &fakeGroupAPI{}
	groups.enqueueTick("Bee Club", 50)
	groups.enqueueTick("Bee Club", 51)

	notifier := newFakeNotifier()
	w := newTestWorker(groups, &fakeUserStore{err: errors.New("db down")}, notifier)

	ctx := t.Context()
	w.Tick(ctx)
	w.Tick(ctx)

	assert.Empty(t, notifier.dms)
	assert.Equal(t, uint64(51), w.lastCount, "baseline still advances after a failed fan-out")
}
