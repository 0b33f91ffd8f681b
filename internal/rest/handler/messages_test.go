package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

type fakeMessageFetcher struct {
	disabled   bool
	messages   []disgodiscord.Message
	err        error
	gotChannel string
	gotLimit   int
}

func (f *fakeMessageFetcher) Enabled() bool {
	return !f.disabled
}

func (f *fakeMessageFetcher) GetChannelMessages(_ context.Context, channelID string, limit int) ([]disgodiscord.Message, error) {
	f.gotChannel = channelID
	f.gotLimit = limit

	return f.messages, f.err
}

func serveMessages(t *testing.T, fetcher *fakeMessageFetcher, channelID string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewMessagesHandler(fetcher, zap.NewNop())

	router := bunrouter.New()
	router.GET("/api/discord/messages/:channelId", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/discord/messages/"+channelID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestMessagesList(t *testing.T) {
	t.Parallel()

	fetcher := &fakeMessageFetcher{messages: []disgodiscord.Message{{Content: "Season 3 is live!"}}}

	w := serveMessages(t, fetcher, "987654321")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "987654321", fetcher.gotChannel)
	assert.Equal(t, messageFeedLimit, fetcher.gotLimit)
	assert.Contains(t, w.Body.String(), "Season 3 is live!")
}

func TestMessagesListDisabled(t *testing.T) {
	t.Parallel()

	fetcher := &fakeMessageFetcher{disabled: true}

	w := serveMessages(t, fetcher, "987654321")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, fetcher.gotChannel)
}

func TestMessagesListFetchFailure(t *testing.T) {
	t.Parallel()

	fetcher := &fakeMessageFetcher{err: errors.New("unknown channel")}

	w := serveMessages(t, fetcher, "987654321")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
