package client

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/jaxron/axonet/middleware/retry"
	"github.com/jaxron/axonet/middleware/singleflight"
	"github.com/jaxron/axonet/pkg/client"
	"github.com/jaxron/axonet/pkg/client/middleware"
	"github.com/jaxron/roapi.go/pkg/api"
	"github.com/swarmlabs/hivehub/internal/setup/config"
)

const (
	defaultRequestTimeout = 10 * time.Second

	retryMaxAttempts = 3
	retryBaseDelay   = 500 * time.Millisecond
	retryMaxDelay    = 5 * time.Second
)

// GetRoAPIClient constructs a Roblox API client with a middleware chain
// for reliability and request coalescing. All endpoints used are public,
// so no authentication cookies are needed.
func GetRoAPIClient(cfg *config.Roblox) *api.API {
	requestTimeout := defaultRequestTimeout
	if cfg.RequestTimeout > 0 {
		requestTimeout = time.Duration(cfg.RequestTimeout) * time.Millisecond
	}

	middlewares := []middleware.Middleware{
		retry.New(retryMaxAttempts, retryBaseDelay, retryMaxDelay),
		singleflight.New(),
	}

	return api.New(nil,
		client.WithMarshalFunc(sonic.Marshal),
		client.WithUnmarshalFunc(sonic.Unmarshal),
		client.WithTimeout(requestTimeout),
		client.WithMiddleware(middlewares...),
	)
}
