package requestlog

import (
	"net/http"
	"time"

	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// Middleware logs every request with method, path and duration.
type Middleware struct {
	logger *zap.Logger
}

// New creates the request logging middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{logger: logger.Named("http")}
}

// AsRESTMiddleware adapts the middleware for bunrouter.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		start := time.Now()
		err := next(w, req)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			m.logger.Error("Request failed", append(fields, zap.Error(err))...)
			return err
		}

		m.logger.Debug("Request handled", fields...)

		return nil
	}
}
