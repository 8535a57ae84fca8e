package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/tradecore/internal/domain/shared"
	"github.com/erp/tradecore/internal/infrastructure/logger"
	"github.com/erp/tradecore/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader lets clients make a write safe to resend
	IdempotencyKeyHeader = "Idempotency-Key"
	// MaxIdempotencyKeyLength caps the header value
	MaxIdempotencyKeyLength = 200

	idempotencyKeyPrefix = "http:"
)

// Idempotency claims the Idempotency-Key of a write request before the
// handler runs. A key that was already claimed yields 409 DUPLICATE_REQUEST
// without executing. Requests that end in an error status release the key
// so the client may retry. Requests without the header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration, base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		log := logger.For(c.Request.Context(), base)
		storeKey := idempotencyKeyPrefix + c.Request.Method + ":" + c.FullPath() + ":" + key

		isNew, err := store.MarkProcessed(c.Request.Context(), storeKey, ttl)
		if err != nil {
			log.Warn("Idempotency store unavailable, executing request", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			log.Info("Duplicate request rejected", zap.String("key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				shared.CodeDuplicateRequest, "Request with this Idempotency-Key has already been processed", GetRequestID(c)))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(context.WithoutCancel(c.Request.Context()), storeKey); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
