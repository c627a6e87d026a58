package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "taxportal/pkg/domain"
)

func TestAccessors(t *testing.T) {
	t.Run("zero values when unset", func(t *testing.T) {
		ctx := context.Background()
		assert.True(t, SessionID(ctx).IsNil())
		assert.Empty(t, RequestID(ctx))
		assert.Empty(t, ClientIP(ctx))
		assert.Empty(t, UserAgent(ctx))
		assert.WithinDuration(t, time.Now(), Now(ctx), time.Second)
	})

	t.Run("round trips injected values", func(t *testing.T) {
		sessionID := id.NewSessionID()
		fixed := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

		ctx := WithSessionID(context.Background(), sessionID)
		ctx = WithRequestID(ctx, "req-1")
		ctx = WithClientMetadata(ctx, "10.0.0.1", "curl/8.0")
		ctx = WithTime(ctx, fixed)

		assert.Equal(t, sessionID, SessionID(ctx))
		assert.Equal(t, "req-1", RequestID(ctx))
		assert.Equal(t, "10.0.0.1", ClientIP(ctx))
		assert.Equal(t, "curl/8.0", UserAgent(ctx))
		assert.Equal(t, fixed, Now(ctx))
	})
}
