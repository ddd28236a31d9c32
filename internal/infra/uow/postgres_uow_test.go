//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"kilo-share/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRetryPolicyRetryable(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}
	deadlock := errs.Wrap(&pgconn.PgError{Code: "40P01"}, "commit")

	assert.True(t, p.retryable(deadlock, 0))
	assert.True(t, p.retryable(&pgconn.PgError{Code: "40001"}, 2))
	assert.False(t, p.retryable(deadlock, 3))
	assert.False(t, p.retryable(&pgconn.PgError{Code: "23505"}, 0))
	assert.False(t, p.retryable(errors.New("boom"), 0))
}

func TestRetryPolicyDelay(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond}
	for attempt := range 3 {
		want := p.BaseDelay << attempt
		for range 20 {
			got := p.Delay(attempt)
			assert.GreaterOrEqual(t, got, want)
			assert.Less(t, got, want+want/5)
		}
	}
}
