package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	delays []time.Duration
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func statusIdentity(s int) int { return s }

func TestDo_RetriesServerErrorsThenSucceeds(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep

	statuses := []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK}
	calls := 0
	got, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		s := statuses[calls]
		calls++
		return s, nil
	}, statusIdentity)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, got)
	assert.Equal(t, 4, calls, "one initial attempt plus three retries")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, rec.delays)
}

func TestDo_ClientErrorIsNotRetried(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep

	calls := 0
	got, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return http.StatusNotFound, nil
	}, statusIdentity)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, got)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays)
}

func TestDo_ExhaustedReturnsLastResponse(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep

	calls := 0
	got, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		if calls == 4 {
			return http.StatusBadGateway, nil
		}
		return http.StatusInternalServerError, nil
	}, statusIdentity)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, got, "last failure is propagated unchanged")
	assert.Equal(t, 4, calls)
	assert.Len(t, rec.delays, 3)
}

func TestDo_TransportErrorsRetriedAndLastErrorPropagated(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep

	lastErr := errors.New("connection reset #4")
	calls := 0
	_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		if calls == 4 {
			return 0, lastErr
		}
		return 0, errors.New("connection refused")
	}, statusIdentity)

	assert.Same(t, lastErr, err)
	assert.Equal(t, 4, calls)
}

func TestDo_RecoversAfterTransportError(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep

	calls := 0
	got, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("dial tcp: i/o timeout")
		}
		return http.StatusOK, nil
	}, statusIdentity)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, got)
	assert.Equal(t, []time.Duration{time.Second}, rec.delays)
}

func TestDo_StopsWhenContextCancelled(t *testing.T) {
	p := DefaultPolicy()
	p.Sleep = func(ctx context.Context, d time.Duration) error { return context.Canceled }

	calls := 0
	got, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return http.StatusServiceUnavailable, nil
	}, statusIdentity)

	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, got)
	assert.Equal(t, 1, calls)
}

func TestPolicy_OnRetryReportsEachAttempt(t *testing.T) {
	rec := &recorder{}
	p := DefaultPolicy()
	p.Sleep = rec.sleep
	var seen []int
	p.OnRetry = func(retry int, delay time.Duration, status int, err error) {
		seen = append(seen, retry)
		assert.Equal(t, http.StatusInternalServerError, status)
	}

	_, _ = Do(context.Background(), p, func(ctx context.Context) (int, error) {
		return http.StatusInternalServerError, nil
	}, statusIdentity)

	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestPolicy_Delay(t *testing.T) {
	p := Policy{BaseDelay: 500 * time.Millisecond, Multiplier: 2}
	assert.Equal(t, 500*time.Millisecond, p.Delay(1))
	assert.Equal(t, time.Second, p.Delay(2))
	assert.Equal(t, 2*time.Second, p.Delay(3))
}
