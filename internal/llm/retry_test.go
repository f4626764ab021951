package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func okReply() MockResponse { return MockResponse{Content: json.RawMessage(`{"ok":true}`)} }

func down() MockResponse {
	return MockResponse{Err: &UnavailableError{Err: errors.New("503")}}
}

func TestRetry(t *testing.T) {
	bad := MockResponse{Err: &InvalidResponseError{Content: json.RawMessage(`x`), Err: errors.New("not JSON")}}

	cases := []struct {
		name      string
		script    []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first try", []MockResponse{okReply()}, 1, false},
		{"outage then reply", []MockResponse{down(), okReply()}, 2, false},
		{"outage on every attempt", []MockResponse{down(), down(), down(), okReply()}, 3, true},
		{"rate limit with pause", []MockResponse{{Err: &RateLimitError{RetryAfter: time.Millisecond}}, okReply()}, 2, false},
		{"invalid reply retried once", []MockResponse{bad, okReply()}, 2, false},
		{"invalid reply twice", []MockResponse{bad, bad, okReply()}, 2, true},
		{"truncated not retried", []MockResponse{{Err: &TruncatedError{Limit: 10}}, okReply()}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := NewMockProvider(tc.script...)
			resp, err := WithRetry(mock, fastRetry(3)).Generate(context.Background(), Request{})
			assert.Equal(t, tc.wantCalls, mock.CallCount())
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
		})
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(okReply())
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	mock := NewMockProvider(down(), okReply())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetry(3)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Delay(t *testing.T) {
	r := &retrier{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	d := r.delay(0, errors.New("x"))
	assert.GreaterOrEqual(t, d, 80*time.Millisecond)
	assert.LessOrEqual(t, d, 120*time.Millisecond)

	d = r.delay(5, errors.New("x"))
	assert.LessOrEqual(t, d, 360*time.Millisecond)

	assert.Equal(t, 2*time.Second, r.delay(0, &RateLimitError{RetryAfter: 2 * time.Second}))
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(1)).ModelID())
}
