package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryOncePolicy(t *testing.T) {
	policy := RetryOncePolicy()
	policy.InitialDelay = 0
	policy.MaxDelay = 0

	var attempts int
	err := Do(context.Background(), policy, func() error {
		attempts++
		if attempts == 1 {
			return Temporary(CodeUpstreamStatus, "transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryStopsOnPermanent(t *testing.T) {
	policy := RetryOncePolicy()
	policy.InitialDelay = 0

	var attempts int
	err := Do(context.Background(), policy, func() error {
		attempts++
		return Permanent(CodeUpstreamStatus, "rejected")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "permanent errors are never retried")
}

func TestRetrySurfacesLastErrorVerbatim(t *testing.T) {
	policy := RetryOncePolicy()
	policy.InitialDelay = 0
	policy.MaxDelay = 0

	want := Temporary(CodeUpstreamStatus, "still transient")
	err := Do(context.Background(), policy, func() error { return want })
	assert.Same(t, want, err, "the upstream error passes through unwrapped")
}

func TestDoWithResult(t *testing.T) {
	policy := RetryOncePolicy()
	policy.InitialDelay = 0
	policy.MaxDelay = 0

	var attempts int
	got, err := DoWithResult(context.Background(), policy, func() (string, error) {
		attempts++
		if attempts == 1 {
			return "", Temporary(CodeUpstreamStatus, "transient")
		}
		return "answer", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	assert.Equal(t, 2, attempts)
}

func TestNoRetry(t *testing.T) {
	var attempts int
	err := Do(context.Background(), NoRetry(), func() error {
		attempts++
		return Temporary(CodeUpstreamStatus, "transient")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestFallbackWithResult(t *testing.T) {
	got, err := FallbackWithResult(
		func() (string, error) { return "", Permanent(CodeUpstreamStatus, "primary down") },
		func(err error) (string, error) { return "fallback", nil },
	)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestWrapRawTransportErrorRetriesOnce(t *testing.T) {
	policy := RetryOncePolicy()
	policy.InitialDelay = 0
	policy.MaxDelay = 0

	// A raw transport error carries no retry semantics of its own; a
	// temporary wrap must make it retryable.
	dial := stderrors.New("dial tcp 127.0.0.1:443: connect: connection refused")
	wrapped := Wrap(dial, CodeUpstreamUnavailable, "provider unreachable", CategoryTemporary)
	require.True(t, IsRetryable(wrapped))

	var attempts int
	err := Do(context.Background(), policy, func() error {
		attempts++
		return Wrap(dial, CodeUpstreamUnavailable, "provider unreachable", CategoryTemporary)
	})
	require.Error(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWrapKeepsRetrySemantics(t *testing.T) {
	inner := Temporary(CodeUpstreamStatus, "transient")
	wrapped := Wrap(inner, CodeUpstreamUnavailable, "provider failed", CategoryTemporary)

	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, CategoryTemporary, GetCategory(wrapped))
	assert.Contains(t, wrapped.Error(), "provider failed")
}

func TestCategoryHelpers(t *testing.T) {
	assert.True(t, IsUser(User(CodeToolInvalidParams, "missing arg")))
	assert.False(t, IsUser(Config(CodeConfigMissingKey, "no key")))
	assert.Equal(t, CategoryConfig, GetCategory(Config(CodeConfigMissingKey, "no key")))
	assert.False(t, IsRetryable(nil))
}
