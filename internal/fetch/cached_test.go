package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int, err error) Loader {
	return func(_ context.Context, url string) (*Result, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return &Result{URL: url, HTML: "<p>page</p>", StatusCode: 200}, nil
	}
}

func TestCachedFetcher_ServesFromCache(t *testing.T) {
	calls := 0
	f := NewCachedFetcher(countingLoader(&calls, nil), time.Hour)

	first, err := f.Fetch(context.Background(), "https://example.com/q")
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := f.Fetch(context.Background(), "https://example.com/q")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, 1, calls)
}

func TestCachedFetcher_Expires(t *testing.T) {
	calls := 0
	f := NewCachedFetcher(countingLoader(&calls, nil), time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	_, err := f.Fetch(context.Background(), "u")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	result, err := f.Fetch(context.Background(), "u")
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, calls)
}

func TestCachedFetcher_ErrorsNotCached(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	f := NewCachedFetcher(countingLoader(&calls, boom), 0)

	_, err := f.Fetch(context.Background(), "u")
	assert.ErrorIs(t, err, boom)
	_, err = f.Fetch(context.Background(), "u")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, f.Len())
}

func TestCachedFetcher_Invalidate(t *testing.T) {
	calls := 0
	f := NewCachedFetcher(countingLoader(&calls, nil), time.Hour)

	_, _ = f.Fetch(context.Background(), "u")
	f.Invalidate("u")
	assert.Equal(t, 0, f.Len())

	result, err := f.Fetch(context.Background(), "u")
	require.NoError(t, err)
	assert.False(t, result.FromCache)
	assert.Equal(t, 2, calls)
}
