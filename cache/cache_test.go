package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subject struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func TestNopStore(t *testing.T) {
	var store Store = NopStore{}

	require.NoError(t, store.Set(context.Background(), "k", "v", time.Minute))
	var got string
	assert.ErrorIs(t, store.Get(context.Background(), "k", &got), ErrMiss)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var got []subject
	assert.ErrorIs(t, store.Get(ctx, "subjects", &got), ErrMiss)

	want := []subject{{Name: "Accounting", Code: "ACC"}}
	require.NoError(t, store.Set(ctx, "subjects", want, time.Minute))
	require.NoError(t, store.Get(ctx, "subjects", &got))
	assert.Equal(t, want, got)

	now = now.Add(time.Minute)
	assert.ErrorIs(t, store.Get(ctx, "subjects", &got), ErrMiss)
}

func TestNewRedisStoreBadURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "not a url", "coursestats:")

	assert.Error(t, err)
}
