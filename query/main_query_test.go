package main

import (
	"context"
	"testing"

	"github.com/CPU-commits/Intranet_BCourseStats/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewCacheFallsBack(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "no url", url: ""},
		{name: "bad url", url: "not-a-redis-url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeCache := newCache(context.Background(), tt.url, zaptest.NewLogger(t))

			assert.Equal(t, cache.NopStore{}, store)
			require.NotNil(t, closeCache)
			assert.NoError(t, closeCache())
		})
	}
}
