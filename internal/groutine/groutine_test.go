package groutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_PassesName(t *testing.T) {
	names := make(chan string, 1)

	//nolint:staticcheck // nil parent context is part of the contract
	Go(nil, "worker-42", func(ctx context.Context) {
		names <- GetName(ctx)
	}, nil)

	select {
	case name := <-names:
		assert.Equal(t, "worker-42", name)
	case <-time.After(time.Second):
		t.Fatal("goroutine MUST run")
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	recovered := make(chan any, 1)

	Go(context.Background(), "panicky", func(ctx context.Context) {
		panic("boom")
	}, func(r any) {
		recovered <- r
	})

	select {
	case r := <-recovered:
		require.Equal(t, "boom", r)
	case <-time.After(time.Second):
		t.Fatal("panic MUST be handed to onPanic")
	}
}

func TestGetName_Empty(t *testing.T) {
	assert.Equal(t, "", GetName(context.Background()))
	//nolint:staticcheck // nil context is tolerated
	assert.Equal(t, "", GetName(nil))
}
