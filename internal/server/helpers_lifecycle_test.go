package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeLifecycle(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, WaitForHealthy(ctx, "http://"+ln.Addr().String()))

	require.NoError(t, srv.Shutdown(ctx))
	select {
	case err := <-served:
		assert.NoError(t, err, "Serve returns nil after Shutdown")
	case <-ctx.Done():
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestWaitForHealthyTimesOut(t *testing.T) {
	t.Parallel()

	// nothing listens on the address once closed
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err = WaitForHealthy(ctx, "http://"+addr)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
