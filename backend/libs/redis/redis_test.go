package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientEmptyAddr(t *testing.T) {
	_, err := NewRedisClient(Options{Addr: " "})
	require.ErrorIs(t, err, ErrEmptyAddr)
}

func TestNewRedisClientPings(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewRedisClient(Options{Addr: srv.Addr()})
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestNewRedisClientUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := NewRedisClient(Options{Addr: addr})
	require.Error(t, err)
}
