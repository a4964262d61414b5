package transport_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/lagrange/internal/transport"
)

func startEndpoint(t *testing.T, name string) *transport.Endpoint {
	t.Helper()
	ep := transport.NewEndpoint(name, "127.0.0.1")
	require.NoError(t, ep.Start(0))
	t.Cleanup(ep.Close)
	return ep
}

func TestSendRecvRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := startEndpoint(t, "A")
	b := startEndpoint(t, "B")

	n := a.Send(ctx, b.Host, b.Port(), big.NewInt(42))
	assert.Greater(t, n, 0)

	got := b.Recv(ctx, 1, 2*time.Second)
	require.Len(t, got, 1)
	assert.Equal(t, int64(42), got[0].Int64())
}

func TestRecvShortReadOnTimeout(t *testing.T) {
	ctx := context.Background()
	b := startEndpoint(t, "B")

	start := time.Now()
	got := b.Recv(ctx, 3, 100*time.Millisecond)
	assert.Less(t, time.Since(start), time.Second)
	assert.Len(t, got, 0)
}

func TestRecvCombinesValuesFromMultipleSendersCommutatively(t *testing.T) {
	ctx := context.Background()
	recv := startEndpoint(t, "recv")
	s1 := startEndpoint(t, "s1")
	s2 := startEndpoint(t, "s2")

	s1.Send(ctx, recv.Host, recv.Port(), big.NewInt(7))
	s2.Send(ctx, recv.Host, recv.Port(), big.NewInt(11))

	got := recv.Recv(ctx, 2, 2*time.Second)
	require.Len(t, got, 2)
	product := new(big.Int).Mul(got[0], got[1])
	assert.Equal(t, int64(77), product.Int64())
}

func TestCloseIsIdempotent(t *testing.T) {
	ep := transport.NewEndpoint("idem", "127.0.0.1")
	require.NoError(t, ep.Start(0))
	assert.NotPanics(t, func() {
		ep.Close()
		ep.Close()
	})
}
