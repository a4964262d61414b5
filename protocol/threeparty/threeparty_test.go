package threeparty_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/lagrange/config"
	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/transport"
	"github.com/luxfi/lagrange/pkg/math/polynomial"
	"github.com/luxfi/lagrange/protocol/threeparty"
)

func TestComputeMatchesPlaintextBasis(t *testing.T) {
	ctx := context.Background()
	f := field.New(config.DefaultPrime())
	pool := transport.NewPortPool(7100, 7199)

	xi, xj, xk := big.NewInt(1), big.NewInt(2), big.NewInt(3)
	xStar := big.NewInt(9)

	res, err := threeparty.Compute(ctx, f, pool, threeparty.Params{
		OwnerID: 1, PeerJID: 2, PeerKID: 3,
		XOwner: xi, XPeerJ: xj, XPeerK: xk,
		XStar:       xStar,
		RecvTimeout: 2 * time.Second,
	})
	require.NoError(t, err)

	want, err := polynomial.Basis(f, []*big.Int{xi, xj, xk}, xStar)
	require.NoError(t, err)

	assert.Equal(t, want[0].String(), res.Value.String())
	assert.Equal(t, pool.Available(), 100)
}

func TestComputeReleasesPortsOnSuccess(t *testing.T) {
	ctx := context.Background()
	f := field.New(config.DefaultPrime())
	pool := transport.NewPortPool(7200, 7202)

	_, err := threeparty.Compute(ctx, f, pool, threeparty.Params{
		OwnerID: 1, PeerJID: 2, PeerKID: 3,
		XOwner: big.NewInt(1), XPeerJ: big.NewInt(2), XPeerK: big.NewInt(3),
		XStar:       big.NewInt(7),
		RecvTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, pool.Available())
}
