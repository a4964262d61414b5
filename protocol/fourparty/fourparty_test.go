package fourparty_test

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
	"github.com/luxfi/lagrange/protocol/fourparty"
)

func TestComputeMatchesPlaintextBasis(t *testing.T) {
	ctx := context.Background()
	f := field.New(config.DefaultPrime())
	pool := transport.NewPortPool(7300, 7399)

	xi, xj, xk, xl := big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4)
	xStar := big.NewInt(9)

	res, err := fourparty.Compute(ctx, f, pool, fourparty.Params{
		OwnerID: 1, PeerJID: 2, PeerKID: 3, PeerLID: 4,
		XOwner: xi, XPeerJ: xj, XPeerK: xk, XPeerL: xl,
		XStar:       xStar,
		RecvTimeout: 2 * time.Second,
	})
	require.NoError(t, err)

	want, err := polynomial.Basis(f, []*big.Int{xi, xj, xk, xl}, xStar)
	require.NoError(t, err)

	assert.Equal(t, want[0].String(), res.Value.String())
}

func TestComputeReleasesPortsOnSuccess(t *testing.T) {
	ctx := context.Background()
	f := field.New(config.DefaultPrime())
	pool := transport.NewPortPool(7400, 7403)

	_, err := fourparty.Compute(ctx, f, pool, fourparty.Params{
		OwnerID: 1, PeerJID: 2, PeerKID: 3, PeerLID: 4,
		XOwner: big.NewInt(1), XPeerJ: big.NewInt(2), XPeerK: big.NewInt(3), XPeerL: big.NewInt(4),
		XStar:       big.NewInt(7),
		RecvTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, pool.Available())
}
