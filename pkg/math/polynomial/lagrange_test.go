package polynomial_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/lagrange/config"
	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/lagrangeerr"
	"github.com/luxfi/lagrange/pkg/math/polynomial"
)

func TestBasisSumsToOne(t *testing.T) {
	f := field.New(config.DefaultPrime())

	xsEven := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4)}
	xsOdd := xsEven[:3]

	for _, xs := range [][]*big.Int{xsEven, xsOdd} {
		basis, err := polynomial.Basis(f, xs, big.NewInt(99))
		require.NoError(t, err)
		sum := big.NewInt(0)
		for _, c := range basis {
			sum = f.Add(sum, c)
		}
		assert.Equal(t, int64(1), sum.Int64())
	}
}

func TestInterpolateReproducesQuadratic(t *testing.T) {
	f := field.New(config.DefaultPrime())
	// f(x) = x^2 + 2
	points := []polynomial.Point{
		{X: big.NewInt(1), Y: big.NewInt(3)},
		{X: big.NewInt(2), Y: big.NewInt(6)},
		{X: big.NewInt(3), Y: big.NewInt(11)},
	}
	got, err := polynomial.Interpolate(f, points, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, int64(27), got.Int64())
}

func TestInterpolateReproducesCubic(t *testing.T) {
	f := field.New(config.DefaultPrime())
	// f(x) = x^3
	points := []polynomial.Point{
		{X: big.NewInt(1), Y: big.NewInt(1)},
		{X: big.NewInt(2), Y: big.NewInt(8)},
		{X: big.NewInt(3), Y: big.NewInt(27)},
		{X: big.NewInt(4), Y: big.NewInt(64)},
	}
	got, err := polynomial.Interpolate(f, points, big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, int64(125), got.Int64())
}

func TestInterpolateDuplicateXIsDomainError(t *testing.T) {
	f := field.New(config.DefaultPrime())
	points := []polynomial.Point{
		{X: big.NewInt(1), Y: big.NewInt(5)},
		{X: big.NewInt(1), Y: big.NewInt(6)},
		{X: big.NewInt(2), Y: big.NewInt(7)},
	}
	_, err := polynomial.Interpolate(f, points, big.NewInt(3))
	require.Error(t, err)
	var domErr *lagrangeerr.DomainError
	assert.ErrorAs(t, err, &domErr)
}
