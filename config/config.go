// Package config centralizes the tunable knobs of the interpolation engine:
// the field prime and generator, party-count bounds, timeouts, and the port
// range, all overridable per call rather than read from globals.
package config

import (
	"math/big"
	"time"
)

const (
	// MinParties and MaxParties bound how many points an interpolation run
	// may combine.
	MinParties = 3
	MaxParties = 9

	// DefaultRecvTimeout bounds how long a sub-protocol round waits for its
	// peers before treating the round as a short read.
	DefaultRecvTimeout = 5 * time.Second

	// DefaultMinPort and DefaultMaxPort bound the default port pool.
	DefaultMinPort = 6100
	DefaultMaxPort = 6200
)

// defaultPrimeDecimal is the NIST P-384 field prime
// (2^384 - 2^128 - 2^96 + 2^32 - 1): a well-documented, independently
// verifiable ~384-bit prime, used here purely as a fixed modulus for the
// interpolation field rather than for any elliptic-curve purpose.
const defaultPrimeDecimal = "39402006196394479212279040100143613805079739270465446667948293404245721771496870329047266088258938001861606973112319"

// DefaultPrime returns a fresh copy of the engine's default field prime.
func DefaultPrime() *big.Int {
	p, ok := new(big.Int).SetString(defaultPrimeDecimal, 10)
	if !ok {
		panic("config: default prime literal is malformed")
	}
	return p
}

// DefaultGenerator returns the engine's default group generator. It is
// carried only as a parameter placeholder: no component currently relies on
// its discrete-log properties.
func DefaultGenerator() *big.Int {
	return big.NewInt(2)
}

// DefaultXStar returns the engine's default interpolation point.
func DefaultXStar() *big.Int {
	return big.NewInt(10)
}

// Config bundles the tunables a single orchestrator run needs. Zero values
// are replaced by the corresponding Default* above where it makes sense;
// see orchestrator.Config for the orchestrator's own resolution of these.
type Config struct {
	Prime       *big.Int
	Generator   *big.Int
	XStar       *big.Int
	RecvTimeout time.Duration
	MinPort     int
	MaxPort     int
}

// Default returns a Config populated with every default value.
func Default() Config {
	return Config{
		Prime:       DefaultPrime(),
		Generator:   DefaultGenerator(),
		XStar:       DefaultXStar(),
		RecvTimeout: DefaultRecvTimeout,
		MinPort:     DefaultMinPort,
		MaxPort:     DefaultMaxPort,
	}
}
