// Package orchestrator drives one end-to-end secure interpolation: it plans
// committees, runs every committee's sub-protocol concurrently, combines
// the results into y*, and falls back to plaintext interpolation if any
// committee failed.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/luxfi/lagrange/config"
	"github.com/luxfi/lagrange/internal/committee"
	"github.com/luxfi/lagrange/internal/correlate"
	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/lagrangeerr"
	"github.com/luxfi/lagrange/internal/transport"
	"github.com/luxfi/lagrange/pkg/math/polynomial"
	"github.com/luxfi/lagrange/protocol/fourparty"
	"github.com/luxfi/lagrange/protocol/threeparty"
)

// Point is one party's private (x,y) sample.
type Point struct {
	X, Y *big.Int
}

// Config overrides the defaults an interpolation run uses.
type Config struct {
	Prime *big.Int
	// XStar is not read by Run, which takes x* as its own argument.
	XStar       *big.Int
	Pool        transport.PortAllocator
	RecvTimeout time.Duration
}

// CommitteeFailure records why one committee's sub-protocol did not
// complete.
type CommitteeFailure struct {
	Committee string
	Err       error
}

// Outcome reports how the run produced its result.
type Outcome struct {
	Fallback  bool
	Failures  []CommitteeFailure
	Telemetry Telemetry
}

// Run validates points and x*, plans committees, executes them concurrently,
// and returns y* = f(x*) mod p. If one or more committees fail, it falls
// back to plaintext interpolation over the same points and reports the
// fallback in Outcome; it never returns an undefined value.
func Run(ctx context.Context, points []Point, xStar *big.Int, cfg Config) (*big.Int, Outcome, error) {
	start := time.Now()
	n := len(points)
	if n < config.MinParties || n > config.MaxParties {
		return nil, Outcome{}, &lagrangeerr.ArgumentError{
			Msg: fmt.Sprintf("orchestrator: party count %d outside valid range [%d,%d]", n, config.MinParties, config.MaxParties),
		}
	}

	prime := cfg.Prime
	if prime == nil {
		prime = config.DefaultPrime()
	}
	f := field.New(prime)

	if err := checkDistinctX(points, f); err != nil {
		return nil, Outcome{}, err
	}

	pool := cfg.Pool
	if pool == nil {
		pool = transport.DefaultPool()
	}
	timeout := cfg.RecvTimeout
	if timeout <= 0 {
		timeout = config.DefaultRecvTimeout
	}

	plan := committee.Plan(n)
	session := correlate.Session(n, xStar)
	log.Printf("[info] (orchestrator) %s: planned %d committees for %d parties", session, len(plan), n)

	acc := make([]*big.Int, n+1) // 1-indexed
	for i := 1; i <= n; i++ {
		acc[i] = big.NewInt(1)
	}
	var accMu sync.Mutex
	var failMu sync.Mutex
	var failures []CommitteeFailure
	var telMu sync.Mutex
	tel := Telemetry{}

	// A plain errgroup.Group, never WithContext: one committee's failure
	// must never cancel its siblings, so no context is threaded through it.
	var g errgroup.Group
	for _, c := range plan {
		c := c
		g.Go(func() error {
			value, label, bytesSent, bytesRecv, sendRounds, recvRounds, runtime, err := runCommittee(ctx, f, pool, timeout, xStar, points, c)
			if err != nil {
				log.Printf("[warn] (orchestrator) %s: committee %s failed: %v", session, label, err)
				failMu.Lock()
				failures = append(failures, CommitteeFailure{Committee: label, Err: err})
				failMu.Unlock()
				return nil
			}
			log.Printf("[info] (orchestrator) %s: committee %s done in %s", session, label, runtime)
			accMu.Lock()
			acc[c.Owner] = f.Mul(acc[c.Owner], value)
			accMu.Unlock()

			telMu.Lock()
			tel.absorb(bytesSent, bytesRecv, sendRounds, recvRounds, runtime)
			telMu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // every goroutine reports its own failure via `failures`; Wait's error is unused by design
	tel.TotalRunTime = time.Since(start)

	outcome := Outcome{Failures: failures, Telemetry: tel}

	if len(failures) > 0 {
		log.Printf("[warn] (orchestrator) %s: %d committee(s) failed, falling back to plaintext interpolation", session, len(failures))
		outcome.Fallback = true
		polyPoints := make([]polynomial.Point, n)
		for i, p := range points {
			polyPoints[i] = polynomial.Point{X: p.X, Y: p.Y}
		}
		yStar, err := polynomial.Interpolate(f, polyPoints, xStar)
		if err != nil {
			return nil, outcome, err
		}
		return yStar, outcome, nil
	}

	yStar := big.NewInt(0)
	for i := 1; i <= n; i++ {
		contribution := f.Mul(acc[i], points[i-1].Y)
		yStar = f.Add(yStar, contribution)
	}
	return yStar, outcome, nil
}

func checkDistinctX(points []Point, f *field.Field) error {
	seen := make(map[string]bool, len(points))
	for _, p := range points {
		key := f.Reduce(p.X).String()
		if seen[key] {
			return &lagrangeerr.DomainError{Value: p.X, Modulus: f.Prime()}
		}
		seen[key] = true
	}
	return nil
}

func runCommittee(ctx context.Context, f *field.Field, pool transport.PortAllocator, timeout time.Duration, xStar *big.Int, points []Point, c committee.Committee) (value *big.Int, label string, bytesSent, bytesRecv int64, sendRounds, recvRounds int, runtime time.Duration, err error) {
	switch c.Size() {
	case 3:
		owner, j, k := c.Members[0], c.Members[1], c.Members[2]
		label = fmt.Sprintf("3p(owner=%d,j=%d,k=%d)", owner, j, k)
		res, rerr := threeparty.Compute(ctx, f, pool, threeparty.Params{
			OwnerID: owner, PeerJID: j, PeerKID: k,
			XOwner: points[owner-1].X, XPeerJ: points[j-1].X, XPeerK: points[k-1].X,
			XStar:       xStar,
			RecvTimeout: timeout,
		})
		if rerr != nil {
			return nil, label, 0, 0, 0, 0, 0, rerr
		}
		return res.Value, label, res.Telemetry.BytesSent, res.Telemetry.BytesReceived, res.Telemetry.SendRounds, res.Telemetry.RecvRounds, res.Telemetry.Runtime, nil
	case 4:
		owner, j, k, l := c.Members[0], c.Members[1], c.Members[2], c.Members[3]
		label = fmt.Sprintf("4p(owner=%d,j=%d,k=%d,l=%d)", owner, j, k, l)
		res, rerr := fourparty.Compute(ctx, f, pool, fourparty.Params{
			OwnerID: owner, PeerJID: j, PeerKID: k, PeerLID: l,
			XOwner: points[owner-1].X, XPeerJ: points[j-1].X, XPeerK: points[k-1].X, XPeerL: points[l-1].X,
			XStar:       xStar,
			RecvTimeout: timeout,
		})
		if rerr != nil {
			return nil, label, 0, 0, 0, 0, 0, rerr
		}
		return res.Value, label, res.Telemetry.BytesSent, res.Telemetry.BytesReceived, res.Telemetry.SendRounds, res.Telemetry.RecvRounds, res.Telemetry.Runtime, nil
	default:
		return nil, "", 0, 0, 0, 0, 0, &lagrangeerr.ArgumentError{Msg: fmt.Sprintf("orchestrator: unsupported committee size %d", c.Size())}
	}
}
