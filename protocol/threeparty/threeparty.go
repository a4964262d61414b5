// Package threeparty computes one owner's Lagrange basis contribution
// jointly with two peers, without revealing any party's x-coordinate to the
// others.
package threeparty

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/luxfi/lagrange/internal/field"
	"github.com/luxfi/lagrange/internal/round"
	"github.com/luxfi/lagrange/internal/sharing"
	"github.com/luxfi/lagrange/internal/transport"
)

// DefaultRecvTimeout bounds how long each round waits for its peers.
const DefaultRecvTimeout = 5 * time.Second

// Params describes one three-party committee computation.
type Params struct {
	OwnerID, PeerJID, PeerKID int
	XOwner, XPeerJ, XPeerK    *big.Int
	XStar                     *big.Int
	RecvTimeout               time.Duration
}

// Telemetry reports the communication volume and wall time of one run.
type Telemetry struct {
	BytesSent     int64
	BytesReceived int64
	SendRounds    int
	RecvRounds    int
	Runtime       time.Duration
}

// Result is the owner's basis contribution plus telemetry.
type Result struct {
	Value     *big.Int
	Telemetry Telemetry
}

// Compute runs the three-party sub-protocol owned by Params.OwnerID. It
// returns (x*-x_j)(x*-x_k) / (x_i-x_j)(x_i-x_k) mod p as seen by the owner,
// or a *lagrangeerr.ProtocolIncomplete if any round falls short before its
// deadline — a failure of this committee alone.
func Compute(ctx context.Context, f *field.Field, pool transport.PortAllocator, p Params) (*Result, error) {
	start := time.Now()
	timeout := p.RecvTimeout
	if timeout <= 0 {
		timeout = DefaultRecvTimeout
	}
	committee := fmt.Sprintf("3p(owner=%d,j=%d,k=%d)", p.OwnerID, p.PeerJID, p.PeerKID)
	log.Printf("[info] (threeparty) %s: starting", committee)

	names := []string{partyName(p.OwnerID), partyName(p.PeerJID), partyName(p.PeerKID)}
	parties, err := transport.StartParties(pool, "127.0.0.1", names)
	if err != nil {
		log.Printf("[error] (threeparty) %s: failed to start parties: %v", committee, err)
		return nil, err
	}
	defer parties.Cleanup()

	pi, pj, pk := parties.Eps[0], parties.Eps[1], parties.Eps[2]

	// --- Round A: denominator expansion, (x_i-x_j)(x_i-x_k) groundwork ---
	rowI, err := sharing.OneShare(f, 3)
	if err != nil {
		return nil, err
	}
	rowJ, err := sharing.OneShare(f, 3)
	if err != nil {
		return nil, err
	}
	rowK, err := sharing.OneShare(f, 3)
	if err != nil {
		return nil, err
	}
	r11, r12, r13 := rowI[0], rowI[1], rowI[2]
	r21, r22, r23 := rowJ[0], rowJ[1], rowJ[2]
	r31, r32, r33 := rowK[0], rowK[1], rowK[2]

	maskedIJ := f.Mul(r21, p.XOwner)
	maskedIK := f.Mul(r31, p.XOwner)
	maskedJI := f.Mul(r12, p.XPeerJ)
	maskedJK := f.Mul(r32, p.XPeerJ)
	maskedKI := f.Mul(r13, p.XPeerK)
	maskedKJ := f.Mul(r23, p.XPeerK)

	roundA, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pi, Host: pj.Host, Port: pj.Port(), Value: maskedIJ},
			{From: pi, Host: pk.Host, Port: pk.Port(), Value: maskedIK},
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: maskedJI},
			{From: pj, Host: pk.Host, Port: pk.Port(), Value: maskedJK},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: maskedKI},
			{From: pk, Host: pj.Host, Port: pj.Port(), Value: maskedKJ},
		},
		[]round.Want{
			{Endpoint: pi, Name: "i", Count: 2},
			{Endpoint: pj, Name: "j", Count: 2},
			{Endpoint: pk, Name: "k", Count: 2},
		},
	)
	if err != nil {
		return nil, err
	}

	xjxk := f.Mul(r11, round.Product(f.Mul, roundA["i"]))
	xiSqr := f.Mul(p.XOwner, p.XOwner)
	A := f.Add(xiSqr, xjxk)

	xixk := f.Mul(r22, round.Product(f.Mul, roundA["j"]))
	xixj := f.Mul(r33, round.Product(f.Mul, roundA["k"]))

	// --- Round B: zero-blinded cross terms, assembling the denominator ---
	zeroShare, err := sharing.ZeroShare(f, 3)
	if err != nil {
		return nil, err
	}
	a1, a2, a3 := zeroShare[0], zeroShare[1], zeroShare[2]
	deltaJ := f.Sub(a2, xixk)
	deltaK := f.Sub(a3, xixj)

	roundB, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: deltaJ},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: deltaK},
		},
		[]round.Want{{Endpoint: pi, Name: "i", Count: 2}},
	)
	if err != nil {
		return nil, err
	}
	denominator := f.Add(f.Add(a1, A), round.Sum(f.Add, roundB["i"]))

	// --- Round C: numerator, (x*-x_j)(x*-x_k) ---
	numShare, err := sharing.OneShare(f, 3)
	if err != nil {
		return nil, err
	}
	r1, r2, r3 := numShare[0], numShare[1], numShare[2]
	maskedJ := f.Mul(r2, f.Sub(p.XStar, p.XPeerJ))
	maskedK := f.Mul(r3, f.Sub(p.XStar, p.XPeerK))

	roundC, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: maskedJ},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: maskedK},
		},
		[]round.Want{{Endpoint: pi, Name: "i", Count: 2}},
	)
	if err != nil {
		return nil, err
	}
	numerator := f.Mul(r1, round.Product(f.Mul, roundC["i"]))

	denomInv, err := f.Inverse(denominator)
	if err != nil {
		return nil, err
	}
	value := f.Mul(numerator, denomInv)

	tel := sumTelemetry(start, pi, pj, pk)
	log.Printf("[info] (threeparty) %s: done in %s", committee, tel.Runtime)
	return &Result{Value: value, Telemetry: tel}, nil
}

func partyName(id int) string {
	return fmt.Sprintf("P_%d", id)
}

func sumTelemetry(start time.Time, eps ...*transport.Endpoint) Telemetry {
	var t Telemetry
	for _, ep := range eps {
		c := ep.CountersSnapshot()
		t.BytesSent += c.BytesSent
		t.BytesReceived += c.BytesReceived
		t.SendRounds += c.SendRounds
		t.RecvRounds += c.RecvRounds
	}
	t.Runtime = time.Since(start)
	return t
}
