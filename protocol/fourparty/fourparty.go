// Package fourparty computes one owner's Lagrange basis contribution
// jointly with three peers, used for the single size-4 committee each owner
// gets when the total party count is even.
package fourparty

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

// Params describes one four-party committee computation.
type Params struct {
	OwnerID, PeerJID, PeerKID, PeerLID int
	XOwner, XPeerJ, XPeerK, XPeerL     *big.Int
	XStar                              *big.Int
	RecvTimeout                        time.Duration
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

// Compute runs the four-party sub-protocol owned by Params.OwnerID,
// returning (x*-x_j)(x*-x_k)(x*-x_l) / (x_i-x_j)(x_i-x_k)(x_i-x_l) mod p as
// seen by the owner, or a *lagrangeerr.ProtocolIncomplete if any round falls
// short before its deadline.
func Compute(ctx context.Context, f *field.Field, pool transport.PortAllocator, p Params) (*Result, error) {
	start := time.Now()
	timeout := p.RecvTimeout
	if timeout <= 0 {
		timeout = DefaultRecvTimeout
	}
	committee := fmt.Sprintf("4p(owner=%d,j=%d,k=%d,l=%d)", p.OwnerID, p.PeerJID, p.PeerKID, p.PeerLID)
	log.Printf("[info] (fourparty) %s: starting", committee)

	names := []string{
		partyName(p.OwnerID), partyName(p.PeerJID), partyName(p.PeerKID), partyName(p.PeerLID),
	}
	parties, err := transport.StartParties(pool, "127.0.0.1", names)
	if err != nil {
		log.Printf("[error] (fourparty) %s: failed to start parties: %v", committee, err)
		return nil, err
	}
	defer parties.Cleanup()
	pi, pj, pk, pl := parties.Eps[0], parties.Eps[1], parties.Eps[2], parties.Eps[3]

	// --- Round 1: pairwise masked products, every party sends to the other three ---
	rows := make([][]*big.Int, 4)
	for i := range rows {
		rows[i], err = sharing.OneShare(f, 4)
		if err != nil {
			return nil, err
		}
	}
	r1row, r2row, r3row, r4row := rows[0], rows[1], rows[2], rows[3]
	sumShare, err := sharing.ZeroShare(f, 4)
	if err != nil {
		return nil, err
	}

	xs := []*big.Int{p.XOwner, p.XPeerJ, p.XPeerK, p.XPeerL}
	eps := []*transport.Endpoint{pi, pj, pk, pl}
	rowOf := [][]*big.Int{r1row, r2row, r3row, r4row}

	var round1Sends []round.Send
	for src := 0; src < 4; src++ {
		for dst := 0; dst < 4; dst++ {
			if src == dst {
				continue
			}
			masked := f.Mul(rowOf[dst][src], xs[src])
			round1Sends = append(round1Sends, round.Send{
				From: eps[src], Host: eps[dst].Host, Port: eps[dst].Port(), Value: masked,
			})
		}
	}
	round1, err := round.Trade(ctx, committee, timeout, round1Sends, []round.Want{
		{Endpoint: pi, Name: "i", Count: 3},
		{Endpoint: pj, Name: "j", Count: 3},
		{Endpoint: pk, Name: "k", Count: 3},
		{Endpoint: pl, Name: "l", Count: 3},
	})
	if err != nil {
		return nil, err
	}

	xjxkxl1 := f.Mul(r1row[0], round.Product(f.Mul, round1["i"]))
	xiSqr := f.Mul(p.XOwner, p.XOwner)
	xiCub := f.Mul(xiSqr, p.XOwner)

	// --- Round 2: additive-masked sum of the peers' x values, to the owner only ---
	maskedJ := f.Add(sumShare[1], p.XPeerJ)
	maskedK := f.Add(sumShare[2], p.XPeerK)
	maskedL := f.Add(sumShare[3], p.XPeerL)
	round2, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: maskedJ},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: maskedK},
			{From: pl, Host: pi.Host, Port: pi.Port(), Value: maskedL},
		},
		[]round.Want{{Endpoint: pi, Name: "i", Count: 3}},
	)
	if err != nil {
		return nil, err
	}
	peerSum := f.Add(sumShare[0], round.Sum(f.Add, round2["i"]))
	xjxkxl2 := f.Mul(xiSqr, peerSum)
	A := f.Sub(f.Sub(xiCub, xjxkxl1), xjxkxl2)

	// --- Round 3: zero-blinded triple-product cross terms ---
	zeroShare, err := sharing.ZeroShare(f, 4)
	if err != nil {
		return nil, err
	}
	a1, a2, a3, a4 := zeroShare[0], zeroShare[1], zeroShare[2], zeroShare[3]

	xixkxl := f.Mul(r2row[1], round.Product(f.Mul, round1["j"]))
	deltaJ := f.Add(a2, xixkxl)
	xixjxl := f.Mul(r3row[2], round.Product(f.Mul, round1["k"]))
	deltaK := f.Add(a3, xixjxl)
	xixjxk := f.Mul(r4row[3], round.Product(f.Mul, round1["l"]))
	deltaL := f.Add(a4, xixjxk)

	round3, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: deltaJ},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: deltaK},
			{From: pl, Host: pi.Host, Port: pi.Port(), Value: deltaL},
		},
		[]round.Want{{Endpoint: pi, Name: "i", Count: 3}},
	)
	if err != nil {
		return nil, err
	}
	denominator := f.Add(f.Add(a1, A), round.Sum(f.Add, round3["i"]))

	// --- Round 4: numerator, (x*-x_j)(x*-x_k)(x*-x_l) ---
	numShare, err := sharing.OneShare(f, 4)
	if err != nil {
		return nil, err
	}
	rr1, rr2, rr3, rr4 := numShare[0], numShare[1], numShare[2], numShare[3]
	maskedJStar := f.Mul(rr2, f.Sub(p.XStar, p.XPeerJ))
	maskedKStar := f.Mul(rr3, f.Sub(p.XStar, p.XPeerK))
	maskedLStar := f.Mul(rr4, f.Sub(p.XStar, p.XPeerL))

	round4, err := round.Trade(ctx, committee, timeout,
		[]round.Send{
			{From: pj, Host: pi.Host, Port: pi.Port(), Value: maskedJStar},
			{From: pk, Host: pi.Host, Port: pi.Port(), Value: maskedKStar},
			{From: pl, Host: pi.Host, Port: pi.Port(), Value: maskedLStar},
		},
		[]round.Want{{Endpoint: pi, Name: "i", Count: 3}},
	)
	if err != nil {
		return nil, err
	}
	numerator := f.Mul(rr1, round.Product(f.Mul, round4["i"]))

	denomInv, err := f.Inverse(denominator)
	if err != nil {
		return nil, err
	}
	value := f.Mul(numerator, denomInv)

	tel := sumTelemetry(start, pi, pj, pk, pl)
	log.Printf("[info] (fourparty) %s: done in %s", committee, tel.Runtime)
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
