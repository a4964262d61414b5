// Package round provides the synchronization primitive every committee
// sub-protocol round is built on: arm every receiver before any sender in
// the round fires, then report which receivers came up short.
package round

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/luxfi/lagrange/internal/lagrangeerr"
	"github.com/luxfi/lagrange/internal/transport"
)

// Send describes one message fired during a round.
type Send struct {
	From  *transport.Endpoint
	Host  string
	Port  int
	Value *big.Int
}

// Want describes how many values a receiver must end up with.
type Want struct {
	Endpoint *transport.Endpoint
	Name     string
	Count    int
}

// Trade arms a Recv(count) on every endpoint in wants, then fires every send
// concurrently, and returns each named receiver's values in arrival order.
// A receiver that comes up short yields *lagrangeerr.ProtocolIncomplete
// naming committee and the endpoint that fell short.
func Trade(ctx context.Context, committee string, timeout time.Duration, sends []Send, wants []Want) (map[string][]*big.Int, error) {
	type outcome struct {
		name string
		vals []*big.Int
	}
	results := make(chan outcome, len(wants))

	var recvWG sync.WaitGroup
	for _, w := range wants {
		recvWG.Add(1)
		go func(w Want) {
			defer recvWG.Done()
			vals := w.Endpoint.Recv(ctx, w.Count, timeout)
			results <- outcome{name: w.Name, vals: vals}
		}(w)
	}

	var sendWG sync.WaitGroup
	for _, s := range sends {
		sendWG.Add(1)
		go func(s Send) {
			defer sendWG.Done()
			s.From.Send(ctx, s.Host, s.Port, s.Value)
		}(s)
	}
	sendWG.Wait()
	recvWG.Wait()
	close(results)

	out := make(map[string][]*big.Int, len(wants))
	for o := range results {
		out[o.name] = o.vals
	}
	for _, w := range wants {
		if len(out[w.Name]) < w.Count {
			return nil, &lagrangeerr.ProtocolIncomplete{
				Committee: committee,
				Endpoint:  w.Name,
				Want:      w.Count,
				Got:       len(out[w.Name]),
			}
		}
	}
	return out, nil
}

// Product returns the field product of vals, folded left to right.
func Product(mul func(a, b *big.Int) *big.Int, vals []*big.Int) *big.Int {
	acc := big.NewInt(1)
	for _, v := range vals {
		acc = mul(acc, v)
	}
	return acc
}

// Sum returns the field sum of vals, folded left to right.
func Sum(add func(a, b *big.Int) *big.Int, vals []*big.Int) *big.Int {
	acc := big.NewInt(0)
	for _, v := range vals {
		acc = add(acc, v)
	}
	return acc
}
