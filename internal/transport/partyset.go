package transport

import (
	"log"
	"sync"
)

// PartySet is a group of peer endpoints spun up together for one
// sub-protocol run, each bound to a port drawn from a shared pool.
type PartySet struct {
	pool  PortAllocator
	ports []int
	Eps   []*Endpoint
}

// StartParties acquires one port per name from pool, starts an endpoint for
// each, and returns the set. On any failure it releases whatever ports it
// already acquired and closes whatever endpoints it already started before
// returning the error.
func StartParties(pool PortAllocator, host string, names []string) (*PartySet, error) {
	ps := &PartySet{pool: pool}
	for _, name := range names {
		port, err := pool.Acquire()
		if err != nil {
			ps.Cleanup()
			return nil, err
		}
		ps.ports = append(ps.ports, port)

		ep := NewEndpoint(name, host)
		if err := ep.Start(port); err != nil {
			ps.Cleanup()
			return nil, err
		}
		ps.Eps = append(ps.Eps, ep)
	}
	return ps, nil
}

// Cleanup closes every started endpoint and releases every acquired port,
// in parallel-safe fashion, and is safe to call multiple times.
func (ps *PartySet) Cleanup() {
	var wg sync.WaitGroup
	for _, ep := range ps.Eps {
		wg.Add(1)
		go func(ep *Endpoint) {
			defer wg.Done()
			ep.Close()
		}(ep)
	}
	wg.Wait()

	for _, port := range ps.ports {
		ps.pool.Release(port)
	}
	ps.Eps = nil
	ps.ports = nil
	log.Printf("[info] (transport) party set torn down")
}
