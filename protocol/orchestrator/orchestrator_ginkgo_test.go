package orchestrator_test

import (
	"context"
	"math/big"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luxfi/lagrange/internal/transport"
	"github.com/luxfi/lagrange/protocol/orchestrator"
)

var _ = Describe("Run", func() {
	var pool *transport.PortPool

	BeforeEach(func() {
		pool = transport.NewPortPool(8300, 8399)
	})

	cfg := func(p *transport.PortPool) orchestrator.Config {
		return orchestrator.Config{Pool: p, RecvTimeout: 2 * time.Second}
	}

	Context("with a consistent set of points", func() {
		It("reports no fallback and accumulates telemetry across every committee", func() {
			points := []orchestrator.Point{pt(1, 3), pt(2, 6), pt(3, 11)}
			yStar, outcome, err := orchestrator.Run(context.Background(), points, big.NewInt(5), cfg(pool))

			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Fallback).To(BeFalse())
			Expect(outcome.Failures).To(BeEmpty())
			Expect(yStar.Int64()).To(Equal(int64(27)))
			Expect(outcome.Telemetry.TotalRunTime).To(BeNumerically(">", 0))
			Expect(outcome.Telemetry.SendRounds).To(BeNumerically(">", 0))
		})

		It("releases every acquired port back to the pool", func() {
			before := pool.Available()
			points := []orchestrator.Point{pt(1, 1), pt(2, 4), pt(3, 9), pt(4, 16)}
			_, _, err := orchestrator.Run(context.Background(), points, big.NewInt(9), cfg(pool))

			Expect(err).NotTo(HaveOccurred())
			Expect(pool.Available()).To(Equal(before))
		})
	})

	Context("with a degenerate point set", func() {
		It("rejects a repeated x-coordinate before touching the network", func() {
			before := pool.Available()
			points := []orchestrator.Point{pt(2, 1), pt(2, 9), pt(3, 4)}
			_, _, err := orchestrator.Run(context.Background(), points, big.NewInt(3), cfg(pool))

			Expect(err).To(HaveOccurred())
			Expect(pool.Available()).To(Equal(before))
		})
	})
})
