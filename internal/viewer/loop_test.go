package viewer_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/postviz/internal/viewer"
)

var _ = Describe("Loop", func() {
	It("ticks until stopped", func() {
		var n atomic.Int32
		l := viewer.StartLoop(context.Background(), time.Millisecond, func(time.Time) { n.Add(1) })
		Eventually(n.Load).Should(BeNumerically(">=", 3))
		l.Stop()
		stopped := n.Load()
		Consistently(n.Load).WithTimeout(20 * time.Millisecond).Should(Equal(stopped))
		Expect(l.Done()).To(BeClosed())
	})

	It("stops when its context ends", func() {
		ctx, cancel := context.WithCancel(context.Background())
		l := viewer.StartLoop(ctx, time.Millisecond, func(time.Time) {})
		cancel()
		Eventually(l.Done()).Should(BeClosed())
		l.Stop()
	})
})
