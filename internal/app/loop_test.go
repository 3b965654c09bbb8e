package app_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hopfviz/internal/app"
)

var _ = Describe("Loop", func() {
	It("runs until stopped from inside a frame", func() {
		loop := app.NewLoop(0)
		frames := 0
		err := loop.Run(context.Background(), func(time.Time) error {
			frames++
			if frames == 3 {
				loop.Stop()
			}
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(frames).To(Equal(3))
		Expect(loop.Stopped()).To(BeTrue())
	})

	It("returns the frame error", func() {
		boom := errors.New("boom")
		err := app.NewLoop(0).Run(context.Background(), func(time.Time) error { return boom })
		Expect(err).To(MatchError(boom))
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		loop := app.NewLoop(time.Millisecond)
		frames := 0
		err := loop.Run(ctx, func(time.Time) error {
			frames++
			if frames == 2 {
				cancel()
			}
			return nil
		})
		Expect(err).To(MatchError(context.Canceled))
		Expect(frames).To(Equal(2))
	})
})
