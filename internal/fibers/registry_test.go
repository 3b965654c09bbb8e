package fibers_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hopfviz/internal/fibers"
	"github.com/san-kum/hopfviz/internal/hopf"
	"github.com/san-kum/hopfviz/internal/scene"
)

var _ = Describe("Registry", func() {
	var (
		main, minimap *scene.Scene
		tracker       *scene.Tracker
		reg           *fibers.Registry
	)

	BeforeEach(func() {
		main = scene.New("main")
		minimap = scene.New("minimap")
		tracker = scene.NewTracker()
		reg = fibers.NewRegistry(main, minimap, tracker, fibers.DefaultOptions())
	})

	Describe("AddFiber", func() {
		It("samples, colors and displays the fiber", func() {
			p := hopf.Point3{Z: 1}
			e, err := reg.AddFiber(p)
			Expect(err).NotTo(HaveOccurred())

			Expect(e.Fiber.Points).To(HaveLen(hopf.DefaultSteps))
			Expect(e.Fiber.Points[0].X).To(BeNumerically("~", 0, 1e-12))
			Expect(e.Fiber.Points[0].Y).To(BeNumerically("~", 1+math.Sqrt2, 1e-9))
			Expect(e.Fiber.Points[0].Z).To(BeNumerically("~", 0, 1e-12))
			Expect(e.Fiber.Color).To(Equal(hopf.ColorOf(p)))

			Expect(main.Contains(e.Line)).To(BeTrue())
			Expect(minimap.Contains(e.Marker)).To(BeTrue())
		})

		It("places the indicator on the reference sphere", func() {
			e, err := reg.AddFiber(hopf.Point3{X: 0.1, Y: 0.2, Z: 0.3})
			Expect(err).NotTo(HaveOccurred())

			Expect(e.Indicator.Center.Length()).To(BeNumerically("~", fibers.DefaultSphereRadius, 1e-9))
			Expect(e.Indicator.Radius).To(Equal(fibers.DefaultIndicatorRadius))
			Expect(e.Indicator.Opacity).To(Equal(fibers.DefaultIndicatorOpacity))
			Expect(e.Marker.Center).To(Equal(e.Indicator.Center))
		})

		It("keeps insertion order", func() {
			points := []hopf.Point3{{X: 1}, {Y: 1}, {Z: 1}}
			for _, p := range points {
				_, err := reg.AddFiber(p)
				Expect(err).NotTo(HaveOccurred())
			}

			entries := reg.Entries()
			Expect(entries).To(HaveLen(3))
			for i, e := range entries {
				Expect(e.Fiber.Base).To(Equal(points[i]))
			}
		})

		It("preserves the degenerate fiber", func() {
			e, err := reg.AddFiber(hopf.SpecialPoint)
			Expect(err).NotTo(HaveOccurred())
			for _, q := range e.Fiber.Points {
				Expect(q).To(Equal(hopf.Point3{}))
			}
		})
	})

	Describe("ClearAll", func() {
		It("empties the collection and releases every resource once", func() {
			for i := 0; i < 5; i++ {
				_, err := reg.AddFiber(hopf.Point3{X: math.Cos(float64(i)), Y: math.Sin(float64(i))})
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(tracker.Live()).To(Equal(20))

			n, err := reg.ClearAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(5))
			Expect(reg.Len()).To(BeZero())
			Expect(main.Len()).To(BeZero())
			Expect(minimap.Len()).To(BeZero())
			Expect(tracker.Live()).To(BeZero())
			Expect(tracker.Released()).To(Equal(20))
		})

		It("is a no-op on an empty registry", func() {
			n, err := reg.ClearAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("leaves the preview alone", func() {
			Expect(reg.PreviewFiber(hopf.Point3{Y: 1})).To(Succeed())
			_, err := reg.AddFiber(hopf.Point3{X: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = reg.ClearAll()
			Expect(err).NotTo(HaveOccurred())

			_, visible := reg.Preview()
			Expect(visible).To(BeTrue())
			Expect(main.Len()).To(Equal(1))
		})
	})

	Describe("PreviewFiber", func() {
		It("reuses a single slot", func() {
			Expect(reg.PreviewFiber(hopf.Point3{X: 1})).To(Succeed())
			Expect(reg.PreviewFiber(hopf.Point3{Y: 1})).To(Succeed())

			Expect(reg.Len()).To(BeZero())
			Expect(main.Len()).To(Equal(1))
			Expect(minimap.Len()).To(Equal(1))
			Expect(tracker.Acquired()).To(Equal(4))

			pv, visible := reg.Preview()
			Expect(visible).To(BeTrue())
			Expect(pv.Fiber.Base).To(Equal(hopf.Point3{Y: 1}))
			Expect(pv.Line.Color).To(Equal(hopf.ColorOf(hopf.Point3{Y: 1})))
			Expect(pv.Marker.Center.Y).To(BeNumerically("~", 50, 1e-9))
		})

		It("can be hidden and shown again", func() {
			Expect(reg.PreviewFiber(hopf.Point3{Z: 1})).To(Succeed())
			reg.HidePreview()

			_, visible := reg.Preview()
			Expect(visible).To(BeFalse())
			Expect(main.Len()).To(BeZero())
			Expect(tracker.Live()).To(Equal(4))

			Expect(reg.PreviewFiber(hopf.Point3{Z: 1})).To(Succeed())
			_, visible = reg.Preview()
			Expect(visible).To(BeTrue())
		})

		It("is never a pick target", func() {
			_, err := reg.AddFiber(hopf.Point3{X: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(reg.PreviewFiber(hopf.Point3{Z: 1})).To(Succeed())
			pv, _ := reg.Preview()

			targets := reg.PickTargets()
			Expect(targets).To(HaveLen(1))
			Expect(targets).NotTo(ContainElement(pv.Marker))
		})

		It("tolerates hiding before any preview", func() {
			Expect(func() { reg.HidePreview() }).NotTo(Panic())
		})
	})

	Describe("Close", func() {
		It("releases everything", func() {
			Expect(reg.PreviewFiber(hopf.Point3{Z: 1})).To(Succeed())
			_, err := reg.AddFiber(hopf.Point3{X: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(reg.Close()).To(Succeed())
			Expect(tracker.Live()).To(BeZero())
			Expect(main.Len()).To(BeZero())
			Expect(minimap.Len()).To(BeZero())
		})
	})
})
