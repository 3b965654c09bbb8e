package app_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hopfviz/internal/app"
	"github.com/san-kum/hopfviz/internal/command"
	"github.com/san-kum/hopfviz/internal/config"
	"github.com/san-kum/hopfviz/internal/hopf"
)

var _ = Describe("Controller", func() {
	var (
		cfg  *config.Config
		ctrl *app.Controller
		now  time.Time
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	})

	JustBeforeEach(func() {
		var err error
		ctrl, err = app.NewController(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	answer := func(key rune, answers ...string) {
		pending, err := ctrl.HandleKey(key, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).NotTo(BeNil())
		for _, a := range answers {
			Expect(ctrl.Answer(a, now)).To(Succeed())
		}
		Expect(ctrl.Pending()).To(BeNil())
	}

	Describe("initial state", func() {
		It("starts with the reference sphere and axes in the minimap", func() {
			s := ctrl.State
			Expect(s.Main.Len()).To(BeZero())
			Expect(s.Minimap.Contains(s.Sphere)).To(BeTrue())
			Expect(s.Minimap.Contains(s.Axes)).To(BeTrue())
			Expect(s.Sphere.Radius).To(Equal(50.0))
			Expect(s.Axes.Length).To(Equal(25.0))
			Expect(s.MainCamera.Position.Z).To(Equal(10.0))
			Expect(s.MinimapCamera.Position.Z).To(Equal(100.0))
			Expect(s.Focus).To(Equal(app.FocusMain))
			Expect(s.Gate.Locked()).To(BeTrue())
			Expect(s.ControlsEnabled).To(BeTrue())
		})
	})

	Describe("picking", func() {
		var cx, cy float64

		JustBeforeEach(func() {
			cx, cy = ctrl.MinimapPoint(0.5, 0.5)
		})

		It("adds the fiber over the front of the sphere", func() {
			ctrl.PointerDown(cx, cy)
			Expect(ctrl.PointerUp(cx, cy)).To(BeTrue())

			entries := ctrl.State.Fibers.Entries()
			Expect(entries).To(HaveLen(1))
			base := entries[0].Fiber.Base
			Expect(hopf.IsEqualEps(base, hopf.Point3{Z: 1}, 1e-9)).To(BeTrue())

			first := entries[0].Fiber.Points[0]
			Expect(first.Y).To(BeNumerically("~", 1+math.Sqrt2, 1e-6))
		})

		It("ignores releases off the sphere", func() {
			x, y := ctrl.MinimapPoint(0, 0)
			ctrl.PointerDown(x, y)
			Expect(ctrl.PointerUp(x, y)).To(BeFalse())
			Expect(ctrl.State.Fibers.Len()).To(BeZero())
		})

		It("previews under the pointer and hides off the sphere", func() {
			ctrl.PointerMove(cx, cy)
			_, visible := ctrl.State.Fibers.Preview()
			Expect(visible).To(BeTrue())
			Expect(ctrl.State.Fibers.Len()).To(BeZero())

			ctrl.PointerMove(ctrl.State.Width/2, 10)
			_, visible = ctrl.State.Fibers.Preview()
			Expect(visible).To(BeFalse())
		})

		It("picks the same point on repeated moves over one pixel", func() {
			x, y := ctrl.MinimapPoint(0.6, 0.45)
			ctrl.PointerMove(x, y)
			first, visible := ctrl.State.Fibers.Preview()
			Expect(visible).To(BeTrue())

			for i := 0; i < 5; i++ {
				ctrl.PointerMove(x, y)
				pv, _ := ctrl.State.Fibers.Preview()
				Expect(pv.Fiber.Base).To(Equal(first.Fiber.Base))
			}

			ctrl.PointerDown(x, y)
			Expect(ctrl.PointerUp(x, y)).To(BeTrue())
			Expect(ctrl.State.Fibers.Entries()[0].Fiber.Base).To(Equal(first.Fiber.Base))
		})

		Context("when the orbit controls drive the minimap", func() {
			JustBeforeEach(func() {
				_, err := ctrl.HandleKey('g', now)
				Expect(err).NotTo(HaveOccurred())
			})

			It("treats a drag as a camera gesture", func() {
				ctrl.PointerDown(cx-20, cy)
				Expect(ctrl.PointerUp(cx, cy)).To(BeFalse())
				Expect(ctrl.State.Fibers.Len()).To(BeZero())
			})

			It("still picks on a click in place", func() {
				ctrl.PointerDown(cx, cy)
				Expect(ctrl.PointerUp(cx, cy)).To(BeTrue())
			})
		})
	})

	Describe("keys", func() {
		It("toggles orbit focus and the minimap lock", func() {
			_, err := ctrl.HandleKey('g', now)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.State.Focus).To(Equal(app.FocusMinimap))
			Expect(ctrl.State.Gate.Locked()).To(BeFalse())
			Expect(ctrl.State.FocusedCamera()).To(BeIdenticalTo(ctrl.State.MinimapCamera))

			_, err = ctrl.HandleKey('G', now)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.State.Focus).To(Equal(app.FocusMain))
			Expect(ctrl.State.Gate.Locked()).To(BeTrue())
		})

		It("toggles the orbit controls", func() {
			before := ctrl.State.MainCamera.Position
			_, err := ctrl.HandleKey('h', now)
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.State.ControlsEnabled).To(BeFalse())

			ctrl.Orbit(0.5, 0.5)
			ctrl.Zoom(0.5)
			Expect(ctrl.State.MainCamera.Position).To(Equal(before))
		})

		It("staggers a latitude family", func() {
			answer('a', "0")
			Expect(ctrl.PendingFibers()).To(Equal(50))

			added, err := ctrl.Tick(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(1))

			added, err = ctrl.Tick(now.Add(250 * time.Millisecond))
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(2))

			added, err = ctrl.Tick(now.Add(time.Minute))
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(47))
			Expect(ctrl.State.Fibers.Len()).To(Equal(50))
		})

		It("interleaves several latitude circles", func() {
			answer('a', "0, 0.5")
			Expect(ctrl.PendingFibers()).To(Equal(100))

			added, err := ctrl.Tick(now)
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(2))
			entries := ctrl.State.Fibers.Entries()
			Expect(entries[0].Fiber.Base.X).To(BeNumerically("~", 0, 1e-12))
			Expect(entries[1].Fiber.Base.X).To(BeNumerically("~", math.Sin(0.5), 1e-12))
		})

		It("stops a latitude arc at the cutoff", func() {
			answer('b', "0", "3.141592653589793")
			_, err := ctrl.Tick(now.Add(time.Minute))
			Expect(err).NotTo(HaveOccurred())

			entries := ctrl.State.Fibers.Entries()
			Expect(entries).To(HaveLen(50))
			last := entries[len(entries)-1].Fiber.Base
			Expect(hopf.IsEqualEps(last, hopf.Point3{Z: -1}, 1e-9)).To(BeTrue())
		})

		It("adds a rotated family at once", func() {
			answer('c', "0, 0, 0")
			Expect(ctrl.State.Fibers.Len()).To(Equal(100))
			Expect(ctrl.PendingFibers()).To(BeZero())
		})

		It("marks malformed input and still schedules the family", func() {
			answer('a', "x")
			Expect(ctrl.Status()).To(ContainSubstring("invalid input"))
			Expect(ctrl.PendingFibers()).To(Equal(50))

			_, err := ctrl.Tick(now)
			Expect(err).NotTo(HaveOccurred())
			base := ctrl.State.Fibers.Entries()[0].Fiber.Base
			Expect(math.IsNaN(base.X)).To(BeTrue())
		})

		It("clears every fiber", func() {
			answer('c', "0.1, 0.2, 0.3")
			_, err := ctrl.HandleKey('d', now)
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.State.Fibers.Len()).To(BeZero())
			Expect(ctrl.State.Main.Len()).To(BeZero())
			Expect(ctrl.State.Tracker.Live()).To(BeZero())
			Expect(ctrl.Status()).To(ContainSubstring("cleared 100"))
		})

		It("lets pending fibers land after a clear", func() {
			answer('a', "0")
			_, err := ctrl.HandleKey('d', now)
			Expect(err).NotTo(HaveOccurred())

			Expect(ctrl.PendingFibers()).To(Equal(50))
			added, err := ctrl.Tick(now.Add(time.Minute))
			Expect(err).NotTo(HaveOccurred())
			Expect(added).To(Equal(50))
		})

		Context("when clearing cancels pending fibers", func() {
			BeforeEach(func() {
				cfg.ClearCancelsPending = true
			})

			It("drops the scheduled remainder", func() {
				answer('a', "0")
				_, err := ctrl.Tick(now)
				Expect(err).NotTo(HaveOccurred())

				_, err = ctrl.HandleKey('d', now)
				Expect(err).NotTo(HaveOccurred())
				Expect(ctrl.PendingFibers()).To(BeZero())
				Expect(ctrl.Status()).To(ContainSubstring("cancelled 49"))

				added, err := ctrl.Tick(now.Add(time.Minute))
				Expect(err).NotTo(HaveOccurred())
				Expect(added).To(BeZero())
			})
		})

		It("rejects unknown keys", func() {
			_, err := ctrl.HandleKey('z', now)
			Expect(err).To(MatchError(command.ErrUnknownCommand))
		})

		It("requires a pending command before answering", func() {
			Expect(ctrl.Answer("0", now)).To(MatchError(app.ErrNoPendingInput))
		})

		It("drops a prompt cancelled by its holder", func() {
			pending, err := ctrl.HandleKey('a', now)
			Expect(err).NotTo(HaveOccurred())
			pending.Cancel()

			Expect(ctrl.Answer("0", now)).To(Succeed())
			Expect(ctrl.Pending()).To(BeNil())
			Expect(ctrl.PendingFibers()).To(BeZero())
		})

		It("can abandon a prompt", func() {
			_, err := ctrl.HandleKey('b', now)
			Expect(err).NotTo(HaveOccurred())
			ctrl.CancelInput()
			Expect(ctrl.Pending()).To(BeNil())
			Expect(ctrl.PendingFibers()).To(BeZero())
		})
	})

	Describe("Resize", func() {
		It("updates both camera aspect ratios", func() {
			ctrl.Resize(1000, 500)
			Expect(ctrl.State.MainCamera.Aspect).To(Equal(2.0))
			Expect(ctrl.State.MinimapCamera.Aspect).To(Equal(2.0))

			w, h := ctrl.State.MinimapSize()
			Expect(w).To(BeNumerically("~", 1000.0/6, 1e-9))
			Expect(h).To(BeNumerically("~", 500.0/6, 1e-9))
		})

		It("ignores degenerate sizes", func() {
			ctrl.Resize(0, 0)
			Expect(ctrl.State.Width).To(Equal(float64(config.DefaultWidth)))
		})
	})

	Describe("seeds", func() {
		BeforeEach(func() {
			cfg = config.GetPreset("points", "axes")
		})

		It("adds the preset fibers on start and after a reset", func() {
			Expect(ctrl.State.Fibers.Len()).To(Equal(5))

			answer('c', "0, 0, 0")
			Expect(ctrl.Reset()).To(Succeed())
			Expect(ctrl.State.Fibers.Len()).To(Equal(5))
			Expect(ctrl.State.Tracker.Live()).To(Equal(20))
		})
	})

	Describe("Close", func() {
		It("releases everything", func() {
			answer('c', "0, 0, 0")
			ctrl.PointerMove(ctrl.MinimapPoint(0.5, 0.5))
			Expect(ctrl.Close()).To(Succeed())
			Expect(ctrl.State.Tracker.Live()).To(BeZero())
		})
	})
})
