package schedule_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hopfviz/internal/schedule"
)

var _ = Describe("Queue", func() {
	var (
		q     *schedule.Queue[string]
		start time.Time
	)

	BeforeEach(func() {
		q = schedule.NewQueue[string]()
		start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	It("releases nothing before the first due time", func() {
		q.Schedule(start.Add(time.Second), "a")
		Expect(q.Due(start)).To(BeEmpty())
		Expect(q.Len()).To(Equal(1))
	})

	It("releases items in due order", func() {
		q.Schedule(start.Add(300*time.Millisecond), "c")
		q.Schedule(start.Add(100*time.Millisecond), "a")
		q.Schedule(start.Add(200*time.Millisecond), "b")

		Expect(q.Due(start.Add(time.Second))).To(Equal([]string{"a", "b", "c"}))
		Expect(q.Len()).To(BeZero())
	})

	It("keeps scheduling order for equal due times", func() {
		for _, v := range []string{"x", "y", "z"} {
			q.Schedule(start, v)
		}
		Expect(q.Due(start)).To(Equal([]string{"x", "y", "z"}))
	})

	It("staggers a batch", func() {
		q.ScheduleBatch(start, schedule.DefaultStagger, []string{"0", "1", "2", "3"})

		Expect(q.Due(start)).To(Equal([]string{"0"}))
		Expect(q.Due(start.Add(150 * time.Millisecond))).To(Equal([]string{"1"}))
		Expect(q.Due(start.Add(300 * time.Millisecond))).To(Equal([]string{"2", "3"}))

		next, ok := q.Next()
		Expect(ok).To(BeFalse())
		Expect(next.IsZero()).To(BeTrue())
	})

	It("reports the next due time", func() {
		q.Schedule(start.Add(2*time.Second), "late")
		q.Schedule(start.Add(time.Second), "early")

		next, ok := q.Next()
		Expect(ok).To(BeTrue())
		Expect(next).To(Equal(start.Add(time.Second)))
	})

	Context("when cancelled", func() {
		It("drops everything pending", func() {
			q.ScheduleBatch(start, schedule.DefaultStagger, []string{"a", "b", "c"})
			Expect(q.Due(start)).To(Equal([]string{"a"}))

			Expect(q.Cancel()).To(Equal(2))
			Expect(q.Len()).To(BeZero())
			Expect(q.Due(start.Add(time.Hour))).To(BeEmpty())
			Expect(q.Generation()).To(Equal(uint64(1)))
		})

		It("accepts new work afterwards", func() {
			q.Schedule(start, "stale")
			q.Cancel()
			q.Schedule(start, "fresh")
			Expect(q.Due(start)).To(Equal([]string{"fresh"}))
		})
	})
})

var _ = Describe("Stagger", func() {
	It("spaces items by the interval", func() {
		start := time.Unix(0, 0)
		Expect(schedule.Stagger(start, schedule.DefaultStagger, 0)).To(Equal(start))
		Expect(schedule.Stagger(start, schedule.DefaultStagger, 5)).To(Equal(start.Add(500 * time.Millisecond)))
	})
})
