package pipeline_test

import (
	"context"
	"sync"
	"testing"

	"github.com/staffscope/staffscope/internal/adapters/pipeline"
	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/logger"

	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

type collectingAppender struct {
	mu   sync.Mutex
	rows []model.EmployeeRecord
}

func (c *collectingAppender) Append(rec model.EmployeeRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, rec)
}

func (c *collectingAppender) snapshot() []model.EmployeeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.EmployeeRecord, len(c.rows))
	copy(out, c.rows)
	return out
}

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a bounded row queue", t, func() {
		ctx := context.Background()

		Convey("Rows can be enqueued until capacity", func() {
			q := pipeline.NewInMemoryQueue(pipeline.WithCapacity(2))
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "2"}), ShouldBeTrue)
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "3"}), ShouldBeFalse)
			So(q.Len(ctx), ShouldEqual, 2)
		})

		Convey("A closed queue rejects rows and closes the dequeue channel", func() {
			q := pipeline.NewInMemoryQueue(pipeline.WithCapacity(4))
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "1"}), ShouldBeTrue)
			So(q.Close(), ShouldBeNil)
			So(q.IsClosed(), ShouldBeTrue)
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "2"}), ShouldBeFalse)

			rows := q.Dequeue(ctx)
			row, ok := <-rows
			So(ok, ShouldBeTrue)
			So(row.EmployeeID, ShouldEqual, "1")
			_, ok = <-rows
			So(ok, ShouldBeFalse)

			// Close is idempotent.
			So(q.Close(), ShouldBeNil)
		})
	})
}

func TestPoolDrains(t *testing.T) {
	Convey("Given a pool draining a closed queue", t, func() {
		ctx := context.Background()
		q := pipeline.NewInMemoryQueue(pipeline.WithCapacity(100))

		deriver := pipeline.DeriverFunc(func(_ context.Context, rec *model.EmployeeRecord) {
			rec.ProductivityScore = rec.PerformanceScore * 10
		})
		sink := &collectingAppender{}

		for i := 0; i < 50; i++ {
			So(q.Enqueue(ctx, pipeline.Row{EmployeeID: "e", PerformanceScore: 3}), ShouldBeTrue)
		}
		So(q.Close(), ShouldBeNil)

		pool := pipeline.NewPool(4, q, deriver, sink, pipeline.WithWorkerName("test-worker"))
		pool.Start(ctx)
		pool.Wait()

		Convey("Then every row was derived and appended", func() {
			rows := sink.snapshot()
			So(len(rows), ShouldEqual, 50)
			for _, r := range rows {
				So(r.ProductivityScore, ShouldEqual, 30)
			}
		})
	})
}
