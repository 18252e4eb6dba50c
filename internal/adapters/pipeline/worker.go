package pipeline

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/staffscope/staffscope/internal/domain/model"
	"github.com/staffscope/staffscope/pkg/logger"
	"github.com/staffscope/staffscope/pkg/metrics"
)

// Deriver fills the derived fields of one record in place.
type Deriver interface {
	Derive(ctx context.Context, rec *model.EmployeeRecord)
}

// DeriverFunc adapts a function to the Deriver interface.
type DeriverFunc func(ctx context.Context, rec *model.EmployeeRecord)

// Derive calls f.
func (f DeriverFunc) Derive(ctx context.Context, rec *model.EmployeeRecord) { f(ctx, rec) }

// Appender receives fully derived records. Implementations must be safe for
// concurrent use; the store builder guards itself with a mutex.
type Appender interface {
	Append(rec model.EmployeeRecord)
}

// Pool runs derivation workers over the queue until it drains. Unlike a
// standing worker pool, load workers exit when the queue closes and empties.
type Pool struct {
	workerCount int
	queue       Queue
	deriver     Deriver
	appender    Appender
	name        string

	wg     sync.WaitGroup
	logger logger.Logger
}

// NewPool creates a run-to-drain worker pool.
func NewPool(workerCount int, queue Queue, deriver Deriver, appender Appender, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * 2
	}

	p := &Pool{
		workerCount: workerCount,
		queue:       queue,
		deriver:     deriver,
		appender:    appender,
		name:        "derive-worker",
		logger:      logger.Get().Named("pipeline"),
	}

	for _, opt := range opts {
		opt(p)
	}

	metrics.UpdatePipelineWorkerCount(workerCount)

	return p
}

// Start launches the workers. Call Wait to block until the queue drains.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.run(ctx, p.name+"-"+strconv.Itoa(i))
	}
}

// Wait blocks until all workers have stopped. Workers stop when the queue is
// closed and drained, or when ctx is canceled.
func (p *Pool) Wait() {
	p.wg.Wait()
	metrics.UpdatePipelineWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, name string) {
	defer p.wg.Done()

	rows := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Warn(ctx, "worker stopped before queue drained", logger.String("worker", name))
			return
		case row, ok := <-rows:
			if !ok {
				return
			}
			p.process(ctx, row)
		}
	}
}

func (p *Pool) process(ctx context.Context, row Row) {
	start := time.Now()
	p.deriver.Derive(ctx, &row)
	metrics.RecordDerivationLatency(float64(time.Since(start).Microseconds()) / 1000)

	p.appender.Append(row)
	metrics.UpdatePipelineQueueSize(p.queue.Len(ctx))
}
