package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/Flasky06/unify-pos/internal/api/metrics"
	"github.com/Flasky06/unify-pos/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes stock movement events to a fixed set of workers using
// consistent hashing on the stock ID, guaranteeing per-entry ordering of the
// audit trail.
type Dispatcher struct {
	workers []chan ports.StockMovementInput
	service ports.MovementService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.MovementService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.StockMovementInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.StockMovementInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a movement to the worker responsible for its stock entry.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(m ports.StockMovementInput) {
	i := d.shardIndex(m.StockID)
	d.workers[i] <- m
	metrics.MovementsQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple movements preserving per-entry ordering.
func (d *Dispatcher) EnqueueBatch(ms []ports.StockMovementInput) {
	for _, m := range ms {
		d.Enqueue(m)
	}
}

// shardIndex maps a stock ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(stockID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(stockID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.StockMovementInput) {
	gauge := metrics.MovementsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			gauge.Set(float64(len(ch)))
			if err := d.service.Process(ctx, m); err != nil {
				d.log.Error().Err(err).
					Str("sale_id", m.SaleID).
					Str("stock_id", m.StockID).
					Int("worker_id", id).
					Msg("movement processing failed")
			}
		}
	}
}
