package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/asservice/shiftboard/internal/api/metrics"
	"github.com/asservice/shiftboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes follow-up requests to a fixed set of workers using
// consistent hashing on the work item id, so follow-ups for one item are
// drafted in the order they were requested.
type Dispatcher struct {
	workers   []chan ports.FollowUpRequest
	processor ports.FollowUpProcessor
	log       zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.FollowUpProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.FollowUpRequest, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.FollowUpRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands req to the worker responsible for its work item. A full
// channel drops the request instead of blocking the caller.
func (d *Dispatcher) Enqueue(req ports.FollowUpRequest) {
	idx := d.shardIndex(req.WorkID)
	select {
	case d.workers[idx] <- req:
		metrics.FollowUpQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().
			Str("work_id", req.WorkID).
			Str("worker_id", req.WorkerID).
			Msg("follow-up queue full, dropping request")
	}
}

// shardIndex maps a work item id deterministically to a worker index.
func (d *Dispatcher) shardIndex(workID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(workID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.FollowUpRequest) {
	defer d.wg.Done()
	depth := metrics.FollowUpQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-ch:
			depth.Dec()
			start := time.Now()
			err := d.processor.ProcessFollowUp(ctx, req)
			metrics.FollowUpDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.FollowUpsProcessedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("work_id", req.WorkID).
					Str("worker_id", req.WorkerID).
					Int("shard", id).
					Msg("follow-up processing failed")
				continue
			}
			metrics.FollowUpsProcessedTotal.WithLabelValues("sent").Inc()
		}
	}
}
