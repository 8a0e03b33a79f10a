package wallpaper

import (
	"context"
	"sync"

	"github.com/slimroms/slimwallpaper/util/log"
	"golang.org/x/sync/errgroup"
)

// DecodeWorkers is the number of background workers decoding wallpapers.
const DecodeWorkers = 2

// Task is a unit of background work. It must not touch UI state directly.
type Task func(ctx context.Context)

// Executor runs tasks off the UI goroutine.
type Executor interface {
	// Submit queues task to run with ctx. It returns false if the executor is stopped.
	Submit(ctx context.Context, task Task) bool
	// Stop cancels queued work and waits for running tasks to return.
	Stop()
}

type job struct {
	ctx  context.Context
	task Task
}

// Pool is a fixed-size worker pool.
type Pool struct {
	jobChan  chan job
	ctx      context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
	stopOnce sync.Once
}

// NewPool starts a pool with workerCount workers.
func NewPool(workerCount int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobChan: make(chan job, 64),
		ctx:     ctx,
		cancel:  cancel,
		group:   &errgroup.Group{},
	}

	log.Debugf("Starting decode pool with %d workers", workerCount)
	for i := 0; i < workerCount; i++ {
		id := i
		p.group.Go(func() error {
			p.workerLoop(id)
			return nil
		})
	}
	return p
}

// Submit queues task. Tasks whose context is already done when a worker picks them
// up are dropped.
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	select {
	case <-p.ctx.Done():
		return false
	default:
	}

	select {
	case p.jobChan <- job{ctx: ctx, task: task}:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Stop stops the pool and waits for workers to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		log.Debugf("Stopping decode pool...")
		p.cancel()
		_ = p.group.Wait()
		log.Debugf("Decode pool stopped.")
	})
}

func (p *Pool) workerLoop(id int) {
	for {
		select {
		case <-p.ctx.Done():
			log.Debugf("Worker %d stopping", id)
			return
		case j := <-p.jobChan:
			if j.ctx.Err() != nil {
				continue
			}
			j.task(j.ctx)
		}
	}
}
