package worker

import (
	"context"
	"log"
	"sync"
)

// Job is a unit of background work. The context outlives the request that queued it.
type Job func(ctx context.Context) error

type PoolStatus string

const (
	PoolStatusCreated PoolStatus = "created"
	PoolStatusActive  PoolStatus = "active"
	PoolStatusStopped PoolStatus = "stopped"
)

type WorkingPool struct {
	NumWorkers int
	jobChan    chan Job

	mu     sync.RWMutex
	status PoolStatus
}

func NewWorkingPool(numWorkers int, queueSize int) *WorkingPool {
	return &WorkingPool{
		NumWorkers: max(numWorkers, 1),
		jobChan:    make(chan Job, max(queueSize, 0)),
		status:     PoolStatusCreated,
	}
}

// TrySubmit queues job without blocking. It returns false when the queue is full
// or the pool has stopped.
func (p *WorkingPool) TrySubmit(job Job) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.status == PoolStatusStopped {
		return false
	}
	select {
	case p.jobChan <- job:
		return true
	default:
		return false
	}
}

func (p *WorkingPool) Status() PoolStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// Start runs the workers until ctx is cancelled, then stops accepting jobs,
// lets the workers drain what is already queued and returns.
func (p *WorkingPool) Start(ctx context.Context, managerWg *sync.WaitGroup) {
	defer managerWg.Done()

	p.mu.Lock()
	p.status = PoolStatusActive
	p.mu.Unlock()

	jobCtx := context.WithoutCancel(ctx)
	var workerWg sync.WaitGroup
	for i := range p.NumWorkers {
		workerWg.Add(1)
		go p.worker(jobCtx, &workerWg, i+1)
	}

	<-ctx.Done()

	log.Println("[WorkingPool] Shutdown signaled. Closing job channel.")
	p.mu.Lock()
	p.status = PoolStatusStopped
	close(p.jobChan)
	p.mu.Unlock()

	workerWg.Wait()
	log.Println("[WorkingPool] All workers stopped.")
}

func (p *WorkingPool) worker(ctx context.Context, wg *sync.WaitGroup, id int) {
	defer wg.Done()

	for job := range p.jobChan {
		p.safeExecution(ctx, job, id)
	}
	log.Printf("[WorkingPool-Worker %d] Job channel closed. Exiting.", id)
}

func (p *WorkingPool) safeExecution(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WorkingPool-Worker %d] Panic recovered in job: %v", workerID, r)
		}
	}()

	if err := job(ctx); err != nil {
		log.Printf("[WorkingPool-Worker %d] Error executing job: %s", workerID, err)
	}
}
