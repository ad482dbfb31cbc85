package evaluation

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/hoangnd25/glidepath/internal/episode"
	"github.com/hoangnd25/glidepath/internal/policy"
	"github.com/hoangnd25/glidepath/internal/sim"
)

// WorkerPool runs grid-sweep cells in parallel. Cells are independent: each
// worker builds its own engine and policy and shares only the read-only
// dataset, so results are identical to a sequential sweep.
type WorkerPool struct {
	workerCount int
	jobQueue    chan SweepJob
	resultQueue chan SweepResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	dataset     *episode.Dataset
}

// SweepJob is one (allocation, spending-rate) cell of the sweep.
type SweepJob struct {
	ID           int
	TargetEquity float64
	SpendingRate float64
	Params       sim.Params
	Rebalance    bool
}

// SweepResult is the evaluated cell.
type SweepResult struct {
	Job      SweepJob
	Report   *RiskReport
	Duration time.Duration
	Error    error
}

// NewWorkerPool creates a pool over the shared dataset. A non-positive
// worker count defaults to the number of CPUs.
func NewWorkerPool(dataset *episode.Dataset, workerCount, jobBufferSize int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		jobQueue:    make(chan SweepJob, jobBufferSize),
		resultQueue: make(chan SweepResult, jobBufferSize),
		ctx:         ctx,
		cancel:      cancel,
		dataset:     dataset,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop drains the pool gracefully.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// SubmitJob queues a cell for evaluation.
func (wp *WorkerPool) SubmitJob(job SweepJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the channel completed cells arrive on.
func (wp *WorkerPool) Results() <-chan SweepResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}
			result := wp.processJob(job)
			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job SweepJob) SweepResult {
	startTime := time.Now()
	result := SweepResult{Job: job}

	var pol policy.Policy
	var err error
	if job.Rebalance {
		pol, err = policy.NewRebalance(job.TargetEquity)
	} else {
		pol, err = policy.NewBuyAndHold(job.TargetEquity)
	}
	if err != nil {
		result.Error = err
		return result
	}

	params := job.Params
	params.SpendingRate = job.SpendingRate
	evaluator, err := NewEvaluator(wp.dataset, params)
	if err != nil {
		result.Error = err
		return result
	}

	report, _, err := evaluator.Evaluate(pol)
	result.Report = report
	result.Error = err
	result.Duration = time.Since(startTime)
	return result
}

// ProgressTracker tracks sweep completion for CLI progress output.
type ProgressTracker struct {
	total     int
	completed int
	startTime time.Time
	mutex     sync.RWMutex
}

// NewProgressTracker creates a tracker for the given cell count.
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{total: total, startTime: time.Now()}
}

// Increment records one completed cell.
func (pt *ProgressTracker) Increment() {
	pt.mutex.Lock()
	defer pt.mutex.Unlock()
	pt.completed++
}

// Progress returns completed count, total, percentage and elapsed time.
func (pt *ProgressTracker) Progress() (int, int, float64, time.Duration) {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()
	elapsed := time.Since(pt.startTime)
	progress := float64(pt.completed) / float64(pt.total) * 100
	return pt.completed, pt.total, progress, elapsed
}

// EstimateTimeRemaining extrapolates from the pace so far.
func (pt *ProgressTracker) EstimateTimeRemaining() time.Duration {
	pt.mutex.RLock()
	defer pt.mutex.RUnlock()
	if pt.completed == 0 {
		return 0
	}
	elapsed := time.Since(pt.startTime)
	avgTimePerCell := elapsed / time.Duration(pt.completed)
	remaining := pt.total - pt.completed
	return avgTimePerCell * time.Duration(remaining)
}
