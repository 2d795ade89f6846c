// Package worker runs the asynchronous side of the production workflow:
// a fixed pool of workers draining a buffered job queue. Render,
// publish and news-fetch jobs all go through the same pool.
package worker

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull is returned by Submit when the job queue is at capacity.
// Callers surface it to the dispatcher, which fails the affected record
// instead of silently dropping the work.
var ErrQueueFull = errors.New("job queue is full")

// Job is a unit of work executed by the pool.
type Job interface {
	Execute() error
	ID() string
}

// Worker pulls jobs from its own channel, which it registers with the
// pool whenever it is idle.
type Worker struct {
	id         int
	workerPool chan chan Job
	jobChannel chan Job
	quit       chan bool
	wg         *sync.WaitGroup
	log        *logrus.Logger
}

func newWorker(id int, workerPool chan chan Job, wg *sync.WaitGroup, log *logrus.Logger) Worker {
	return Worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Job),
		quit:       make(chan bool),
		wg:         wg,
		log:        log,
	}
}

func (w Worker) start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			// Register this worker's channel as available.
			w.workerPool <- w.jobChannel

			select {
			case job := <-w.jobChannel:
				entry := w.log.WithFields(logrus.Fields{"worker": w.id, "job": job.ID()})
				entry.Info("Job started")
				if err := job.Execute(); err != nil {
					entry.WithError(err).Error("Job failed")
				} else {
					entry.Info("Job finished")
				}
			case <-w.quit:
				return
			}
		}
	}()
}

func (w Worker) stop() {
	go func() {
		w.quit <- true
	}()
}

// Pool manages the workers and the shared job queue.
type Pool struct {
	maxWorkers int
	workerPool chan chan Job
	jobQueue   chan Job
	workers    []Worker
	wg         sync.WaitGroup
	quit       chan bool
	log        *logrus.Logger
}

func NewPool(maxWorkers, queueSize int, log *logrus.Logger) *Pool {
	return &Pool{
		maxWorkers: maxWorkers,
		workerPool: make(chan chan Job, maxWorkers),
		jobQueue:   make(chan Job, queueSize),
		workers:    make([]Worker, 0, maxWorkers),
		quit:       make(chan bool),
		log:        log,
	}
}

// Run starts the workers and the dispatch loop.
func (p *Pool) Run() {
	p.log.WithField("workers", p.maxWorkers).Info("Worker pool starting")
	for i := 1; i <= p.maxWorkers; i++ {
		w := newWorker(i, p.workerPool, &p.wg, p.log)
		p.workers = append(p.workers, w)
		w.start()
	}
	go p.dispatch()
}

func (p *Pool) dispatch() {
	for {
		select {
		case job := <-p.jobQueue:
			go func(job Job) {
				// Wait for an idle worker, then hand the job over.
				jobChannel := <-p.workerPool
				jobChannel <- job
			}(job)
		case <-p.quit:
			return
		}
	}
}

// Submit adds a job to the queue without blocking. A full queue is an
// error the caller must handle.
func (p *Pool) Submit(job Job) error {
	select {
	case p.jobQueue <- job:
		p.log.WithField("job", job.ID()).Debug("Job submitted")
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop shuts down the dispatch loop, then waits for every worker to
// finish its current job.
func (p *Pool) Stop() {
	p.quit <- true
	for _, w := range p.workers {
		w.stop()
	}
	p.wg.Wait()
	p.log.Info("Worker pool stopped")
}
