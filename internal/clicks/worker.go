package clicks

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// Recorder is the persistence surface click jobs write to.
type Recorder interface {
	IncrementLinkClicks(ctx context.Context, code string) error
	InsertClickEvent(ctx context.Context, id, tweetID string) error
}

// Job is one click to account for: either a deep-link counter bump or a tweet
// click event, never both.
type Job struct {
	LinkCode string
	TweetID  string
}

// WorkerPool persists click accounting off the request path. Accounting is
// best-effort: a full queue drops the job rather than blocking a response.
type WorkerPool struct {
	jobs       chan Job
	quit       chan struct{}
	started    bool
	wg         sync.WaitGroup
	numWorkers int
	db         Recorder
}

func NewWorkerPool(numWorkers, queueCapacity int, db Recorder) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if queueCapacity <= 0 {
		queueCapacity = 256
	}
	return &WorkerPool{
		jobs:       make(chan Job, queueCapacity),
		quit:       make(chan struct{}),
		numWorkers: numWorkers,
		db:         db,
	}
}

func (wp *WorkerPool) Start() {
	if wp.started {
		return
	}
	wp.started = true
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go func(workerID int) {
			defer wp.wg.Done()
			for {
				select {
				case <-wp.quit:
					// Drain whatever is still queued before exiting.
					for {
						select {
						case job := <-wp.jobs:
							wp.process(job)
						default:
							return
						}
					}
				case job := <-wp.jobs:
					wp.process(job)
				}
			}
		}(i + 1)
	}
}

func (wp *WorkerPool) Stop(ctx context.Context) {
	if !wp.started {
		return
	}
	close(wp.quit)
	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		utils.Zlog.Warn("Timeout waiting for click workers to stop")
	case <-done:
	}
}

func (wp *WorkerPool) Enqueue(job Job) bool {
	select {
	case <-wp.quit:
		return false
	default:
	}
	select {
	case wp.jobs <- job:
		return true
	default:
		return false
	}
}

// LinkClicked satisfies shortlink.ClickSink.
func (wp *WorkerPool) LinkClicked(code string) {
	if ok := wp.Enqueue(Job{LinkCode: code}); !ok {
		utils.Zlog.Warn("Click queue full, dropping link click", zap.String("code", code))
	}
}

// TweetClicked queues a click event for a tweet.
func (wp *WorkerPool) TweetClicked(tweetID string) {
	if ok := wp.Enqueue(Job{TweetID: tweetID}); !ok {
		utils.Zlog.Warn("Click queue full, dropping tweet click", zap.String("tweetId", tweetID))
	}
}

func (wp *WorkerPool) process(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if job.LinkCode != "" {
		err = wp.db.IncrementLinkClicks(ctx, job.LinkCode)
	} else if job.TweetID != "" {
		err = wp.db.InsertClickEvent(ctx, uuid.New().String(), job.TweetID)
	}
	if err != nil {
		utils.Zlog.Warn("Failed to persist click",
			zap.String("code", job.LinkCode),
			zap.String("tweetId", job.TweetID),
			zap.Error(err))
	}
}
