package predict

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

type Result struct {
	Status Status   `json:"status"`
	Data   *Outcome `json:"data,omitempty"`
	Error  string   `json:"error,omitempty"`
}

func TaskID(home, away string) string {
	return fmt.Sprintf("predict_%s_%s", home, away)
}

// Registry runs prediction tasks in the background and keeps their
// results for polling. Starting a fixture that is already known replaces
// its entry.
type Registry struct {
	ctx       context.Context
	predictor MatchPredictor
	tasks     *expirable.LRU[string, Result]
	wg        sync.WaitGroup
}

func NewRegistry(ctx context.Context, predictor MatchPredictor, size int, ttl time.Duration) *Registry {
	return &Registry{
		ctx:       ctx,
		predictor: predictor,
		tasks:     expirable.NewLRU[string, Result](size, nil, ttl),
	}
}

func (r *Registry) Start(home, away string) string {
	id := TaskID(home, away)
	r.tasks.Add(id, Result{Status: StatusPending})

	r.wg.Add(1)
	go r.run(id, home, away)

	return id
}

// Result reports the state of a task. Unknown ids read as pending.
func (r *Registry) Result(id string) Result {
	if res, ok := r.tasks.Get(id); ok {
		return res
	}
	return Result{Status: StatusPending}
}

// Wait blocks until every started task has finished.
func (r *Registry) Wait() {
	r.wg.Wait()
}

func (r *Registry) run(id, home, away string) {
	defer r.wg.Done()
	defer func() {
		if p := recover(); p != nil {
			log.Printf("Task %s panicked: %v", id, p)
			r.tasks.Add(id, Result{Status: StatusError, Error: fmt.Sprint(p)})
		}
	}()

	start := time.Now()
	outcome, err := r.predictor.PredictMatch(r.ctx, home, away)
	if err != nil {
		log.Printf("Task %s failed: %v", id, err)
		r.tasks.Add(id, Result{Status: StatusError, Error: err.Error()})
		return
	}

	log.Printf("Task %s complete in %v", id, time.Since(start))
	r.tasks.Add(id, Result{Status: StatusComplete, Data: &outcome})
}
