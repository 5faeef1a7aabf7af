// Package scheduler runs named background tasks on fixed intervals with an
// explicit start/stop lifecycle.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

const taskRunTimeout = 5 * time.Minute

type Task struct {
	Name     string
	Interval time.Duration
	Handler  func(ctx context.Context) error
}

type Scheduler struct {
	tasks  []*Task
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		tasks:  make([]*Task, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Scheduler) AddTask(name string, interval time.Duration, handler func(ctx context.Context) error) {
	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Handler:  handler,
	})
}

// Start launches one goroutine per task. Each task runs once immediately,
// then on its interval.
func (s *Scheduler) Start() {
	log.Printf("[scheduler] starting with %d tasks", len(s.tasks))

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(task)
	}
}

// Stop cancels all tasks and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	log.Println("[scheduler] stopping")
	s.cancel()
	s.wg.Wait()
	log.Println("[scheduler] stopped")
}

func (s *Scheduler) runTask(task *Task) {
	defer s.wg.Done()

	log.Printf("[scheduler] task %q started, interval %v", task.Name, task.Interval)

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	s.executeTask(task)

	for {
		select {
		case <-s.ctx.Done():
			log.Printf("[scheduler] task %q stopped", task.Name)
			return
		case <-ticker.C:
			s.executeTask(task)
		}
	}
}

// executeTask runs one iteration. Errors are logged and swallowed so a
// failing task never kills the runner.
func (s *Scheduler) executeTask(task *Task) {
	ctx, cancel := context.WithTimeout(s.ctx, taskRunTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[scheduler] task %q panicked: %v", task.Name, r)
		}
	}()

	start := time.Now()
	if err := task.Handler(ctx); err != nil {
		log.Printf("[scheduler] task %q failed: %v", task.Name, err)
		return
	}
	log.Printf("[scheduler] task %q completed in %v", task.Name, time.Since(start))
}
