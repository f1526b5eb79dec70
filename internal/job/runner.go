package job

import (
	"context"
	"errors"
	"fmt"
	"kzstore-backoffice/internal/dto"
	"kzstore-backoffice/internal/model"
	"kzstore-backoffice/internal/repository"
	"log"
	"sync"
	"time"
)

var (
	ErrUnknownJob = errors.New("unknown job id")
	ErrJobRunning = errors.New("job is already running")
)

// Runner executes registry jobs and records each outcome in the job run
// store. Per job id the lifecycle is idle -> running -> success|error ->
// idle; a trigger arriving while the same job is running is rejected.
type Runner struct {
	registry *Registry
	runs     repository.JobRunRepository

	mu   sync.Mutex
	busy map[string]bool
}

func NewRunner(registry *Registry, runs repository.JobRunRepository) *Runner {
	return &Runner{
		registry: registry,
		runs:     runs,
		busy:     make(map[string]bool),
	}
}

func (r *Runner) acquire(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.busy[id] {
		return false
	}
	r.busy[id] = true
	return true
}

func (r *Runner) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.busy, id)
}

func (r *Runner) record(ctx context.Context, run *model.JobRun) {
	if err := r.runs.Upsert(ctx, run); err != nil {
		log.Printf("[RUNNER] persist run record for %s: %v", run.JobID, err)
	}
}

// Run executes one job. ErrUnknownJob and ErrJobRunning are returned before
// the job transitions to running; a failure inside the job body comes back
// in the outcome, not as a returned error.
func (r *Runner) Run(ctx context.Context, id string) (*dto.JobOutcome, error) {
	_, handler, ok := r.registry.lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, id)
	}

	if !r.acquire(id) {
		return nil, fmt.Errorf("%w: %s", ErrJobRunning, id)
	}
	defer r.release(id)

	r.record(ctx, &model.JobRun{JobID: id, Status: model.JobStatusRunning})

	log.Printf("[RUNNER] job %s started", id)
	result, err := handler(ctx)
	now := time.Now()

	if err != nil {
		log.Printf("[RUNNER] job %s failed: %v", id, err)
		r.record(ctx, &model.JobRun{
			JobID:     id,
			Status:    model.JobStatusError,
			LastRun:   &now,
			LastError: err.Error(),
		})
		return &dto.JobOutcome{
			JobID:  id,
			Status: model.JobStatusError,
			Error:  err.Error(),
		}, nil
	}

	log.Printf("[RUNNER] job %s finished", id)
	r.record(ctx, &model.JobRun{
		JobID:   id,
		Status:  model.JobStatusSuccess,
		LastRun: &now,
	})

	return &dto.JobOutcome{
		JobID:  id,
		Status: model.JobStatusSuccess,
		Result: result,
	}, nil
}

// RunAll dispatches every enabled job concurrently and waits for all of them
// to settle. Each job's outcome is collected independently, in registry
// order; one job failing never affects another's entry.
func (r *Runner) RunAll(ctx context.Context) []dto.JobOutcome {
	enabled := make([]Descriptor, 0)
	for _, d := range r.registry.Descriptors() {
		if d.Enabled {
			enabled = append(enabled, d)
		}
	}

	outcomes := make([]dto.JobOutcome, len(enabled))
	var wg sync.WaitGroup

	for i, d := range enabled {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			outcome, err := r.Run(ctx, id)
			if err != nil {
				outcomes[i] = dto.JobOutcome{
					JobID:  id,
					Status: model.JobStatusError,
					Error:  err.Error(),
				}
				return
			}
			outcomes[i] = *outcome
		}(i, d.ID)
	}

	wg.Wait()
	return outcomes
}

// Jobs merges the static descriptors with the persisted run state.
func (r *Runner) Jobs(ctx context.Context) ([]dto.JobInfo, error) {
	runs, err := r.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list job runs: %w", err)
	}

	byID := make(map[string]*model.JobRun, len(runs))
	for _, run := range runs {
		byID[run.JobID] = run
	}

	infos := make([]dto.JobInfo, 0, len(r.registry.Descriptors()))
	for _, d := range r.registry.Descriptors() {
		info := dto.JobInfo{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Path:        d.Path,
			Schedule:    d.Schedule,
			Enabled:     d.Enabled,
			Status:      model.JobStatusIdle,
		}
		if run, ok := byID[d.ID]; ok {
			info.Status = run.Status
			info.LastRun = run.LastRun
			info.LastError = run.LastError
		}
		infos = append(infos, info)
	}

	return infos, nil
}
