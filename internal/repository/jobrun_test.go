package repository

import (
	"context"
	"kzstore-backoffice/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRunUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRunRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.JobRun{
		JobID:  "cart-cleanup",
		Status: model.JobStatusRunning,
	}))

	now := time.Now()
	require.NoError(t, repo.Upsert(ctx, &model.JobRun{
		JobID:   "cart-cleanup",
		Status:  model.JobStatusSuccess,
		LastRun: &now,
	}))

	run, err := repo.Get(ctx, "cart-cleanup")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusSuccess, run.Status)
	require.NotNil(t, run.LastRun)

	// one row per job id
	runs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestJobRunErrorDetailCleared(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRunRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Upsert(ctx, &model.JobRun{
		JobID:     "weekly-report",
		Status:    model.JobStatusError,
		LastRun:   &now,
		LastError: "smtp unreachable",
	}))
	require.NoError(t, repo.Upsert(ctx, &model.JobRun{
		JobID:   "weekly-report",
		Status:  model.JobStatusSuccess,
		LastRun: &now,
	}))

	run, err := repo.Get(ctx, "weekly-report")
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusSuccess, run.Status)
	assert.Empty(t, run.LastError)
}
