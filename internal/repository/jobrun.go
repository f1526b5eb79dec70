package repository

import (
	"context"
	"kzstore-backoffice/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRunRepository interface {
	// Upsert overwrites the single run record for a job id.
	Upsert(ctx context.Context, run *model.JobRun) error
	Get(ctx context.Context, jobID string) (*model.JobRun, error)
	List(ctx context.Context) ([]*model.JobRun, error)
}

type jobRunRepoImpl struct {
	db *gorm.DB
}

func NewJobRunRepository(db *gorm.DB) JobRunRepository {
	return &jobRunRepoImpl{db: db}
}

func (r *jobRunRepoImpl) Upsert(ctx context.Context, run *model.JobRun) error {
	run.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     run.Status,
			"last_run":   run.LastRun,
			"last_error": run.LastError,
			"updated_at": run.UpdatedAt,
		}),
	}).Create(run).Error
}

func (r *jobRunRepoImpl) Get(ctx context.Context, jobID string) (*model.JobRun, error) {
	var run model.JobRun
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		First(&run).Error

	if err != nil {
		return nil, err
	}

	return &run, nil
}

func (r *jobRunRepoImpl) List(ctx context.Context) ([]*model.JobRun, error) {
	var runs []*model.JobRun
	if err := r.db.WithContext(ctx).Find(&runs).Error; err != nil {
		return nil, err
	}

	return runs, nil
}
