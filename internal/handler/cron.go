package handler

import (
	"errors"
	"kzstore-backoffice/internal/job"
	"kzstore-backoffice/internal/model"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CronHandler struct {
	runner *job.Runner
}

func NewCronHandler(runner *job.Runner) *CronHandler {
	return &CronHandler{
		runner: runner,
	}
}

// RunJob executes one job synchronously and returns its outcome.
func (h *CronHandler) RunJob(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	outcome, err := h.runner.Run(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, job.ErrUnknownJob):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, job.ErrJobRunning):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return err
		}
	}

	status := http.StatusOK
	if outcome.Status == model.JobStatusError {
		status = http.StatusInternalServerError
	}

	return c.JSON(status, outcome)
}

// RunAll executes every enabled job and returns the per-job outcome list.
func (h *CronHandler) RunAll(c echo.Context) error {
	ctx := c.Request().Context()

	outcomes := h.runner.RunAll(ctx)

	return c.JSON(http.StatusOK, outcomes)
}

// ListJobs returns the job catalogue merged with last-run state.
func (h *CronHandler) ListJobs(c echo.Context) error {
	ctx := c.Request().Context()

	jobs, err := h.runner.Jobs(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jobs)
}
