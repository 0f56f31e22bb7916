package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultLineLoadSchedule refreshes the line gauges every 15 seconds.
const DefaultLineLoadSchedule = "*/15 * * * * *"

type LineOccupancyReader interface {
	Handle(ctx context.Context, query queries.GetLineOccupancyQuery) ([]queries.LineOccupancyResponse, error)
}

type LineLoadRecorder interface {
	RecordLineLoad(lineName string, occupancy, capacity int)
}

// LineLoadJob republishes the occupancy of every line to the metrics
// recorder. Allocations only update the gauges of the lines they saw, so
// without it a line drained by completed orders would keep its last value.
type LineLoadJob struct {
	reader   LineOccupancyReader
	recorder LineLoadRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewLineLoadJob(reader LineOccupancyReader, recorder LineLoadRecorder, schedule string, logger *slog.Logger) *LineLoadJob {
	if schedule == "" {
		schedule = DefaultLineLoadSchedule
	}
	return &LineLoadJob{
		reader:   reader,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "line_load_job"),
	}
}

// Run publishes one snapshot.
func (j *LineLoadJob) Run(ctx context.Context) error {
	lines, err := j.reader.Handle(ctx, queries.NewGetLineOccupancyQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Line load snapshot failed", "error", err)
		return err
	}

	for _, l := range lines {
		j.recorder.RecordLineLoad(l.Name, l.Occupancy, l.Capacity)
	}
	return nil
}

func (j *LineLoadJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Line load job started", "schedule", j.schedule)
	return nil
}

func (j *LineLoadJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Line load job stopped")
}
