// Package app wires configuration, logging, the optional run ledger and the
// pipeline into a single run.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/fath2boinc/internal/config"
	"github.com/dmitrijs2005/fath2boinc/internal/history"
	"github.com/dmitrijs2005/fath2boinc/internal/logging"
	"github.com/dmitrijs2005/fath2boinc/internal/pipeline"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	history history.Repository
	db      *sql.DB
	now     func() time.Time
}

// Option customises an App.
type Option func(*App)

// WithClock replaces time.Now as the source of the run timestamp.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithLogger replaces the logger built from the config.
func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp builds an App logging to logOut. When the config names a history
// path the ledger is opened and migrated here.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer, opts ...Option) (*App, error) {
	app := &App{config: c, now: time.Now}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		l, err := logging.New(logOut, c.LogFormat, c.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("logger init error: %w", err)
		}
		app.logger = l
	}

	if c.HistoryDSN != "" {
		db, err := history.Open(ctx, c.HistoryDSN)
		if err != nil {
			return nil, fmt.Errorf("history init error: %w", err)
		}
		app.db = db
		app.history = history.NewSQLiteRepository(db)
	}

	return app, nil
}

// Run performs one pipeline pass. The clock is read exactly once.
func (app *App) Run(ctx context.Context) error {
	now := app.now()
	runID := uuid.New()
	log := app.logger.With("run_id", runID.String())

	if app.history != nil {
		last, err := app.history.Last(ctx)
		if err != nil {
			return err
		}
		if last != nil {
			log.Info(ctx, "previous run", "at", last.At, "users", last.Users, "total_rac", last.TotalRAC)
		}
	}

	res, err := pipeline.New(log).Run(ctx, pipeline.Paths{
		Checkpoint: app.config.CheckpointPath,
		Summary:    app.config.SummaryPath,
		Output:     app.config.OutputPath,
	}, now)
	if err != nil {
		return err
	}

	if app.history == nil {
		return nil
	}

	run := &history.Run{
		ID:          runID,
		At:          res.Now,
		Loaded:      res.Loaded,
		Merged:      res.Merged,
		Users:       res.Report.Users,
		Skipped:     res.Summary.SkippedTotal(),
		TotalCredit: res.Report.TotalCredit,
		TotalRAC:    res.Report.TotalRAC,
		MeanRAC:     res.Report.MeanRAC,
		MedianRAC:   res.Report.MedianRAC,
		MaxRAC:      res.Report.MaxRAC,
	}
	if err := app.history.Save(ctx, run, res.Users); err != nil {
		return err
	}
	log.Debug(ctx, "run recorded", "history", app.config.HistoryDSN)
	return nil
}

// Close releases the history database, if open.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
