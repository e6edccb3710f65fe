package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fath2boinc/internal/boinc"
	"github.com/dmitrijs2005/fath2boinc/internal/checkpoint"
	"github.com/dmitrijs2005/fath2boinc/internal/logging"
	"github.com/dmitrijs2005/fath2boinc/internal/models"
	"github.com/dmitrijs2005/fath2boinc/internal/rac"
	"github.com/dmitrijs2005/fath2boinc/internal/report"
	"github.com/dmitrijs2005/fath2boinc/internal/summary"
)

// Paths names the three files a run touches.
type Paths struct {
	Checkpoint string
	Summary    string
	Output     string
}

// Result describes a finished run.
type Result struct {
	Now     time.Time
	Loaded  int
	Merged  int
	Summary summary.Stats
	Users   models.Users
	Report  report.Report
}

type Pipeline struct {
	log logging.Logger
}

func New(log logging.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Run executes one full pass. now is truncated to whole seconds. Nothing is
// written unless both inputs were read successfully.
func (p *Pipeline) Run(ctx context.Context, paths Paths, now time.Time) (*Result, error) {
	now = now.Truncate(time.Second)

	users, err := checkpoint.Load(ctx, paths.Checkpoint, p.log)
	if err != nil {
		return nil, err
	}
	loaded := len(users)

	deltas, stats, err := p.readSummary(ctx, paths.Summary)
	if err != nil {
		return nil, err
	}

	p.log.Info(ctx, "merging entries from F@H user summary data", "count", len(deltas))
	Merge(users, deltas, float64(now.Unix()))

	if err := checkpoint.Store(paths.Checkpoint, users); err != nil {
		return nil, fmt.Errorf("store local data: %w", err)
	}
	if err := boinc.Store(paths.Output, users); err != nil {
		return nil, fmt.Errorf("store boinc data: %w", err)
	}

	res := &Result{
		Now:     now,
		Loaded:  loaded,
		Merged:  len(deltas),
		Summary: stats,
		Users:   users,
		Report:  report.Summarize(users),
	}
	p.log.Info(ctx, "run complete", res.Report.LogArgs()...)
	return res, nil
}

func (p *Pipeline) readSummary(ctx context.Context, path string) (summary.Deltas, summary.Stats, error) {
	rc, err := summary.Open(path)
	if err != nil {
		return nil, summary.Stats{}, err
	}
	defer rc.Close()

	deltas, stats, err := summary.Parse(rc)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}

	for reason, n := range stats.Skipped {
		p.log.Debug(ctx, "skipped summary rows", "reason", string(reason), "count", n)
	}
	p.log.Debug(ctx, "parsed summary", "lines", stats.Lines, "accepted", stats.Accepted)
	return deltas, stats, nil
}

// Merge applies each summed score to its user, creating users seen for the
// first time. Scores are cumulative totals, not increments.
func Merge(users models.Users, deltas summary.Deltas, now float64) {
	for cpid, score := range deltas {
		rac.Update(users.Ensure(cpid), score, now)
	}
}
