// Package report computes aggregate figures over a finished user table.
package report

import (
	"github.com/montanaflynn/stats"

	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

// Report summarises the table after a run. All RAC figures are in credit
// per day.
type Report struct {
	Users       int
	TotalCredit float64
	TotalRAC    float64
	MeanRAC     float64
	MedianRAC   float64
	MaxRAC      float64
}

// Summarize returns the report for users. An empty table yields zeros.
func Summarize(users models.Users) Report {
	if len(users) == 0 {
		return Report{}
	}

	credit := make(stats.Float64Data, 0, len(users))
	rac := make(stats.Float64Data, 0, len(users))
	for _, u := range users {
		credit = append(credit, u.TotalCredit)
		rac = append(rac, u.ExpavgCredit)
	}

	// stats only errors on empty input, which is excluded above.
	r := Report{Users: len(users)}
	r.TotalCredit, _ = credit.Sum()
	r.TotalRAC, _ = rac.Sum()
	r.MeanRAC, _ = rac.Mean()
	r.MedianRAC, _ = rac.Median()
	r.MaxRAC, _ = rac.Max()
	return r
}

// LogArgs renders r as key-value pairs for a structured logger.
func (r Report) LogArgs() []any {
	return []any{
		"users", r.Users,
		"total_credit", r.TotalCredit,
		"total_rac", r.TotalRAC,
		"mean_rac", r.MeanRAC,
		"median_rac", r.MedianRAC,
		"max_rac", r.MaxRAC,
	}
}
