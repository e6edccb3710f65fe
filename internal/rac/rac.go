// Package rac implements the BOINC Recent Average Credit update.
//
// The formula follows BOINC's html/inc/credit.inc: the running average
// decays with a seven day half-life and absorbs new work as a per-day rate.
package rac

import (
	"math"

	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

const (
	// SecondsPerDay is the length of a credit day.
	SecondsPerDay = 86400.0

	// HalfLife is the time, in seconds, over which an unrefreshed average halves.
	HalfLife = 7 * SecondsPerDay

	// smallInterval bounds 1-w below which the first-order limit is used
	// in place of dividing by a near-zero interval.
	smallInterval = 1e-6
)

// Weight returns the decay factor applied to an average that is diff
// seconds old.
func Weight(diff float64) float64 {
	return math.Exp(-diff * math.Ln2 / HalfLife)
}

// Update folds a new cumulative total into u at time now (Unix seconds).
//
// A total lower than the stored one leaves u untouched. The first
// observation of a user only records the timestamp. ExpavgTime never moves
// backwards.
func Update(u *models.User, newTotal, now float64) {
	work := newTotal - u.TotalCredit
	if work < 0 {
		return
	}
	u.TotalCredit = newTotal

	if u.ExpavgTime > 0 {
		diff := math.Max(now-u.ExpavgTime, 0)
		w := Weight(diff)

		u.ExpavgCredit *= w
		if 1-w > smallInterval {
			u.ExpavgCredit += (1 - w) * (work / (diff / SecondsPerDay))
		} else {
			u.ExpavgCredit += math.Ln2 * work * SecondsPerDay / HalfLife
		}
	}

	if now > u.ExpavgTime {
		u.ExpavgTime = now
	}
}
