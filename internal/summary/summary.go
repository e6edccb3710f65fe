// Package summary parses the Folding@Home daily user summary into per-CPID
// credit totals.
//
// The summary is tab separated with four columns. Only the first two are
// read: a composite name ending in _GRC_<cpid>, and the cumulative credit.
// Rows that do not match that shape belong to other teams or are headers
// and are skipped.
package summary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/fath2boinc/internal/common"
	"github.com/dmitrijs2005/fath2boinc/internal/models"
)

const (
	// Tag is the second-to-last name component that marks forwarded rows.
	Tag = "GRC"

	fieldCount  = 4
	headerName  = "name"
	maxLineSize = 1 << 20
)

// SkipReason names why a row was ignored.
type SkipReason string

const (
	SkipFieldCount SkipReason = "field_count"
	SkipHeader     SkipReason = "header"
	SkipNameParts  SkipReason = "name_parts"
	SkipTag        SkipReason = "tag"
	SkipCPID       SkipReason = "cpid"
	SkipOversize   SkipReason = "oversize"
)

// Deltas maps a CPID to the summed credit of all its rows.
type Deltas map[string]float64

// Stats counts what Parse did with the input.
type Stats struct {
	Lines    int
	Accepted int
	Skipped  map[SkipReason]int
}

// SkippedTotal is the number of rows ignored for any reason.
func (s Stats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

var errNotFinite = errors.New("not finite")

// nameSanitizer drops characters that could forge records in the XML output.
var nameSanitizer = strings.NewReplacer(",", "", "<", "", ">", "")

// Parse streams r and sums the credit of every accepted row per CPID.
// A row that passes the shape filters but has an unusable score, or whose
// score pushes a CPID's sum out of range, fails the whole parse with
// common.ErrMalformedSummary. Lines longer than maxLineSize are skipped.
func Parse(r io.Reader) (Deltas, Stats, error) {
	deltas := Deltas{}
	stats := Stats{Skipped: map[SkipReason]int{}}

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, oversize, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read summary: %w", err)
		}
		stats.Lines++

		if oversize {
			stats.Skipped[SkipOversize]++
			continue
		}

		cpid, raw, reason := classify(line)
		if reason != "" {
			stats.Skipped[reason]++
			continue
		}

		score, err := strconv.ParseFloat(raw, 64)
		if err == nil && (math.IsNaN(score) || math.IsInf(score, 0)) {
			err = errNotFinite
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: line %d: score %q: %v", common.ErrMalformedSummary, stats.Lines, raw, err)
		}

		sum := deltas[cpid] + score
		if math.IsInf(sum, 0) {
			return nil, stats, fmt.Errorf("%w: line %d: credit sum for %s overflows", common.ErrMalformedSummary, stats.Lines, cpid)
		}
		deltas[cpid] = sum
		stats.Accepted++
	}

	return deltas, stats, nil
}

// readLine returns the next line without its terminator. A line longer
// than maxLineSize is consumed in full and reported as oversize with no
// content.
func readLine(br *bufio.Reader) (string, bool, error) {
	var (
		buf      []byte
		oversize bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if len(buf) > 0 || oversize {
				return string(buf), oversize, nil
			}
			return "", false, err
		}
		if !oversize {
			if len(buf)+len(chunk) > maxLineSize {
				oversize = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), oversize, nil
		}
	}
}

// classify returns the CPID and raw score of a line, or the reason it
// should be skipped.
func classify(line string) (cpid, score string, reason SkipReason) {
	fields := strings.Split(line, "\t")
	name := nameSanitizer.Replace(fields[0])

	if len(fields) != fieldCount {
		return "", "", SkipFieldCount
	}
	if name == headerName {
		return "", "", SkipHeader
	}

	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return "", "", SkipNameParts
	}
	if parts[len(parts)-2] != Tag {
		return "", "", SkipTag
	}
	cpid = parts[len(parts)-1]
	if !models.IsMD5Hex(cpid) {
		return "", "", SkipCPID
	}

	return cpid, fields[1], ""
}
