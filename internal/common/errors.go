// Package common defines sentinel errors shared by the fath2boinc
// packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrUsage reports a malformed command line.
	ErrUsage = errors.New("usage error")

	// ErrCorruptCheckpoint reports a local checkpoint line that cannot be
	// decoded. The whole load is rejected.
	ErrCorruptCheckpoint = errors.New("corrupt checkpoint")

	// ErrMalformedSummary reports a summary row that passed the shape
	// filters but carries an unusable score.
	ErrMalformedSummary = errors.New("malformed summary")
)
