// Package pipeline turns a Folding@Home summary into BOINC credit records.
//
// Run steps
//
//  1. Load the local checkpoint (a missing file is an empty table).
//  2. Stream the F@H summary (plain or compressed, chosen by file
//     extension) and sum each CPID's credit.
//  3. Fold each sum into its user with rac.Update, creating users seen
//     for the first time.
//  4. Write the table back to the checkpoint path and, as BOINC <user>
//     records, to the output path.
//
// Every update in a run sees the same timestamp, passed in by the caller
// and truncated to whole seconds. Nothing is written unless both inputs were read successfully; a failed
// write may leave partial files behind.
//
// Primary API
//
//   - type Paths                           - checkpoint, summary and output paths
//   - func New(logger) *Pipeline
//   - func (*Pipeline) Run(ctx, paths, now) - one full pass, returns a *Result
//   - func Merge(users, deltas, now)       - the update step on its own
package pipeline
