// Package ingestion provides pipeline orchestration for importing scores.
//
// The Pipeline type manages the import workflow for Standard MIDI Files:
//   - Reading and quantizing each file into a score
//   - Storing the score in a score repository
//   - Reporting progress while a batch is running
//
// Files are processed concurrently using a worker pool.
// A file that fails is logged and reported but does not fail the batch.
package ingestion
