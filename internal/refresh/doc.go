// Package refresh provides a generic, single-flight, stale-tolerant cache for
// data derived from slow-changing external systems.
//
// A Service holds the last successfully fetched snapshot in memory and decides
// when it has gone stale. Readers never wait on a refresh: GetData starts a
// background refresh when one may be needed and immediately returns whatever
// snapshot is present, or ErrNotReady if none has been produced yet.
//
// # Refresh Decision Flow
//
//  1. If a refresh attempt is already being evaluated, return (single-flight gate)
//  2. Mark the attempt and stamp LastAttemptedAt
//  3. Resolve refresh parameters from the current data and previous parameters
//  4. On resolution failure, record a FAILED outcome and return the error
//  5. Ask the Source whether a refresh is needed for those parameters
//  6. If forced, or needed and not already refreshing, fetch new data; success
//     replaces the snapshot, failure keeps the old one
//  7. Otherwise clear the attempt flag
//
// Evaluating whether a refresh is needed is separated from performing it, so
// many callers can probe staleness concurrently while only the first one that
// finds no attempt in flight goes on to fetch.
//
// # Storage
//
// The refresh Info lives in an InfoStore. NewMemoryStore keeps it for the
// lifetime of the process, so a restart always triggers a new initial refresh.
package refresh
