// Package mirrors keeps in-memory snapshots of the external catalogs that
// validations are evaluated against: the HCA data repository project index
// and the CELLxGENE collection and dataset registry.
//
// Each mirror is a refresh.Service. Lookups never wait for a refresh; until a
// mirror has loaded its first snapshot, lookups fail with refresh.ErrNotReady.
package mirrors
