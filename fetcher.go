package localsift

import "context"

// Fetcher retrieves raw bytes from URLs.
// Implementations handle retries and timeouts internally; a returned
// error is never fatal to a run, callers treat it as "skip this node".
//
// Errors carry application codes: ENOTFOUND for a structural 404 (the
// resource does not exist, no retry performed) and EUNAVAILABLE when
// all attempts were exhausted against transient faults.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
