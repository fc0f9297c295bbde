package engine

import "fmt"

// GatewayError reports that the tmux server could not be queried.
// There is nothing to browse without a server, so callers treat it as
// fatal.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("tmux gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// RealizationError reports that spawning a preset failed. The candidate
// list is left untouched so the user can retry or pick another entry.
type RealizationError struct {
	Name string
	Err  error
}

func (e *RealizationError) Error() string {
	return fmt.Sprintf("realize preset %s: %v", e.Name, e.Err)
}

func (e *RealizationError) Unwrap() error { return e.Err }
