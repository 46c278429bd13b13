package health

import "context"

// BackendPinger checks matching backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}
