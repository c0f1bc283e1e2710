package health

import "context"

// HealthPinger can be implemented by components to expose a specialized
// health check. HealthPing must return nil when the component is healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// PingFunc adapts a function to HealthPinger.
type PingFunc func(ctx context.Context) error

// HealthPing implements HealthPinger.
func (f PingFunc) HealthPing(ctx context.Context) error { return f(ctx) }
