// Package publish contains the platform-specific distribution adapters.
// Each adapter makes a single delivery attempt; failures propagate to the
// scheduler, which records them on the entry.
package publish

import (
	"context"
	"fmt"
)

// Delivery is the content handed to an adapter for one publish attempt.
type Delivery struct {
	Text       string
	Hashtags   []string
	Subject    string
	Recipients []string
}

// Adapter delivers content to one external channel. It returns an external
// reference (post ID, message ID) on success.
type Adapter interface {
	Deliver(ctx context.Context, d *Delivery) (string, error)
}

// DeliveryError represents a failed delivery attempt
type DeliveryError struct {
	Platform string
	Message  string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %s", e.Platform, e.Message)
}

// Registry maps platform names to their adapters. Adding a platform means
// registering a new adapter, not extending a conditional chain.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register wires an adapter for a platform name
func (r *Registry) Register(platform string, a Adapter) {
	r.adapters[platform] = a
}

// Get returns the adapter for a platform, or an error when none is wired.
func (r *Registry) Get(platform string) (Adapter, error) {
	a, ok := r.adapters[platform]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for platform %q", platform)
	}
	return a, nil
}

// Platforms returns the registered platform names.
func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}
