// Package context implements the pluggable trigger-context providers (spec.md
// §4.18). Provider implementations (OS clipboard, browser tab title, etc.)
// are explicitly out of scope here (spec.md §1) — only the interface and the
// concurrent polling broadcaster are.
package context

import (
	stdctx "context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Provider supplies key/value context entries polled at tick boundary.
type Provider interface {
	Name() string
	GetContext(ctx stdctx.Context, args map[string]any) (map[string]any, error)
}

// Broadcaster fans out Poll to every registered provider concurrently and
// merges their results. Polling happens strictly outside World.Tick — never
// as a suspension point inside the hot loop (spec.md §5, §9).
type Broadcaster struct {
	providers []Provider
	logger    *log.Logger
}

// NewBroadcaster creates a Broadcaster with the given providers, polled in
// registration order for merge tie-breaking.
func NewBroadcaster(logger *log.Logger, providers ...Provider) *Broadcaster {
	return &Broadcaster{providers: providers, logger: logger}
}

// Poll queries every provider concurrently with errgroup and merges their
// outputs into a single map. On key collision, the provider registered
// earliest wins and the collision is logged once; a provider returning an
// error is logged and simply contributes nothing, it never fails the whole
// poll (an unreachable context source must not stall the world).
func (b *Broadcaster) Poll(ctx stdctx.Context, args map[string]any) map[string]any {
	results := make([]map[string]any, len(b.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range b.providers {
		i, p := i, p
		g.Go(func() error {
			out, err := p.GetContext(gctx, args)
			if err != nil {
				b.logf("context provider %q failed: %v", p.Name(), err)
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait() // errors are already swallowed per-provider above

	merged := make(map[string]any)
	for i, out := range results {
		for k, v := range out {
			if _, exists := merged[k]; exists {
				b.logf("context key %q from provider %q shadowed by earlier provider", k, b.providers[i].Name())
				continue
			}
			merged[k] = v
		}
	}
	return merged
}

func (b *Broadcaster) logf(format string, args ...any) {
	if b.logger != nil {
		b.logger.Printf(format, args...)
	}
}

// WrapError is a convenience used by Provider implementations to annotate a
// failure with the provider's own name, matching the wrapped-error idiom
// used throughout the kernel.
func WrapError(providerName string, err error) error {
	return fmt.Errorf("provider %s: %w", providerName, err)
}
