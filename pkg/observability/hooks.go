// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about engine operations and layout
// store access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not
// by libraries), keeps the core library free of observability framework
// dependencies, and allows different backends.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the layout engine.
type EngineHooks interface {
	// Arrange events
	OnArrangeStart(ctx context.Context, componentCount int)
	OnArrangeComplete(ctx context.Context, componentCount int, duration time.Duration, err error)

	// OnPlace records a first-fit placement attempt.
	OnPlace(ctx context.Context, w, h int, duration time.Duration, err error)

	// OnSnap records a drag proposal snapping onto an alignment zone.
	OnSnap(ctx context.Context, draggedID string, zoneCount int)

	// OnPush records a space-making pass that displaced neighbors.
	OnPush(ctx context.Context, draggedID string, displaced int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout store operations.
type StoreHooks interface {
	OnGet(ctx context.Context, backend, id string, err error)
	OnPut(ctx context.Context, backend, id string, err error)
	OnDelete(ctx context.Context, backend, id string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnArrangeStart(context.Context, int)                          {}
func (NoopEngineHooks) OnArrangeComplete(context.Context, int, time.Duration, error) {}
func (NoopEngineHooks) OnPlace(context.Context, int, int, time.Duration, error)      {}
func (NoopEngineHooks) OnSnap(context.Context, string, int)                          {}
func (NoopEngineHooks) OnPush(context.Context, string, int)                          {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnGet(context.Context, string, string, error)    {}
func (NoopStoreHooks) OnPut(context.Context, string, string, error)    {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any engine operations.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	storeHooks = NoopStoreHooks{}
}
