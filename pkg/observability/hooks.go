// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-agnostic. Consumers register hooks
// at startup to receive events about derivation passes, gate decisions,
// cache operations, and API requests.
//
// Hooks are registered by main, never by libraries, so the core packages
// stay free of any metrics dependency.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDeriveHooks(&myDeriveHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Derive().OnDeriveStart(len(items))
//	// ... derive ...
//	observability.Derive().OnDeriveComplete(len(items), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Derive Hooks
// =============================================================================

// DeriveHooks receives events from wrapper instances. The derivation core is
// synchronous and carries no context, so these hooks take none.
type DeriveHooks interface {
	// OnDeriveStart records the start of a derivation pass over items.
	OnDeriveStart(items int)

	// OnDeriveComplete records a finished derivation pass.
	OnDeriveComplete(items int, duration time.Duration)

	// OnDecision records the gate outcome of one update.
	OnDecision(recompute, render bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDeriveHooks is a no-op implementation of DeriveHooks.
type NoopDeriveHooks struct{}

func (NoopDeriveHooks) OnDeriveStart(int)                   {}
func (NoopDeriveHooks) OnDeriveComplete(int, time.Duration) {}
func (NoopDeriveHooks) OnDecision(bool, bool)               {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	deriveHooks DeriveHooks = NoopDeriveHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	apiHooks    APIHooks    = NoopAPIHooks{}
	hooksMu     sync.RWMutex
)

// SetDeriveHooks registers custom derive hooks.
// This should be called once at application startup before any wrapper is created.
func SetDeriveHooks(h DeriveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		deriveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetAPIHooks registers custom API hooks.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Derive returns the registered derive hooks.
func Derive() DeriveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return deriveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	deriveHooks = NoopDeriveHooks{}
	cacheHooks = NoopCacheHooks{}
	apiHooks = NoopAPIHooks{}
}
