// Package config resolves the planner's tuning knobs: minBundles,
// minBundleSize, maxParallelRequests. Schema validation and file I/O belong
// to the caller (see SPEC_FULL.md §1 and §AMBIENT STACK); Resolve itself
// never touches the filesystem and never fails — planning never sees a
// malformed config (§7).
//
// The functional-options shape follows builder/config.go's
// builderConfig/BuilderOption pattern, generalized from graph-construction
// knobs to planner knobs.
package config

// HTTPVersion selects the http-derived defaults (§6).
type HTTPVersion int

const (
	// HTTP2 yields {MinBundles: 1, MinBundleSize: 20000, MaxParallelRequests: 25}.
	HTTP2 HTTPVersion = 2
	// HTTP1 yields {MinBundles: 1, MinBundleSize: 30000, MaxParallelRequests: 6}.
	HTTP1 HTTPVersion = 1
)

// Resolved is the planner-facing config struct (§6). MinBundles is parsed
// but never consulted by the planner; it is a reserved future field (§9).
type Resolved struct {
	MinBundles          int
	MinBundleSize       int
	MaxParallelRequests int
}

// Option mutates a Resolved during resolution. Later options override
// earlier ones, applied left-to-right by Resolve.
type Option func(*Resolved)

// WithHTTPVersion seeds Resolved with the defaults for the given HTTP
// version. Pass it first; later Option values override individual fields.
// An unrecognized version falls back to HTTP2's defaults.
func WithHTTPVersion(v HTTPVersion) Option {
	return func(r *Resolved) {
		switch v {
		case HTTP1:
			r.MinBundles = 1
			r.MinBundleSize = 30000
			r.MaxParallelRequests = 6
		default:
			r.MinBundles = 1
			r.MinBundleSize = 20000
			r.MaxParallelRequests = 25
		}
	}
}

// WithMinBundles overrides MinBundles.
func WithMinBundles(n int) Option {
	return func(r *Resolved) { r.MinBundles = n }
}

// WithMinBundleSize overrides MinBundleSize.
func WithMinBundleSize(n int) Option {
	return func(r *Resolved) { r.MinBundleSize = n }
}

// WithMaxParallelRequests overrides MaxParallelRequests.
func WithMaxParallelRequests(n int) Option {
	return func(r *Resolved) { r.MaxParallelRequests = n }
}

// Resolve applies WithHTTPVersion(HTTP2)'s defaults, then every opt in
// order. Complexity: O(len(opts)).
func Resolve(opts ...Option) *Resolved {
	r := &Resolved{}
	WithHTTPVersion(HTTP2)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}
