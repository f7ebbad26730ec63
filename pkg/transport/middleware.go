package transport

// Middleware wraps a RoundTripper to add behavior such as retries or
// observability.
type Middleware interface {
	// Wrap wraps the given round tripper with middleware functionality
	Wrap(next RoundTripper) RoundTripper
}

// MiddlewareFunc is an adapter to allow ordinary functions as middleware.
type MiddlewareFunc func(RoundTripper) RoundTripper

// Wrap implements the Middleware interface
func (f MiddlewareFunc) Wrap(next RoundTripper) RoundTripper {
	return f(next)
}

// Chain composes multiple middleware. The first middleware passed is the
// outermost layer.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(rt RoundTripper) RoundTripper {
		for i := len(middleware) - 1; i >= 0; i-- {
			rt = middleware[i].Wrap(rt)
		}
		return rt
	})
}
