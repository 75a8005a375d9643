package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/native"

// StartTracing enables native API call tracing for the current user.
func (a *API) StartTracing() error {
	return status(a, "StartTracing", func(fn tracingFn) native.Status {
		return fn()
	})
}

// StopTracing disables native API call tracing for the current user.
func (a *API) StopTracing() error {
	return status(a, "StopTracing", func(fn tracingFn) native.Status {
		return fn()
	})
}
