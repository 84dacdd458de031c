// Copyright 2025 The ConcurretAssignment Authors. SPDX-License-Identifier: Apache-2.0

package matmul

// Option configures a multiply or an Engine.
type Option func(*options)

type options struct {
	transposed bool
	params     Params
	observers  []Observer
}

// WithTransposedB declares that the second operand is already transposed
// (N x K). The product is then A * B^T and requires A.Cols() == B.Cols().
func WithTransposedB() Option {
	return func(o *options) { o.transposed = true }
}

// WithParams overrides the tuned split threshold and block size. Fields
// that are zero or negative fall back to ParamsForSize.
func WithParams(p Params) Option {
	return func(o *options) { o.params = p }
}

// WithObserver adds an observer of task-tree events. Multiple observers
// are called in the order given.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

func (o options) apply(opts []Option) options {
	// Copy so per-call observers never leak into the Engine defaults.
	o.observers = append([]Observer(nil), o.observers...)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolve returns the effective params for an n-row product.
func (o options) resolve(n int) Params {
	return o.params.Sanitize(n)
}

func (o options) observer() Observer {
	switch len(o.observers) {
	case 0:
		return nopObserver{}
	case 1:
		return o.observers[0]
	default:
		return multiObserver(o.observers)
	}
}
