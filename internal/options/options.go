// Package options implements the functional option pattern shared by the
// container and codec constructors.
package options

// Option configures a target of type T during construction.
type Option[T any] interface {
	apply(T) error
}

// optionFunc adapts a plain function to the Option interface.
type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New creates an option from a function that may reject the configuration.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
