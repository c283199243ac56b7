// errors.go - argument validation errors, checked before any page I/O.
package query

import "github.com/pkg/errors"

// ErrInvalidArgument is returned for inverted bounds, a key of the
// wrong arity, or other argument problems caught before touching the
// page store.
var ErrInvalidArgument = errors.New("invalid argument")
