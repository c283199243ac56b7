// errors.go - sentinel errors returned by the record decoder.
package record

import "github.com/pkg/errors"

var (
	// ErrPageTypeMismatch is returned when a page's FIL header does not
	// carry the page type the caller expected.
	ErrPageTypeMismatch = errors.New("page type mismatch")

	// ErrMalformedRecord is returned when a record's physical layout
	// violates an invariant the decoder depends on (a var-len length
	// array or null bitmap that runs past the start of the page, an
	// overflow column too short to hold its 20-byte pointer, a BLOB part
	// length past the end of its page, an unknown record type).
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnsupportedLobFormat is returned when a record's overflow chain
	// is rooted at a MySQL 8.0 "new" LOB first page rather than the
	// classic BLOB page format this decoder understands.
	ErrUnsupportedLobFormat = errors.New("unsupported LOB format")

	// ErrSchemaMismatch is returned when the supplied table definition
	// cannot drive decoding: NewDecoder returns it for a nil table or a
	// table without a primary key.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
