// config.go - decoder behavior knobs.
package record

// Config controls how Decoder handles the less common corners of the
// record format. The zero value is the lenient behavior: an unsupported
// LOB page yields a nil column value rather than an error.
type Config struct {
	// ThrowOnUnsupportedNewLOB controls what happens when an overflow
	// pointer resolves to a MySQL 8.0 "new" LOB first page instead of
	// the classic BLOB page chain. When true, Decode returns
	// ErrUnsupportedLobFormat. When false, the column's value is nil
	// and decoding of the rest of the record continues.
	ThrowOnUnsupportedNewLOB bool
}
