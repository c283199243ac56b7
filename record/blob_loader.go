// blob_loader.go - the record package's narrow view of BLOB page access.
//
// Decoder needs to walk an off-page value's chain of BLOB pages, but the
// page package already imports record to build IndexPage records. A
// BlobLoader breaks the cycle: record declares the shape it needs, and
// page supplies the concrete implementation over its own BlobPage and
// PageStore types.
package record

// BlobLoader assembles the full value stored in the overflow chain
// rooted at ptr. Implementations are responsible for following the
// chain's next-page links and concatenating each page's payload.
type BlobLoader func(ptr OverflowPagePointer) ([]byte, error)
