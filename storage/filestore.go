// filestore.go - a page.PageStore backed by a tablespace file (or any
// io.ReaderAt).
package storage

import (
	"io"

	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
)

// FilePageStore loads fixed-size pages from a .ibd tablespace file or
// any other io.ReaderAt over page-aligned content.
type FilePageStore struct {
	r io.ReaderAt
}

func NewFilePageStore(r io.ReaderAt) *FilePageStore {
	return &FilePageStore{r: r}
}

func (s *FilePageStore) Load(pageNo uint32) ([]byte, error) {
	buf := make([]byte, format.PageSize)
	off := int64(pageNo) * int64(format.PageSize)
	n, err := s.r.ReadAt(buf, off)
	if err != nil && !(err == io.EOF && n == format.PageSize) {
		return nil, errors.Wrapf(err, "read page %d at offset %d", pageNo, off)
	}
	return buf, nil
}
