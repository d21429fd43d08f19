// Package importer parses bank statement CSV exports into rows the
// ledger can save. The column layout is auto-detected from the header,
// and the byte stream is decoded to UTF-8 first since banks still ship
// legacy encodings.
package importer

import (
	"io"
	"time"
)

// Row is one parsed statement line. Amount is signed cents: positive is
// income, negative is expense; the ledger receives the positive
// magnitude plus a type.
type Row struct {
	Date        time.Time
	Description string
	Amount      int64
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) Parse(r io.Reader) ([]Row, error) {
	return parse(r)
}
