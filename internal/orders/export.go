package orders

import (
	"context"

	"github.com/shashiranjanraj/vyapar/pkg/httpx"
	"github.com/shashiranjanraj/vyapar/pkg/logger"
)

// defaultExportName is used when the server sends no usable
// Content-Disposition header.
const defaultExportName = "orders_export.csv"

// Export is a downloaded CSV document.
type Export struct {
	Filename string
	Data     []byte
}

// ExportCSV downloads the orders matching f as CSV. The server applies
// the same filter semantics as the list view; the filename comes from the
// Content-Disposition header with a fixed fallback.
func (s *Service) ExportCSV(ctx context.Context, f Filter) (*Export, error) {
	req := httpx.Get(s.api.URL("/admin/orders/export/csv"))
	for k, v := range f.query() {
		req.Query(k, v)
	}

	resp, err := s.api.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &Export{Filename: resp.Filename(defaultExportName), Data: resp.Raw}
	logger.Info("orders: CSV exported", "filename", out.Filename, "bytes", len(out.Data))
	return out, nil
}
