package loader

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/Ahmed-Sermani/linkrank/aggregator"
	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"golang.org/x/xerrors"
)

var headerColumns = []string{"title", "link", "count"}

// csvSource emits one payload per CSV row. A leading `title,link,count`
// header row is skipped.
type csvSource struct {
	r    *csv.Reader
	line int

	latched pipeline.Payload
	lastErr error
}

func newCSVSource(r io.Reader) *csvSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(headerColumns)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &csvSource{r: cr}
}

func (s *csvSource) Next(ctx context.Context) bool {
	for {
		if s.lastErr != nil || ctx.Err() != nil {
			return false
		}

		fields, err := s.r.Read()
		if err == io.EOF {
			return false
		} else if err != nil {
			s.lastErr = xerrors.Errorf("read csv: %w", err)
			return false
		}

		s.line++
		if s.line == 1 && isHeader(fields) {
			continue
		}

		s.latched = NewRowPayload(s.line, fields)
		return true
	}
}

func (s *csvSource) Payload() pipeline.Payload { return s.latched }
func (s *csvSource) Error() error              { return s.lastErr }

func isHeader(fields []string) bool {
	for i, col := range headerColumns {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), col) {
			return false
		}
	}
	return true
}

type countingSink struct {
	count aggregator.Int
}

func (s *countingSink) Consume(context.Context, pipeline.Payload) error {
	s.count.Aggregate(1)
	return nil
}

func (s *countingSink) getCount() int {
	return s.count.Get()
}
