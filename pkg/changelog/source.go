package changelog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "commitlens"

// Sentinel errors returned by sources.
var (
	ErrEmptyLog       = errors.New("change log has no header row")
	ErrUnexpectedHTTP = errors.New("unexpected http status")
)

// Source produces the raw change records of one log.
type Source interface {
	// Name identifies the source in logs and spans.
	Name() string
	// Records loads and normalizes every row.
	Records(ctx context.Context) ([]ChangeRecord, error)
}

// Load reads all records from src inside a tracing span.
func Load(ctx context.Context, src Source) ([]ChangeRecord, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "commitlens.load",
		trace.WithAttributes(attribute.String("source", src.Name())))
	defer span.End()

	records, err := src.Records(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	span.SetAttributes(attribute.Int("records", len(records)))

	return records, nil
}

// ReadCSV parses a header-driven CSV change log. Columns may come in any
// order and unknown columns are ignored. Short rows are padded with empty
// values instead of being rejected.
func ReadCSV(ctx context.Context, r io.Reader, loc *time.Location) ([]ChangeRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyLog
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	for i, name := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}

	var records []ChangeRecord

	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("read rows: %w", ctxErr)
		}

		fields, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		// A malformed line only costs that line.
		var parseErr *csv.ParseError
		if errors.As(readErr, &parseErr) {
			continue
		}

		if readErr != nil {
			return nil, fmt.Errorf("read rows: %w", readErr)
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}

		records = append(records, Normalize(row, loc))
	}

	return records, nil
}

// CSVSource reads a change log from a local file.
type CSVSource struct {
	Path     string
	Location *time.Location
}

// Name returns the file path.
func (s CSVSource) Name() string {
	return s.Path
}

// Records opens and parses the file.
func (s CSVSource) Records(ctx context.Context) ([]ChangeRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open change log: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, s.Location)
}

// HTTPSource fetches a change log over HTTP(S).
type HTTPSource struct {
	URL      string
	Client   *http.Client
	Location *time.Location
}

// Name returns the URL.
func (s HTTPSource) Name() string {
	return s.URL
}

// Records downloads and parses the log.
func (s HTTPSource) Records(ctx context.Context) ([]ChangeRecord, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch change log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedHTTP, resp.Status)
	}

	return ReadCSV(ctx, resp.Body, s.Location)
}
