// Package ticks fetches and parses the tick CSV export.
package ticks

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cragstats/tick-report-service/internal/domain"
)

// columns are the export's field names, matched case-sensitively after
// trimming whitespace from header cells. Unknown columns are ignored.
var columns = []string{
	"date", "route", "rating", "location", "style",
	"leadStyle", "pitches", "length", "stars", "notes",
}

// Client fetches a tick CSV export over HTTP.
// It implements pipeline.Fetcher.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a tick export client for the given URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the export and parses it into raw rows. The body is read
// in full before parsing begins; there is no streaming or incremental parse.
// Any transport or structural CSV failure is fatal for the whole fetch.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawTick, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ticks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch ticks: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ticks body: %w", err)
	}

	raws, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	c.logger.Debug("ticks fetched", "url", c.url, "rows", len(raws))
	return raws, nil
}

// ParseCSV parses a tick export. The first row is always the header; empty
// lines are skipped; ragged rows are tolerated here and dropped later by
// the validity invariant if their required fields are missing.
func ParseCSV(r io.Reader) ([]domain.RawTick, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ticks csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("parse ticks csv: missing header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if col == "date" || col == "route" {
			if _, ok := index[col]; !ok {
				return nil, fmt.Errorf("parse ticks csv: missing %q column", col)
			}
		}
	}

	raws := make([]domain.RawTick, 0, len(rows)-1)
	for _, row := range rows[1:] {
		field := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		raws = append(raws, domain.RawTick{
			Date:      field("date"),
			Route:     field("route"),
			Rating:    field("rating"),
			Location:  field("location"),
			Style:     field("style"),
			LeadStyle: field("leadStyle"),
			Pitches:   field("pitches"),
			Length:    field("length"),
			Stars:     field("stars"),
			Notes:     field("notes"),
		})
	}
	return raws, nil
}
