package ticks

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `date, route ,rating,location,style,leadStyle,pitches,length,stars,notes
2024-03-01,High Exposure,5.6,New York > Gunks > Trapps,Lead,Onsight,3,250,4,Classic.
2024-03-02,Predator,5.13a,New Hampshire > Rumney > Waimea,Sport,Redpoint,1,80,3,

2024-03-03,Partial Row
`

func TestParseCSV(t *testing.T) {
	raws, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// Empty lines are skipped; the ragged trailing row is kept as a raw row
	// with blank fields and left to the validity invariant downstream.
	require.Len(t, raws, 3)

	assert.Equal(t, "2024-03-01", raws[0].Date)
	assert.Equal(t, "High Exposure", raws[0].Route) // header "  route " trimmed
	assert.Equal(t, "5.6", raws[0].Rating)
	assert.Equal(t, "New York > Gunks > Trapps", raws[0].Location)
	assert.Equal(t, "Onsight", raws[0].LeadStyle)
	assert.Equal(t, "3", raws[0].Pitches)
	assert.Equal(t, "Classic.", raws[0].Notes)

	assert.Equal(t, "Partial Row", raws[2].Route)
	assert.Empty(t, raws[2].Rating)
}

func TestParseCSV_UnknownColumnsIgnored(t *testing.T) {
	input := "date,route,url,rating\n2024-01-01,X,https://example.com,5.9\n"

	raws, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "5.9", raws[0].Rating)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("route,rating\nX,5.9\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "date" column`)
}

func TestParseCSV_CaseSensitiveHeaders(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Date,Route\n2024-01-01,X\n"))
	require.Error(t, err)
}

func TestParseCSV_EmptyInput(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header row")
}

func TestClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, slog.Default())
	raws, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, raws, 3)
}

func TestClientFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, slog.Default())
	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestClientFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, 5*time.Second, slog.Default())
	_, err := client.Fetch(ctx)

	require.Error(t, err)
}
