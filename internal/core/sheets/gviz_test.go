package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dre-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string, timeout time.Duration, tries uint) *GoogleSheets {
	return NewGoogleSheets(GoogleSheetsOptions{
		BaseURL:           baseURL,
		SpreadsheetID:     "abc123",
		Timeout:           timeout,
		MaxTries:          tries,
		RequestsPerSecond: 100,
		Burst:             10,
	}, zap.NewNop())
}

func TestCSVURLEncodesSpacesAsPercent20(t *testing.T) {
	client := newTestClient("https://docs.google.com/", time.Second, 1)

	got := client.CSVURL("Dre Apuama Original")

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/gviz/tq?tqx=out:csv&sheet=Dre%20Apuama%20Original", got)
	assert.NotContains(t, got, "+")
	assert.NotContains(t, got, "Dre Apuama")
}

func TestCSVURLEscapesQueryDelimiters(t *testing.T) {
	client := newTestClient(DefaultBaseURL, time.Second, 1)

	got := client.CSVURL("A&B+C")

	assert.Contains(t, got, "sheet=A%26B%2BC")
}

func TestReadSheetParsesCSV(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "/spreadsheets/d/abc123/gviz/tq", r.URL.Path)
		w.Write([]byte("\ufeff\"Data\",\"Ativos\"\n\"02/01/2025\",\"1.234,56\"\n"))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL, time.Second, 1).ReadSheet(context.Background(), "Dre Apuama")

	require.NoError(t, err)
	assert.Equal(t, "tqx=out:csv&sheet=Dre%20Apuama", rawQuery)
	assert.Equal(t, [][]string{{"Data", "Ativos"}, {"02/01/2025", "1.234,56"}}, rows)
}

func TestReadSheetRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("Data\n01/01/2025\n"))
	}))
	defer server.Close()

	rows, err := newTestClient(server.URL, 5*time.Second, 3).ReadSheet(context.Background(), "Dre_Apuama")

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestReadSheetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 5*time.Second, 3).ReadSheet(context.Background(), "Dre_Apuama")

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchTimeoutIsSourceUnavailable(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	fetcher := NewFetcher(newTestClient(server.URL, 50*time.Millisecond, 1))

	start := time.Now()
	_, err := fetcher.Fetch(context.Background(), "Dre_Apuama")

	require.Error(t, err)
	var unavailable *domain.SourceUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "Dre_Apuama", unavailable.Sheet)
	assert.Less(t, time.Since(start), 2*time.Second)
}
