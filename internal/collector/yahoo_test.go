package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const chartJSON = `{"chart":{"result":[{
  "timestamp":[1704292200,1704205800,1704378600],
  "indicators":{
    "quote":[{
      "open":[186.0,187.1,null],
      "high":[186.5,188.4,null],
      "low":[183.4,183.9,null],
      "close":[184.25,185.64,null],
      "volume":[58414500,82488700,null]}],
    "adjclose":[{"adjclose":[183.7,185.1,null]}]}}],
  "error":null}}`

func TestYahooFetcher_FetchDailyBars(t *testing.T) {
	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartJSON))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := f.FetchDailyBars(context.Background(), "AAPL", start, start.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Equal(t, "/v8/finance/chart/AAPL", gotPath)
	require.Equal(t, "1d", gotInterval)

	require.Len(t, got, 2, "null bar skipped")
	require.True(t, got[0].Time.Before(got[1].Time), "sorted chronologically")
	require.Equal(t, 185.64, got[0].Close)
	require.Equal(t, 185.1, got[0].AdjClose)
	require.Equal(t, int64(82488700), got[0].Volume)
	require.Equal(t, 184.25, got[1].Close)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got[0].Time)
	require.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got[1].Time)
}

func TestYahooFetcher_DatesInExchangeZone(t *testing.T) {
	// 2024-01-03 10:00 AEDT is 2024-01-02 23:00 UTC.
	for _, meta := range []string{
		`{"exchangeTimezoneName":"Australia/Sydney","gmtoffset":39600}`,
		`{"exchangeTimezoneName":"","gmtoffset":39600}`,
	} {
		body := `{"chart":{"result":[{"meta":` + meta + `,
		  "timestamp":[1704236400],
		  "indicators":{"quote":[{"open":[7.1],"high":[7.3],"low":[7.0],"close":[7.2],"volume":[1000]}]}}],
		  "error":null}}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		got, err := NewYahooFetcher(srv.URL, "").FetchDailyBars(context.Background(), "BHP.AX", start, start.AddDate(0, 0, 5))
		srv.Close()
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), got[0].Time, meta)
		require.Equal(t, 7.2, got[0].AdjClose, "adj close falls back to close")
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "")
	f.Client.SetRetryCount(0)
	_, err := f.FetchDailyBars(context.Background(), "ZZZZ", time.Now().AddDate(0, -1, 0), time.Now())
	require.ErrorContains(t, err, "delisted")
}

func TestYahooFetcher_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`))
	}))
	defer srv.Close()

	_, err := NewYahooFetcher(srv.URL, "").FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.ErrorIs(t, err, ErrNoData)
}
