package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airbnb-compare/models"
)

func rateServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestRateClientParsesRate(t *testing.T) {
	ts, _ := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to"))
		w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2026-10-16","rates":{"EUR":0.9234}}`))
	})

	rate, err := NewRateClient(ts.URL+"/latest", time.Second, 1, newTestLogger()).USDToEUR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.9234, rate)
}

func TestRateClientMalformedResponses(t *testing.T) {
	bodies := []string{
		`not json`,
		`{"rates":{}}`,
		`{"rates":{"EUR":0}}`,
		`{"rates":{"EUR":-1.2}}`,
		`{"base":"USD"}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			ts, hits := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := NewRateClient(ts.URL, time.Second, 3, newTestLogger()).USDToEUR(context.Background())
			assert.ErrorIs(t, err, ErrMalformedRate)
			assert.Equal(t, int32(1), atomic.LoadInt32(hits), "malformed payloads are not retried")
		})
	}
}

func TestRateClientRetriesServerErrors(t *testing.T) {
	var calls int32
	ts, _ := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"rates":{"EUR":0.5}}`))
	})

	rate, err := NewRateClient(ts.URL, time.Second, 2, newTestLogger()).USDToEUR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.5, rate)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateClientFailsVisibly(t *testing.T) {
	ts, hits := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewRateClient(ts.URL, time.Second, 2, newTestLogger()).USDToEUR(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestRateClientClientErrorNotRetried(t *testing.T) {
	ts, hits := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := NewRateClient(ts.URL, time.Second, 3, newTestLogger()).USDToEUR(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestRateClientTimeout(t *testing.T) {
	ts, _ := rateServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	start := time.Now()
	_, err := NewRateClient(ts.URL, 50*time.Millisecond, 1, newTestLogger()).USDToEUR(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

type stubRates struct {
	rate  float64
	err   error
	calls int
}

func (s *stubRates) USDToEUR(context.Context) (float64, error) {
	s.calls++
	return s.rate, s.err
}

func TestCachedRateReusesWithinTTL(t *testing.T) {
	src := &stubRates{rate: 0.9}
	c := NewCachedRate(src, time.Minute)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		rate, err := c.USDToEUR(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.9, rate)
	}
	assert.Equal(t, 1, src.calls)

	now = now.Add(2 * time.Minute)
	src.rate = 0.95
	rate, err := c.USDToEUR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.95, rate)
	assert.Equal(t, 2, src.calls)
}

func TestCachedRateDoesNotCacheFailures(t *testing.T) {
	src := &stubRates{err: ErrRateUnavailable}
	c := NewCachedRate(src, time.Minute)

	_, err := c.USDToEUR(context.Background())
	assert.ErrorIs(t, err, ErrRateUnavailable)

	src.err, src.rate = nil, 0.8
	rate, err := c.USDToEUR(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.8, rate)
	assert.Equal(t, 2, src.calls)
}

func TestCachedRateZeroTTLAlwaysFetches(t *testing.T) {
	src := &stubRates{rate: 1.1}
	c := NewCachedRate(src, 0)
	_, _ = c.USDToEUR(context.Background())
	_, _ = c.USDToEUR(context.Background())
	assert.Equal(t, 2, src.calls)
}

func TestConvertScalesAndRounds(t *testing.T) {
	conv := NewCurrencyConverter(&stubRates{rate: 0.9234}, newTestLogger())
	in := []models.Listing{
		{Neighbourhood: "A", Price: 100},
		{Neighbourhood: "B", Price: 100},
		{Neighbourhood: "C", Price: 100},
	}

	out, err := conv.Convert(context.Background(), in, PriceField)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, l := range out {
		assert.Equal(t, 92.34, l.Price)
		assert.Equal(t, in[i].Neighbourhood, l.Neighbourhood)
	}
	assert.Equal(t, 100.0, in[0].Price, "input must not be modified")
}

func TestConvertRoundsToCents(t *testing.T) {
	conv := NewCurrencyConverter(&stubRates{rate: 0.91567}, newTestLogger())
	out, err := conv.Convert(context.Background(), []models.Listing{{Price: 100}, {Price: 33.33}}, PriceField)
	require.NoError(t, err)
	assert.Equal(t, 91.57, out[0].Price)
	assert.Equal(t, 30.52, out[1].Price)
}

func TestConvertFailsWithoutPartialResult(t *testing.T) {
	conv := NewCurrencyConverter(&stubRates{err: errors.New("dial tcp: no route")}, newTestLogger())
	in := []models.Listing{{Price: 100}}

	out, err := conv.Convert(context.Background(), in, PriceField)
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 100.0, in[0].Price)
}

func TestConvertUnknownField(t *testing.T) {
	src := &stubRates{rate: 1}
	_, err := NewCurrencyConverter(src, newTestLogger()).Convert(context.Background(), nil, "minimum_nights")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Zero(t, src.calls)
}

func TestScalePrice(t *testing.T) {
	assert.Equal(t, 0.01, ScalePrice(0.005, decimal.NewFromInt(1)))
	assert.Equal(t, -0.01, ScalePrice(-0.005, decimal.NewFromInt(1)))
	assert.Equal(t, 0.0, ScalePrice(0, decimal.NewFromFloat(0.92)))
}
