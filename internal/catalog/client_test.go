package catalog

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

func intPtr(v int) *int          { return &v }
func floatPtr(v float64) *float64 { return &v }

func newClient(t *testing.T, baseURL string) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, "test-key", "en-US", 2*time.Second, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return c
}

func TestTranslateSearch_ExactYearWinsOverRange(t *testing.T) {
	c := newClient(t, "http://localhost:0")

	query := c.translateSearch(SearchParams{
		Query:    "inception",
		Year:     intPtr(2020),
		YearFrom: intPtr(2010),
		YearTo:   intPtr(2015),
	})

	require.Equal(t, "2020", query.Get("primary_release_year"))
	require.Empty(t, query.Get("primary_release_date.gte"))
	require.Empty(t, query.Get("primary_release_date.lte"))
}

func TestTranslateSearch_YearRangeInclusive(t *testing.T) {
	c := newClient(t, "http://localhost:0")

	query := c.translateSearch(SearchParams{
		Query:    "inception",
		YearFrom: intPtr(2010),
		YearTo:   intPtr(2015),
	})

	require.Empty(t, query.Get("primary_release_year"))
	require.Equal(t, "2010-01-01", query.Get("primary_release_date.gte"))
	require.Equal(t, "2015-12-31", query.Get("primary_release_date.lte"))
}

func TestTranslateSearch_Filters(t *testing.T) {
	c := newClient(t, "http://localhost:0")

	query := c.translateSearch(SearchParams{
		Query:     "batman",
		GenreIDs:  "28,80",
		MinRating: floatPtr(7.5),
		Language:  "de-DE",
		Page:      3,
	})

	require.Equal(t, "batman", query.Get("query"))
	require.Equal(t, "28,80", query.Get("with_genres"))
	require.Equal(t, "7.5", query.Get("vote_average.gte"))
	require.Equal(t, "de-DE", query.Get("language"))
	require.Equal(t, "3", query.Get("page"))
}

func TestTranslateSearch_Defaults(t *testing.T) {
	c := newClient(t, "http://localhost:0")

	query := c.translateSearch(SearchParams{Query: "up"})

	require.Equal(t, "en-US", query.Get("language"))
	require.Equal(t, "1", query.Get("page"))
	require.Empty(t, query.Get("with_genres"))
	require.Empty(t, query.Get("vote_average.gte"))
}

func TestSearch_RelaysBodyVerbatim(t *testing.T) {
	const payload = `{"page":1,"results":[{"id":27205,"title":"Inception"}],"total_results":1}`

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/3/search/movie", r.URL.Path)
		require.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		require.Equal(t, "inception", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer upstream.Close()

	c := newClient(t, upstream.URL+"/3")
	body, err := c.Search(context.Background(), SearchParams{Query: "inception", MediaType: domain.MediaTypeMovie})
	require.NoError(t, err)
	require.JSONEq(t, payload, string(body))
}

func TestDetails_BundlesCreditsVideosImages(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tv/1399", r.URL.Path)
		require.Equal(t, "credits,videos,images", r.URL.Query().Get("append_to_response"))
		require.Equal(t, "en-US", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{"id":1399}`))
	}))
	defer upstream.Close()

	c := newClient(t, upstream.URL)
	body, err := c.Details(context.Background(), domain.MediaTypeTV, 1399, "")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1399}`, string(body))
}

func TestSimilar_ForwardsLanguageAndPage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie/27205/similar", r.URL.Path)
		require.Equal(t, "es-ES", r.URL.Query().Get("language"))
		require.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"page":2,"results":[]}`))
	}))
	defer upstream.Close()

	c := newClient(t, upstream.URL)
	_, err := c.Similar(context.Background(), domain.MediaTypeMovie, 27205, "es-ES", 2)
	require.NoError(t, err)
}

func TestGet_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_message":"boom"}`, http.StatusInternalServerError)
	}))
	defer upstream.Close()

	c := newClient(t, upstream.URL)
	_, err := c.Search(context.Background(), SearchParams{Query: "x"})
	require.ErrorIs(t, err, ErrUpstream)

	closed := httptest.NewServer(nil)
	closed.Close()
	c2 := newClient(t, closed.URL)
	_, err = c2.Search(context.Background(), SearchParams{Query: "x"})
	require.ErrorIs(t, err, ErrUpstream)
}
