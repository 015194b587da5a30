package httpserver

import (
	"net/http"
	"net/url"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/movie-magic/movie-magic-backend/internal/catalog"
	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

func TestHandleSearch(t *testing.T) {
	payload := json.RawMessage(`{"page":1,"results":[{"id":550,"title":"Fight Club"}],"total_results":1}`)
	cat := &fakeCatalog{payload: payload}
	s := newTestServer(t, nil, cat, fakeVerifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/search?query=fight+club&type=movie&year=1999&min_rating=8", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != string(payload) {
		t.Fatalf("payload not relayed verbatim: %s", rec.Body.String())
	}
	if cat.searchParams.Query != "fight club" {
		t.Fatalf("query = %q", cat.searchParams.Query)
	}
	if cat.searchParams.MediaType != domain.MediaTypeMovie {
		t.Fatalf("type = %s", cat.searchParams.MediaType)
	}
	if cat.searchParams.Year == nil || *cat.searchParams.Year != 1999 {
		t.Fatalf("year = %+v", cat.searchParams.Year)
	}
	if cat.searchParams.MinRating == nil || *cat.searchParams.MinRating != 8 {
		t.Fatalf("min_rating = %+v", cat.searchParams.MinRating)
	}
}

func TestHandleSearchBadRequest(t *testing.T) {
	s := newTestServer(t, nil, &fakeCatalog{}, fakeVerifier{})

	for _, target := range []string{
		"/api/search",
		"/api/search?query=up&type=book",
		"/api/search?query=up&page=0",
		"/api/search?query=up&min_rating=lots",
	} {
		rec := doRequest(t, s, http.MethodGet, target, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s status = %d, want 400", target, rec.Code)
		}
	}
}

func TestHandleSearchUpstreamFailure(t *testing.T) {
	cat := &fakeCatalog{err: catalog.ErrUpstream}
	s := newTestServer(t, nil, cat, fakeVerifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/search?query=up", "", nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Error != "Failed to search catalog" {
		t.Fatalf("error = %q", resp.Error)
	}
}

func TestHandleDetails(t *testing.T) {
	payload := json.RawMessage(`{"id":1399,"name":"Game of Thrones","credits":{"cast":[]}}`)
	cat := &fakeCatalog{payload: payload}
	s := newTestServer(t, nil, cat, fakeVerifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/tv/1399?language=fr-FR", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != string(payload) {
		t.Fatalf("payload not relayed verbatim: %s", rec.Body.String())
	}
	if cat.mediaType != domain.MediaTypeTV || cat.id != 1399 {
		t.Fatalf("forwarded %s/%d", cat.mediaType, cat.id)
	}
	if cat.language != "fr-FR" {
		t.Fatalf("language = %q", cat.language)
	}
}

func TestHandleDetailsUnknownType(t *testing.T) {
	s := newTestServer(t, nil, &fakeCatalog{}, fakeVerifier{})

	// The route pattern only admits the two catalog media types.
	rec := doRequest(t, s, http.MethodGet, "/api/book/42", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleSimilar(t *testing.T) {
	payload := json.RawMessage(`{"page":3,"results":[]}`)
	cat := &fakeCatalog{payload: payload}
	s := newTestServer(t, nil, cat, fakeVerifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/movie/550/similar?page=3", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cat.mediaType != domain.MediaTypeMovie || cat.id != 550 || cat.page != 3 {
		t.Fatalf("forwarded %s/%d page %d", cat.mediaType, cat.id, cat.page)
	}
}

func TestHandleSimilarBadPage(t *testing.T) {
	s := newTestServer(t, nil, &fakeCatalog{}, fakeVerifier{})

	rec := doRequest(t, s, http.MethodGet, "/api/movie/550/similar?page=minus", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func FuzzBuildSearchParams(f *testing.F) {
	f.Add("query=up&type=movie&page=1")
	f.Add("query=&year=1999")
	f.Add("query=a&year=2020&year_from=2010&year_to=2015")
	f.Add("query=b&min_rating=7.5&genre_ids=18,35")

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := parseQueryLenient(raw)
		if err != nil {
			t.Skip()
		}
		params, err := buildSearchParams(values)
		if err != nil {
			return
		}
		if params.Query == "" {
			t.Fatalf("accepted empty query from %q", raw)
		}
		if !params.MediaType.Valid() {
			t.Fatalf("accepted invalid type %q from %q", params.MediaType, raw)
		}
		if params.Page < 0 {
			t.Fatalf("accepted negative page from %q", raw)
		}
	})
}

func parseQueryLenient(raw string) (url.Values, error) {
	req, err := http.NewRequest(http.MethodGet, "/?"+raw, nil)
	if err != nil {
		return nil, err
	}
	return req.URL.Query(), nil
}
