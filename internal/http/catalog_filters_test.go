package httpserver

import (
	"net/url"
	"testing"

	"github.com/movie-magic/movie-magic-backend/internal/domain"
)

func TestBuildSearchParams(t *testing.T) {
	values, _ := url.ParseQuery("query= dune &type=tv&page=2&genre_ids=18,10765&year_from=2010&year_to=2015&min_rating=7.5&language=de-DE")

	params, err := buildSearchParams(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Query != "dune" {
		t.Fatalf("query not trimmed: %q", params.Query)
	}
	if params.MediaType != domain.MediaTypeTV {
		t.Fatalf("type parse failed: %s", params.MediaType)
	}
	if params.Page != 2 {
		t.Fatalf("page parse failed: %d", params.Page)
	}
	if params.GenreIDs != "18,10765" {
		t.Fatalf("genre_ids parse failed: %q", params.GenreIDs)
	}
	if params.Year != nil {
		t.Fatalf("year should be unset")
	}
	if params.YearFrom == nil || *params.YearFrom != 2010 {
		t.Fatalf("year_from parse failed: %+v", params.YearFrom)
	}
	if params.YearTo == nil || *params.YearTo != 2015 {
		t.Fatalf("year_to parse failed: %+v", params.YearTo)
	}
	if params.MinRating == nil || *params.MinRating != 7.5 {
		t.Fatalf("min_rating parse failed: %+v", params.MinRating)
	}
	if params.Language != "de-DE" {
		t.Fatalf("language parse failed: %q", params.Language)
	}
}

func TestBuildSearchParams_Defaults(t *testing.T) {
	values, _ := url.ParseQuery("query=up")

	params, err := buildSearchParams(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.MediaType != domain.MediaTypeMovie {
		t.Fatalf("type default = %s, want movie", params.MediaType)
	}
	if params.Page != 0 {
		t.Fatalf("page should stay unset for the client default")
	}
}

func TestBuildSearchParams_Errors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing query", "type=movie"},
		{"blank query", "query=%20%20"},
		{"bad type", "query=up&type=anime"},
		{"bad page", "query=up&page=zero"},
		{"negative page", "query=up&page=-1"},
		{"bad year", "query=up&year=abc"},
		{"bad year_from", "query=up&year_from=abc"},
		{"bad year_to", "query=up&year_to=abc"},
		{"bad min_rating", "query=up&min_rating=high"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			values, _ := url.ParseQuery(c.raw)
			if _, err := buildSearchParams(values); err == nil {
				t.Fatalf("expected error for %q", c.raw)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"Bearer abc123 ", "abc123"},
		{"bearer abc123", ""},
		{"abc123", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := bearerToken(c.header); got != c.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}
