package catalog

import (
	"io"
	"log"
	"testing"
	"time"
)

func FuzzTranslateSearch(f *testing.F) {
	f.Add("inception", "28,80", 2010, 2015, 7.5, "en-US", 1)
	f.Add("", "", 0, 0, 0.0, "", -3)
	f.Add("batman", "16", -1, 9999, -2.5, "de-DE", 500)

	c, err := NewHTTPClient("http://localhost:0", "key", "en-US", time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, text, genres string, yearFrom, yearTo int, minRating float64, language string, page int) {
		params := SearchParams{
			Query:    text,
			GenreIDs: genres,
			Language: language,
			Page:     page,
		}
		if yearFrom != 0 {
			params.YearFrom = &yearFrom
		}
		if yearTo != 0 {
			params.YearTo = &yearTo
		}
		if minRating != 0 {
			params.MinRating = &minRating
		}

		query := c.translateSearch(params)
		if query.Get("language") == "" {
			t.Fatalf("language should never be empty")
		}
		if query.Get("page") == "" {
			t.Fatalf("page should never be empty")
		}
		if query.Get("primary_release_year") != "" &&
			(query.Get("primary_release_date.gte") != "" || query.Get("primary_release_date.lte") != "") {
			t.Fatalf("exact year must suppress the range bounds")
		}
	})
}
