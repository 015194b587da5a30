package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type catalogItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title,omitempty"`
	Name        string  `json:"name,omitempty"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
}

type resultsPage struct {
	Page         int           `json:"page"`
	Results      []catalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

func main() {
	var (
		port = flag.String("port", "9098", "port to listen on")
		data = flag.String("data", "mock-catalog.json", "path to mock data file")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var payload map[string][]catalogItem
	if err := json.Unmarshal(file, &payload); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", searchHandler(payload["movie"]))
	mux.HandleFunc("/search/tv", searchHandler(payload["tv"]))
	mux.HandleFunc("/", itemHandler(payload))

	addr := ":" + *port
	log.Printf("mock catalog listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func searchHandler(items []catalogItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !checkAPIKey(w, r) {
			return
		}
		query := strings.ToLower(r.URL.Query().Get("query"))
		matches := make([]catalogItem, 0)
		for _, item := range items {
			name := item.Title
			if name == "" {
				name = item.Name
			}
			if query == "" || strings.Contains(strings.ToLower(name), query) {
				matches = append(matches, item)
			}
		}
		writeJSON(w, resultsPage{Page: 1, Results: matches, TotalPages: 1, TotalResults: len(matches)})
	}
}

// itemHandler serves /{type}/{id} and /{type}/{id}/similar.
func itemHandler(payload map[string][]catalogItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !checkAPIKey(w, r) {
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) < 2 || len(parts) > 3 {
			http.NotFound(w, r)
			return
		}
		items, ok := payload[parts[0]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if len(parts) == 3 {
			if parts[2] != "similar" {
				http.NotFound(w, r)
				return
			}
			similar := make([]catalogItem, 0)
			for _, item := range items {
				if item.ID != id {
					similar = append(similar, item)
				}
			}
			writeJSON(w, resultsPage{Page: 1, Results: similar, TotalPages: 1, TotalResults: len(similar)})
			return
		}

		for _, item := range items {
			if item.ID == id {
				writeJSON(w, detailsPayload(item))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	}
}

func detailsPayload(item catalogItem) map[string]interface{} {
	return map[string]interface{}{
		"id":           item.ID,
		"title":        item.Title,
		"name":         item.Name,
		"overview":     item.Overview,
		"release_date": item.ReleaseDate,
		"vote_average": item.VoteAverage,
		"credits":      map[string]interface{}{"cast": []interface{}{}, "crew": []interface{}{}},
		"videos":       map[string]interface{}{"results": []interface{}{}},
		"images":       map[string]interface{}{"backdrops": []interface{}{}, "posters": []interface{}{}},
	}
}

func checkAPIKey(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Query().Get("api_key") == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status_code":7,"status_message":"Invalid API key."}`)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
