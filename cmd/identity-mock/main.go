package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
)

func main() {
	var (
		port = flag.String("port", "9097", "port to listen on")
		data = flag.String("data", "mock-identity.json", "path to token map file")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read token map: %v", err)
	}

	// Tokens are matched verbatim. The API pre-parses bearer tokens as
	// JWTs before calling here, so map keys should be well formed JWTs
	// (an unsigned one is enough for local development).
	var tokens map[string]string
	if err := json.Unmarshal(file, &tokens); err != nil {
		log.Fatalf("parse token map: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		id, ok := tokens[token]
		if !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"id": id}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock identity listening on %s (%d tokens)", addr, len(tokens))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
