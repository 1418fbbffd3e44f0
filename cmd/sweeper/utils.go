package main

import (
	"encoding/json"
	"iter"
	"net/http"
	"strings"
)

// byPiece iterates over the sep-separated pieces of s in order, yielding
// each piece with its index. An empty s still yields one empty piece.
func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// sendJSON marshals v and writes it as an application/json response body.
func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}
