package main

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByPiece(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want []string
	}{
		{"empty", "", []string{""}},
		{"single", "s", []string{"s"}},
		{"multiple", "s\nr\na", []string{"s", "r", "a"}},
		{"trailing separator", "s\n", []string{"s", ""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var got []string
			for i, piece := range byPiece(test.s, "\n") {
				assert.Equal(t, len(got), i)
				got = append(got, piece)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestSendJSON(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := sendJSON(w, map[string]int{"count": 3})
	require.NoError(t, err)

	assert.Equal(t, `{"count":3}`, w.Body.String())
	assert.Equal(t, len(w.Body.String()), n)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}
