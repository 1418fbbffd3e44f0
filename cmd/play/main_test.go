package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0.0, winRate(0, 0))
	assert.Equal(t, 0.0, winRate(5, 0))
	assert.Equal(t, 0.0, winRate(0, 4))
	assert.Equal(t, 50.0, winRate(2, 4))
	assert.Equal(t, 100.0, winRate(4, 4))
}
