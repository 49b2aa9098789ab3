//go:build !windows

package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetHighPriorityLogsThroughCaller(t *testing.T) {
	var buf bytes.Buffer
	err := setHighPriority(zerolog.New(&buf).Level(zerolog.DebugLevel))
	if err != nil {
		// unprivileged runs cannot lower niceness; nothing is logged then
		assert.Zero(t, buf.Len())
		return
	}
	assert.Contains(t, buf.String(), "process priority raised")
}
