package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateInChina(t *testing.T) {
	// UTC 16:00 已是东八区次日
	assert.Equal(t, "2026-09-02", FormatDateInChina(time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-09-01", FormatDateInChina(time.Date(2026, 9, 1, 15, 59, 0, 0, time.UTC)))
	assert.Equal(t, 8*60*60, func() int { _, off := ToChina(time.Now()).Zone(); return off }())
}
