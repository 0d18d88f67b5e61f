package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQueryName(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"select", "SELECT id FROM videos", "SELECT"},
		{"leading whitespace", "\n\t\tINSERT INTO boosts (video_id) VALUES ($1)", "INSERT"},
		{"single word", "COMMIT", "COMMIT"},
		{"empty", "", "unknown"},
		{"whitespace only", "  \n ", "unknown"},
		{"long single token truncated", "averyverylongsingletokenwithoutspaces", "averyverylongsinglet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractQueryName(tt.sql))
		})
	}
}
