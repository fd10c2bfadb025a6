package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name        string
		done, total int
		width       int
		filled      int
		label       string
	}{
		{"nothing done", 0, 3, 6, 0, "0/3 done"},
		{"one of three", 1, 3, 6, 2, "1/3 done"},
		{"all done", 3, 3, 6, 6, "3/3 done"},
		{"over total clamps", 5, 3, 6, 6, "3/3 done"},
		{"negative clamps", -1, 3, 6, 0, "0/3 done"},
		{"no tasks", 0, 0, 4, 0, "0/0 done"},
		{"tiny width clamps to 2", 1, 2, 1, 1, "1/2 done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.done, tt.total, tt.width))
			assert.True(t, strings.HasSuffix(got, "] "+tt.label), got)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, max(tt.width, 2)-tt.filled, strings.Count(got, emptyBlock))
		})
	}
}
