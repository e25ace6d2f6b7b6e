package mcpserver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"first page", 0, 2, []int{0, 1}},
		{"middle page", 2, 2, []int{2, 3}},
		{"last partial page", 4, 2, []int{4}},
		{"offset past end", 5, 2, nil},
		{"negative offset", -1, 2, nil},
		{"default limit", 0, 0, items},
		{"overflowing limit", 1, int(^uint(0) >> 1), []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error returns empty string", nil, ""},
		{
			name: "strips absolute path",
			err:  fmt.Errorf("failed to open /home/user/secret/api.yaml: no such file"),
			want: "failed to open <path>: no such file",
		},
		{
			name: "preserves non-path content",
			err:  fmt.Errorf("parameter %q failed", "limit"),
			want: `parameter "limit" failed`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}
