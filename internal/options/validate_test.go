package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		set     []bool
		wantErr bool
	}{
		{"none given", nil, true},
		{"none set", []bool{false, false}, true},
		{"one set", []bool{false, true}, false},
		{"only source", []bool{true}, false},
		{"two set", []bool{true, false, true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("pick one", tt.set...)
			if tt.wantErr {
				assert.EqualError(t, err, "pick one")
				return
			}
			assert.NoError(t, err)
		})
	}
}
