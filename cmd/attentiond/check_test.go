package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingCapabilities(t *testing.T) {
	tests := []struct {
		name string
		caps []string
		want []string
	}{
		{"all present", []string{"body", "actions", "persistence", "icon-static"}, nil},
		{"none", nil, []string{"actions", "persistence", "body"}},
		{"no persistence", []string{"actions", "body"}, []string{"persistence"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, missingCapabilities(tt.caps))
		})
	}
}
