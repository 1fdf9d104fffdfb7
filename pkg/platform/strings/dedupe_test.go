package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil slice", input: nil, expected: nil},
		{name: "only blanks", input: []string{"", "  "}, expected: []string{}},
		{name: "trims whitespace", input: []string{" a:9092 ", "b:9092 "}, expected: []string{"a:9092", "b:9092"}},
		{name: "keeps first occurrence order", input: []string{"b", "a", "b", " a"}, expected: []string{"b", "a"}},
		{name: "case sensitive", input: []string{"Broker", "broker"}, expected: []string{"Broker", "broker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
