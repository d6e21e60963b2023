package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "", CleanText(" \n\t "))
	assert.Equal(t, "hello brave knight", CleanText("  hello\x00 brave\r\n\tknight  "))
}

func TestExtractChildName(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
		ok     bool
	}{
		{prompt: "Tell a story for Emma, age 7", want: "Emma", ok: true},
		{prompt: "a bedtime story for a 5 year old named Leo", want: "Leo", ok: true},
		{prompt: "Mia, age 6, loves trains", want: "Mia", ok: true},
		{prompt: "Noah, a 7-year-old, wants a pirate tale", want: "Noah", ok: true},
		{prompt: "her name is Zoe and she is 4", want: "Zoe", ok: true},
		{prompt: "Write a story for The kids, age 7", want: "", ok: false},
		{prompt: "write a story for a 7-year-old", want: "", ok: false},
		{prompt: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			got, ok := ExtractChildName(tt.prompt)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
