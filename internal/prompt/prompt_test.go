package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeGuidanceTiers(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{age: 1, want: "basic vocabulary"},
		{age: 5, want: "basic vocabulary"},
		{age: 6, want: "simple adventures"},
		{age: 8, want: "simple adventures"},
		{age: 9, want: "meaningful themes"},
		{age: 12, want: "meaningful themes"},
		{age: 13, want: "deeper themes"},
		{age: 18, want: "deeper themes"},
	}

	for _, tt := range tests {
		assert.Contains(t, AgeGuidance(tt.age), tt.want, "age %d", tt.age)
	}
}

func TestGenerate(t *testing.T) {
	conv := Generate("a shy dragon", 4)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, GenerateMaxTokens, conv.MaxTokens)
	assert.Equal(t, RoleSystem, conv.Messages[0].Role)
	assert.True(t, strings.HasPrefix(conv.System(), "You are a creative storyteller for children. Create simple"))
	assert.Equal(t, RoleUser, conv.Messages[1].Role)
	assert.True(t, strings.HasPrefix(conv.Messages[1].Content, "Story request: a shy dragon\n\n"))
}

func TestRewrite(t *testing.T) {
	conv := Rewrite("Once upon a time.", "make it funnier", 10)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, RewriteMaxTokens, conv.MaxTokens)
	assert.Contains(t, conv.System(), "meaningful themes")
	user := conv.Messages[1].Content
	assert.True(t, strings.HasPrefix(user, "Original Story:\nOnce upon a time.\n\nRewrite Instruction: make it funnier\n\n"))
	assert.Contains(t, user, "Keep the main characters and setting the same.")
	assert.Contains(t, user, "Do NOT stop mid-sentence.")
}

func TestSample(t *testing.T) {
	conv := Sample("hello")

	assert.Equal(t, SampleMaxTokens, conv.MaxTokens)
	assert.Equal(t, "You are a helpful assistant for kids.", conv.System())
	assert.Equal(t, "hello", conv.Messages[1].Content)
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{text: "a story for a 7-year-old", want: 7, ok: true},
		{text: "my son is 5 years old", want: 5, ok: true},
		{text: "Emma, age 4", want: 4, ok: true},
		{text: "a tale for 9", want: 9, ok: true},
		{text: "a 3 y/o reader", want: 3, ok: true},
		{text: "a story for a 15-year-old", want: 0, ok: false},
		{text: "15 year old brother and age 6 sister", want: 6, ok: true},
		{text: "no age here", want: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractAge(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
