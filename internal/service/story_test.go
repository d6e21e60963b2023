package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiddoland/backend/internal/prompt"
)

type fakeCompleter struct {
	reply string
	err   error
	got   []prompt.Conversation
}

func (f *fakeCompleter) Complete(ctx context.Context, conv prompt.Conversation) (string, error) {
	f.got = append(f.got, conv)
	return f.reply, f.err
}

func TestGenerate(t *testing.T) {
	model := &fakeCompleter{reply: "Once upon a time a bunny found a star."}
	svc := NewStoryService(model, zerolog.Nop())

	story, err := svc.Generate(context.Background(), 4, "  a bunny and a star ")
	require.NoError(t, err)
	assert.Equal(t, "Once upon a time a bunny found a star.", story)

	require.Len(t, model.got, 1)
	conv := model.got[0]
	assert.Equal(t, prompt.GenerateMaxTokens, conv.MaxTokens)
	assert.Contains(t, conv.System(), prompt.AgeGuidance(4))
	assert.Contains(t, conv.Messages[1].Content, "Story request: a bunny and a star\n\n")
}

func TestGenerateValidation(t *testing.T) {
	model := &fakeCompleter{reply: "unused"}
	svc := NewStoryService(model, zerolog.Nop())

	_, err := svc.Generate(context.Background(), 0, "a story")
	require.ErrorIs(t, err, ErrInvalidAge)
	_, err = svc.Generate(context.Background(), 19, "a story")
	require.ErrorIs(t, err, ErrInvalidAge)
	_, err = svc.Generate(context.Background(), 7, " \n\t ")
	require.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Empty(t, model.got)
}

func TestGenerateUnsafeOutputIsRefused(t *testing.T) {
	svc := NewStoryService(&fakeCompleter{reply: "The pirate grabbed a knife."}, zerolog.Nop())

	story, err := svc.Generate(context.Background(), 9, "a pirate adventure")
	require.NoError(t, err)
	assert.Equal(t, GenerateRefusal, story)
}

func TestGenerateModelError(t *testing.T) {
	upstream := errors.New("upstream down")
	svc := NewStoryService(&fakeCompleter{err: upstream}, zerolog.Nop())

	_, err := svc.Generate(context.Background(), 9, "a pirate adventure")
	require.ErrorIs(t, err, upstream)
}

func TestRewrite(t *testing.T) {
	model := &fakeCompleter{reply: "A kinder dragon shared its gold."}
	svc := NewStoryService(model, zerolog.Nop())

	story, err := svc.Rewrite(context.Background(), 10, "A dragon kept its gold.", "make the dragon kind")
	require.NoError(t, err)
	assert.Equal(t, "A kinder dragon shared its gold.", story)
	require.Len(t, model.got, 1)
	assert.Equal(t, prompt.RewriteMaxTokens, model.got[0].MaxTokens)

	_, err = svc.Rewrite(context.Background(), 10, "   ", "make it kind")
	require.ErrorIs(t, err, ErrEmptyStory)
	_, err = svc.Rewrite(context.Background(), 10, "A story.", "  ")
	require.ErrorIs(t, err, ErrEmptyInstruction)
	_, err = svc.Rewrite(context.Background(), 25, "A story.", "shorter")
	require.ErrorIs(t, err, ErrInvalidAge)
}

func TestRewriteUnsafeOutputIsRefused(t *testing.T) {
	svc := NewStoryService(&fakeCompleter{reply: "And then there was blood everywhere."}, zerolog.Nop())

	story, err := svc.Rewrite(context.Background(), 12, "A calm story.", "add action")
	require.NoError(t, err)
	assert.Equal(t, RewriteRefusal, story)
}

func TestSample(t *testing.T) {
	model := &fakeCompleter{reply: "Hello Emma! Did you know the Moon has no air?"}
	svc := NewStoryService(model, zerolog.Nop())

	out, err := svc.Sample(context.Background(), "Say hello to a curious 7-year-old named Emma\x00 who loves   space.")
	require.NoError(t, err)
	assert.Equal(t, "Hello Emma! Did you know the Moon has no air?", out)

	require.Len(t, model.got, 1)
	conv := model.got[0]
	assert.Equal(t, prompt.SampleMaxTokens, conv.MaxTokens)
	assert.Equal(t, "Say hello to a curious 7-year-old named Emma who loves space.", conv.Messages[1].Content)
}

func TestSampleRejections(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   error
	}{
		{"empty", " \t ", ErrEmptyPrompt},
		{"unsafe", "Tell a 7-year-old named Emma about a gun.", ErrUnsafePrompt},
		{"no age", "Say hello to Emma.", ErrMissingChildAge},
		{"age out of range", "Say hello to a 14-year-old named Emma.", ErrMissingChildAge},
		{"no name", "Say hello to a 7-year-old.", ErrMissingChildName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeCompleter{reply: "unused"}
			svc := NewStoryService(model, zerolog.Nop())

			_, err := svc.Sample(context.Background(), tt.prompt)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, model.got)
		})
	}
}

func TestSampleUnsafeOutputIsRefused(t *testing.T) {
	svc := NewStoryService(&fakeCompleter{reply: "Damn, that is cool."}, zerolog.Nop())

	out, err := svc.Sample(context.Background(), "Tell a 6-year-old named Leo a fun fact.")
	require.NoError(t, err)
	assert.Equal(t, SampleRefusal, out)
}
