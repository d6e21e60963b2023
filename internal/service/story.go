// Story 생성/재작성 비즈니스 로직
//
// 처리 흐름:
//  1. 입력 검증 (나이 범위, 공백 문자열)
//  2. 나이에 맞는 프롬프트 구성 (prompt 패키지)
//  3. 모델 호출 (Completer)
//  4. 안전 필터 검사, 걸리면 거절 문구로 대체

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kiddoland/backend/internal/prompt"
	"github.com/kiddoland/backend/internal/safety"
)

const (
	MinAge = 1
	MaxAge = 18
)

const (
	GenerateRefusal = "I'm sorry, but I cannot generate this story as it contains inappropriate content for children. Please try a different prompt."
	RewriteRefusal  = "I'm sorry, but the rewritten story contains inappropriate content for children. Please try a different instruction."
	SampleRefusal   = "I'm sorry, but I cannot answer this as it contains inappropriate content for children. Please try a different prompt."
)

var (
	ErrInvalidAge       = errors.New("age must be between 1 and 18")
	ErrEmptyPrompt      = errors.New("prompt cannot be empty")
	ErrEmptyStory       = errors.New("original story cannot be empty")
	ErrEmptyInstruction = errors.New("rewrite instruction cannot be empty")
	ErrUnsafePrompt     = errors.New("prompt contains unsafe content")
	ErrMissingChildAge  = errors.New("child age is required in the prompt")
	ErrMissingChildName = errors.New("child name is required in the prompt")
)

// Completer sends a conversation to a hosted model and returns the completion text.
type Completer interface {
	Complete(ctx context.Context, conv prompt.Conversation) (string, error)
}

type StoryService struct {
	model  Completer
	logger zerolog.Logger
}

func NewStoryService(model Completer, logger zerolog.Logger) *StoryService {
	return &StoryService{
		model:  model,
		logger: logger.With().Str("component", "story").Logger(),
	}
}

func (s *StoryService) Generate(ctx context.Context, age int, userPrompt string) (string, error) {
	if err := validateAge(age); err != nil {
		return "", err
	}
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return "", ErrEmptyPrompt
	}

	return s.complete(ctx, "generate", age, prompt.Generate(userPrompt, age), GenerateRefusal)
}

func (s *StoryService) Rewrite(ctx context.Context, age int, originalStory, instruction string) (string, error) {
	if err := validateAge(age); err != nil {
		return "", err
	}
	originalStory = strings.TrimSpace(originalStory)
	if originalStory == "" {
		return "", ErrEmptyStory
	}
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", ErrEmptyInstruction
	}

	return s.complete(ctx, "rewrite", age, prompt.Rewrite(originalStory, instruction, age), RewriteRefusal)
}

// Sample answers a short free-form prompt. The prompt itself must be safe and mention
// the child's age and name.
func (s *StoryService) Sample(ctx context.Context, userPrompt string) (string, error) {
	cleaned := safety.CleanText(userPrompt)
	if cleaned == "" {
		return "", ErrEmptyPrompt
	}
	if verdict := safety.Check(cleaned); !verdict.Safe {
		s.logger.Info().Interface("categories", verdict.Categories()).Msg("unsafe sample prompt rejected")
		return "", ErrUnsafePrompt
	}
	age, ok := prompt.ExtractAge(cleaned)
	if !ok {
		return "", ErrMissingChildAge
	}
	if _, ok := safety.ExtractChildName(cleaned); !ok {
		return "", ErrMissingChildName
	}

	return s.complete(ctx, "sample", age, prompt.Sample(cleaned), SampleRefusal)
}

func (s *StoryService) complete(ctx context.Context, kind string, age int, conv prompt.Conversation, refusal string) (string, error) {
	start := time.Now()
	text, err := s.model.Complete(ctx, conv)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Int("age", age).Dur("latency", time.Since(start)).Msg("model call failed")
		return "", err
	}

	if verdict := safety.Check(text); !verdict.Safe {
		s.logger.Warn().
			Str("kind", kind).
			Int("age", age).
			Strs("reasons", safety.Reasons(text)).
			Msg("model output failed safety check")
		return refusal, nil
	}

	s.logger.Info().
		Str("kind", kind).
		Int("age", age).
		Int("output_chars", len([]rune(text))).
		Dur("latency", time.Since(start)).
		Msg("story completed")
	return text, nil
}

func validateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return ErrInvalidAge
	}
	return nil
}
