// Package prompt turns story requests into chat messages for the inference endpoint.
package prompt

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Token budgets per request kind.
const (
	GenerateMaxTokens = 8000
	RewriteMaxTokens  = 3000
	SampleMaxTokens   = 800
)

const (
	storytellerPersona = "You are a creative storyteller for children. "
	samplePersona      = "You are a helpful assistant for kids."
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a complete model instruction.
type Conversation struct {
	Messages  []Message
	MaxTokens int
}

// System returns the content of the first system message.
func (c Conversation) System() string {
	for _, m := range c.Messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

// AgeGuidance returns the writing guidance for the reader's age.
func AgeGuidance(age int) string {
	switch {
	case age <= 5:
		return "Create simple, colorful stories with clear lessons. Use basic vocabulary and short sentences."
	case age <= 8:
		return "Create engaging stories with simple adventures. Use age-appropriate vocabulary and moderate complexity."
	case age <= 12:
		return "Create interesting stories with meaningful themes. Use varied vocabulary and good narrative structure."
	default:
		return "Create compelling stories with deeper themes. Use rich vocabulary and sophisticated storytelling."
	}
}

func Generate(userPrompt string, age int) Conversation {
	user := fmt.Sprintf("Story request: %s\n\n"+
		"Write a complete, engaging story based on this request. "+
		"Make it appropriate and enjoyable for the target age group.", userPrompt)

	return Conversation{
		Messages: []Message{
			{Role: RoleSystem, Content: storytellerPersona + AgeGuidance(age)},
			{Role: RoleUser, Content: user},
		},
		MaxTokens: GenerateMaxTokens,
	}
}

func Rewrite(originalStory, instruction string, age int) Conversation {
	user := fmt.Sprintf("Original Story:\n%s\n\n"+
		"Rewrite Instruction: %s\n\n"+
		"Rewrite the story according to the instruction above. "+
		"Keep the main characters and setting the same. "+
		"Ensure the rewritten story has a proper and natural ending. "+
		"Do NOT stop mid-sentence.", originalStory, instruction)

	return Conversation{
		Messages: []Message{
			{Role: RoleSystem, Content: storytellerPersona + AgeGuidance(age)},
			{Role: RoleUser, Content: user},
		},
		MaxTokens: RewriteMaxTokens,
	}
}

func Sample(userPrompt string) Conversation {
	return Conversation{
		Messages: []Message{
			{Role: RoleSystem, Content: samplePersona},
			{Role: RoleUser, Content: userPrompt},
		},
		MaxTokens: SampleMaxTokens,
	}
}

// Sample prompts must name a reader between these ages.
const (
	MinSampleAge = 1
	MaxSampleAge = 10
)

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d{1,2})\s*[- ]\s*year\s*[- ]\s*old\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:years?\s*old|year\s*old|yr\s*old|y/o)\b`),
	regexp.MustCompile(`(?i)\bage\s*(\d{1,2})\b`),
	regexp.MustCompile(`(?i)\bfor\s+(\d{1,2})\s*(?:years?\s*old|year\s*old)?\b`),
}

// ExtractAge finds the reader's age in a free-form prompt. Each pattern is tried in order;
// a pattern whose first match falls outside MinSampleAge..MaxSampleAge is skipped.
func ExtractAge(text string) (int, bool) {
	for _, pattern := range agePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if age >= MinSampleAge && age <= MaxSampleAge {
			return age, true
		}
	}
	return 0, false
}
