package safety

import (
	"regexp"
	"strings"
	"unicode"
)

// CleanText removes control characters and collapses whitespace before text is sent to a model.
func CleanText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// 이름 앞에 오는 표현은 대소문자를 구분하지 않지만, 이름 자체는 대문자로 시작해야 한다.
var childNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?i:named|called|name is)\s+([A-Z][A-Za-z'-]{1,29})\b`),
	regexp.MustCompile(`\b(?i:for)\s+([A-Z][A-Za-z'-]{1,29})\b`),
	regexp.MustCompile(`\b([A-Z][A-Za-z'-]{1,29}),?\s+(?i:age|aged)\s+\d{1,2}\b`),
	regexp.MustCompile(`\b([A-Z][A-Za-z'-]{1,29}),?\s+(?i:a|an)\s+\d{1,2}\s*-?\s*(?i:year)`),
}

var notNames = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "my": {}, "our": {}, "his": {}, "her": {}, "their": {},
	"kids": {}, "kid": {}, "children": {}, "child": {}, "boys": {}, "girls": {}, "everyone": {},
	"age": {}, "aged": {}, "story": {}, "write": {}, "please": {}, "tell": {}, "say": {},
	"once": {}, "today": {}, "tonight": {}, "bedtime": {}, "me": {}, "us": {}, "them": {},
	"hello": {}, "hi": {},
}

// ExtractChildName returns the first plausible child name mentioned in prompt,
// e.g. "for Emma", "named Leo" or "Mia, age 6".
func ExtractChildName(prompt string) (string, bool) {
	for _, pattern := range childNamePatterns {
		for _, m := range pattern.FindAllStringSubmatch(prompt, -1) {
			name := strings.Trim(m[1], "'-")
			if len(name) < 2 {
				continue
			}
			if _, skip := notNames[strings.ToLower(name)]; skip {
				continue
			}
			return name, true
		}
	}
	return "", false
}
