// Package safety implements the soft content filter applied to prompts and model output.
//
// The filter only catches clear violations through whole-word keyword matching. It does not
// try to restrict ordinary storytelling elements such as villains, danger or sadness.
package safety

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type Category string

const (
	CategoryViolence  Category = "violence"
	CategorySexual    Category = "sexual"
	CategoryProfanity Category = "profanity"
	CategoryHarm      Category = "harm"
)

type rule struct {
	category Category
	pattern  *regexp.Regexp
}

var rules = []rule{
	newRule(CategoryViolence, "murder", "kill", "blood", "gore", "torture", "weapon", "gun", "knife", "stab", "shoot"),
	newRule(CategorySexual, "sex", "sexual", "naked", "nude", "porn", "explicit"),
	newRule(CategoryProfanity, "fuck", "shit", "bitch", "damn", "hell", "ass", "crap"),
	newRule(CategoryHarm, "suicide", "drug", "alcohol", "cigarette", "abuse"),
}

// 단어 경계는 유니코드 문자/숫자 기준이다. RE2의 \b는 ASCII만 단어 문자로 본다.
const wordChar = `\p{L}\p{N}_`

func newRule(category Category, keywords ...string) rule {
	return rule{
		category: category,
		pattern: regexp.MustCompile(`(?i)(?:^|[^` + wordChar + `])(` + strings.Join(keywords, "|") +
			`)(?:[^` + wordChar + `]|$)`),
	}
}

// findAll returns every keyword hit. Scanning resumes right after the keyword so a shared
// separator can serve as the boundary of two neighbouring words.
func (r rule) findAll(text string) []string {
	var out []string
	for pos := 0; pos < len(text); {
		loc := r.pattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		out = append(out, text[pos+loc[2]:pos+loc[3]])
		pos += loc[3]
	}
	return out
}

// Match is one category hit with the distinct keywords found, lowercased and sorted.
type Match struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

type Verdict struct {
	Safe    bool    `json:"safe"`
	Matches []Match `json:"matches,omitempty"`
}

func (v Verdict) Categories() []Category {
	out := make([]Category, 0, len(v.Matches))
	for _, m := range v.Matches {
		out = append(out, m.Category)
	}
	return out
}

// Check scans text against every category. Blank text is safe.
func Check(text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{Safe: true}
	}

	var matches []Match
	for _, r := range rules {
		found := r.findAll(text)
		if len(found) == 0 {
			continue
		}
		matches = append(matches, Match{Category: r.category, Keywords: distinctLower(found)})
	}

	return Verdict{Safe: len(matches) == 0, Matches: matches}
}

// IsSafe stops at the first matching category.
func IsSafe(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return false
		}
	}
	return true
}

// Reasons describes why text was flagged, one entry per category. Intended for logs.
func Reasons(text string) []string {
	verdict := Check(text)
	reasons := make([]string, 0, len(verdict.Matches))
	for _, m := range verdict.Matches {
		reasons = append(reasons, fmt.Sprintf("Contains inappropriate keyword: %s", strings.Join(m.Keywords, ", ")))
	}
	return reasons
}

func distinctLower(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		lw := strings.ToLower(w)
		if _, ok := seen[lw]; ok {
			continue
		}
		seen[lw] = struct{}{}
		out = append(out, lw)
	}
	sort.Strings(out)
	return out
}
