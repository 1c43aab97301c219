package assistant

import (
	"fmt"
	"strings"
)

var greetingKeywords = []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon", "good evening"}

// IsGreeting reports whether text contains any greeting keyword, case-insensitively.
//
// Matching is on substrings, not words, so "this is hilarious" counts as a
// greeting because it contains "hi". Known false positive, kept on purpose.
func IsGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range greetingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func greetingFor(userName string) string {
	if userName != "" {
		return fmt.Sprintf("Hello %s, how can I assist you today?", userName)
	}
	return "Hello! How can I assist you today?"
}

func personalize(text, userName string) string {
	return fmt.Sprintf("Hello %s, %s", userName, text)
}
