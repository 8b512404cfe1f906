package chat

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// InjectionCheckResult holds the result of a basic injection heuristic check.
type InjectionCheckResult struct {
	IsSafe           bool
	DetectedKeywords []string
	Reason           string
}

// BasicInjectionKeywords contains phrases that suggest a prompt injection attempt in a
// visitor's message.
var BasicInjectionKeywords = []string{
	"ignore previous",
	"ignore all",
	"disregard above",
	"forget everything",
	"system prompt",
	"new instructions",
	"act as",
	"pretend",
	"roleplay",
}

// CheckBasicHeuristics performs a keyword check for obvious injection attempts. It is a
// logging aid only; the system prompt restricts answers to the portfolio data.
func CheckBasicHeuristics(text string) *InjectionCheckResult {
	lowerText := strings.ToLower(text)
	var detectedKeywords []string

	for _, keyword := range BasicInjectionKeywords {
		if strings.Contains(lowerText, keyword) {
			detectedKeywords = append(detectedKeywords, keyword)
		}
	}

	if len(detectedKeywords) > 0 {
		return &InjectionCheckResult{
			IsSafe:           false,
			DetectedKeywords: detectedKeywords,
			Reason:           "detected potential injection keywords: " + strings.Join(detectedKeywords, ", "),
		}
	}

	return &InjectionCheckResult{IsSafe: true}
}

// logInjectionWarning logs a warning if suspicious content is detected. It does not
// block the message.
func logInjectionWarning(logger *zap.Logger, result *InjectionCheckResult, source string) {
	if !result.IsSafe {
		logger.Warn("potential prompt injection",
			zap.String("source", source),
			zap.Strings("keywords", result.DetectedKeywords))
	}
}

var commonInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|everything)`),
	regexp.MustCompile(`(?i)new\s+instructions?:`),
}

// StripInjectionAttempts replaces common injection patterns in text with [REDACTED].
func StripInjectionAttempts(text string) string {
	result := text
	for _, pattern := range commonInjectionPatterns {
		result = pattern.ReplaceAllString(result, "[REDACTED]")
	}
	return result
}
