package chat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/portfolio-cv/internal/prompts"
	"github.com/jonathan/portfolio-cv/internal/types"
)

// maxAnswerWords is the length the assistant is asked to stay under by default
const maxAnswerWords = 100

// SystemPrompt builds the instruction that confines the assistant to the portfolio data
func SystemPrompt(p *types.Portfolio) (string, error) {
	name := p.Profile.Name
	if name == "" {
		name = "the portfolio owner"
	}

	sections := []struct {
		label string
		value any
	}{
		{"SKILLS", p.Skills},
		{"PROJECTS", p.Projects},
		{"EXPERIENCE", p.Experience},
		{"EDUCATION", p.Education},
		{"ACHIEVEMENTS", p.Achievements},
		{"CERTIFICATIONS", p.Certifications},
	}

	contactRule, err := prompts.Render(prompts.ChatFile, "contact-form", nil)
	if p.Profile.Email != "" {
		contactRule, err = prompts.Render(prompts.ChatFile, "contact-email", map[string]string{"Email": p.Profile.Email})
	}
	if err != nil {
		return "", err
	}
	vars := map[string]string{
		"Name":        name,
		"MaxWords":    strconv.Itoa(maxAnswerWords),
		"ContactRule": contactRule,
	}
	intro, err := prompts.Render(prompts.ChatFile, "system-intro", vars)
	if err != nil {
		return "", err
	}
	instructions, err := prompts.Render(prompts.ChatFile, "system-instructions", vars)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n")
	if p.Summary != "" {
		fmt.Fprintf(&sb, "SUMMARY: %s\n", p.Summary)
	}
	for _, s := range sections {
		data, err := json.Marshal(s.value)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", strings.ToLower(s.label), err)
		}
		fmt.Fprintf(&sb, "%s: %s\n", s.label, data)
	}
	sb.WriteString("\n")
	sb.WriteString(instructions)

	return sb.String(), nil
}

// Greeting is the assistant's opening message, shown before the visitor writes anything
func Greeting(p *types.Portfolio) string {
	first := strings.Fields(p.Profile.Name)
	if len(first) == 0 {
		return prompts.MustGet(prompts.ChatFile, "greeting-anonymous")
	}
	return prompts.Format(prompts.MustGet(prompts.ChatFile, "greeting"), map[string]string{"FirstName": first[0]})
}
