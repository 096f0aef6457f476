// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"regexp"
	"strings"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// aiTools are the assistant names recognised in commit and PR metadata
var aiTools = `copilot|cursor|codeium|tabnine|chatgpt|gpt-4o?|openai|claude|gemini|devin|aider|codewhisperer|amazon q|windsurf|sweep`

type metadataRule struct {
	source     string
	pattern    *regexp.Regexp
	confidence float64
}

var messageRules = []metadataRule{
	{"co-author-trailer", regexp.MustCompile(`(?im)^co-authored-by:.*\b(` + aiTools + `)\b`), 0.95},
	{"generated-marker", regexp.MustCompile(`(?i)\b(generated|written|created|authored)\s+(by|with|using)\s+(` + aiTools + `)\b`), 0.9},
	{"ai-generated-tag", regexp.MustCompile(`(?i)\bai[- ]generated\b`), 0.85},
	{"tool-mention", regexp.MustCompile(`(?i)\b(` + aiTools + `)\b`), 0.5},
}

var branchRules = []metadataRule{
	{"bot-branch", regexp.MustCompile(`(?i)^(copilot|cursor|devin|sweep|codegen)[/-]`), 0.9},
	{"ai-branch", regexp.MustCompile(`(?i)(^|[/-])ai[/-]`), 0.6},
}

var labelRules = []metadataRule{
	{"ai-label", regexp.MustCompile(`(?i)^(ai[- ]generated|ai[- ]assisted|copilot)$`), 0.9},
}

// MetadataMatcher looks for AI-tool markers in commit messages, branch names
// and pull request labels.
type MetadataMatcher struct{}

func NewMetadataMatcher() *MetadataMatcher {
	return &MetadataMatcher{}
}

// Match returns the strongest marker found. Source names the rule that
// matched; an empty input yields a non-match with zero confidence.
func (m *MetadataMatcher) Match(messages []string, branch string, labels []string) aidebt.MetadataResult {
	best := aidebt.MetadataResult{}

	consider := func(rules []metadataRule, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		for _, rule := range rules {
			if rule.confidence <= best.Confidence {
				continue
			}
			if rule.pattern.MatchString(text) {
				best = aidebt.MetadataResult{Matched: true, Confidence: rule.confidence, Source: rule.source}
			}
		}
	}

	for _, msg := range messages {
		consider(messageRules, msg)
	}
	consider(branchRules, branch)
	for _, label := range labels {
		consider(labelRules, strings.TrimSpace(label))
	}
	return best
}
