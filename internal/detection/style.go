// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"math"
	"regexp"
	"strings"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

// MinStyleLines is the number of non-blank lines below which a fingerprint
// is too noisy to report.
const MinStyleLines = 5

var (
	identPattern    = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\b`)
	camelPattern    = regexp.MustCompile(`^[a-z]+[A-Z][A-Za-z0-9]*$`)
	snakePattern    = regexp.MustCompile(`^[a-z]+(_[a-z0-9]+)+$`)
	funcDeclPattern = regexp.MustCompile(`^\s*(func|def|function|async\s+function|fn|(public|private|protected|internal)(\s+static)?\s+[\w<>\[\]]+\s+\w+\s*\()`)
)

var genericIdentifiers = map[string]struct{}{
	"result": {}, "results": {}, "data": {}, "value": {}, "values": {}, "item": {}, "items": {},
	"temp": {}, "tmp": {}, "obj": {}, "res": {}, "response": {}, "output": {}, "input": {},
	"helper": {}, "handler": {}, "process": {}, "util": {}, "utils": {}, "info": {}, "element": {},
}

var commentPrefixes = []string{"//", "#", "/*", "*", "--", "\"\"\"", "'''"}

// StyleAnalyzer computes the stylistic fingerprint of source text
type StyleAnalyzer struct{}

func NewStyleAnalyzer() *StyleAnalyzer {
	return &StyleAnalyzer{}
}

// Analyze returns the fingerprint of content, or false when there are too
// few lines to say anything.
func (a *StyleAnalyzer) Analyze(content string) (aidebt.StyleResult, bool) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var nonBlank []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonBlank = append(nonBlank, l)
		}
	}
	if len(nonBlank) < MinStyleLines {
		return aidebt.StyleResult{}, false
	}

	idents := identPattern.FindAllString(content, -1)
	signals := aidebt.StyleSignals{
		CommentDensity:         commentDensity(nonBlank),
		NamingConsistency:      namingConsistency(idents),
		LineLengthUniformity:   lineLengthUniformity(nonBlank),
		BoilerplateRatio:       boilerplateRatio(nonBlank),
		DocCommentCoverage:     docCommentCoverage(lines),
		IndentationConsistency: indentationConsistency(nonBlank),
		BlankLineRegularity:    blankLineRegularity(lines),
		GenericIdentifierRatio: genericIdentifierRatio(idents),
	}
	return normalizeStyle(aidebt.StyleResult{Signals: signals}), true
}

func isComment(line string) bool {
	t := strings.TrimSpace(line)
	for _, p := range commentPrefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// commentDensity saturates at 30% comment lines
func commentDensity(nonBlank []string) float64 {
	comments := 0
	for _, l := range nonBlank {
		if isComment(l) {
			comments++
		}
	}
	return clamp01(float64(comments) / float64(len(nonBlank)) / 0.3)
}

func namingConsistency(idents []string) float64 {
	camel, snake := 0, 0
	for _, id := range idents {
		switch {
		case camelPattern.MatchString(id):
			camel++
		case snakePattern.MatchString(id):
			snake++
		}
	}
	total := camel + snake
	if total == 0 {
		return 0
	}
	return float64(max(camel, snake)) / float64(total)
}

func lineLengthUniformity(nonBlank []string) float64 {
	lengths := make([]float64, len(nonBlank))
	for i, l := range nonBlank {
		lengths[i] = float64(len(strings.TrimSpace(l)))
	}
	return 1 - clamp01(coefficientOfVariation(lengths))
}

// boilerplateRatio is the share of lines that repeat verbatim elsewhere in
// the file, saturating at 40%.
func boilerplateRatio(nonBlank []string) float64 {
	counts := make(map[string]int, len(nonBlank))
	for _, l := range nonBlank {
		t := strings.TrimSpace(l)
		if len(t) <= 2 { // braces and brackets
			continue
		}
		counts[t]++
	}
	repeated := 0
	for _, n := range counts {
		if n > 1 {
			repeated += n
		}
	}
	return clamp01(float64(repeated) / float64(len(nonBlank)) / 0.4)
}

func docCommentCoverage(lines []string) float64 {
	decls, documented := 0, 0
	for i, l := range lines {
		if !funcDeclPattern.MatchString(l) {
			continue
		}
		decls++
		if i > 0 && isComment(lines[i-1]) {
			documented++
			continue
		}
		// python docstrings follow the declaration
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.HasPrefix(next, `"""`) || strings.HasPrefix(next, `'''`) {
				documented++
			}
		}
	}
	if decls == 0 {
		return 0
	}
	return float64(documented) / float64(decls)
}

func indentationConsistency(nonBlank []string) float64 {
	tabs, spaces := 0, 0
	for _, l := range nonBlank {
		switch {
		case strings.HasPrefix(l, "\t"):
			tabs++
		case strings.HasPrefix(l, " "):
			spaces++
		}
	}
	total := tabs + spaces
	if total == 0 {
		return 1
	}
	return float64(max(tabs, spaces)) / float64(total)
}

// blankLineRegularity measures how evenly blank lines split the file into blocks
func blankLineRegularity(lines []string) float64 {
	var blocks []float64
	run := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if run > 0 {
				blocks = append(blocks, float64(run))
			}
			run = 0
			continue
		}
		run++
	}
	if run > 0 {
		blocks = append(blocks, float64(run))
	}
	if len(blocks) < 2 {
		return 0
	}
	return 1 - clamp01(coefficientOfVariation(blocks))
}

// genericIdentifierRatio saturates at 20% generic names
func genericIdentifierRatio(idents []string) float64 {
	if len(idents) == 0 {
		return 0
	}
	generic := 0
	for _, id := range idents {
		if _, ok := genericIdentifiers[strings.ToLower(id)]; ok {
			generic++
		}
	}
	return clamp01(float64(generic) / float64(len(idents)) / 0.2)
}

func coefficientOfVariation(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if mean == 0 {
		return 0
	}
	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return math.Sqrt(sq/float64(len(xs))) / mean
}
