// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataMatcher_CoAuthorTrailer(t *testing.T) {
	m := NewMetadataMatcher()

	r := m.Match([]string{"Add parser\n\nCo-authored-by: Copilot <copilot@github.com>"}, "", nil)

	assert.True(t, r.Matched)
	assert.Equal(t, "co-author-trailer", r.Source)
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
}

func TestMetadataMatcher_PicksStrongestRule(t *testing.T) {
	m := NewMetadataMatcher()

	r := m.Match([]string{"tried chatgpt for this", "Generated with Cursor"}, "", nil)

	assert.Equal(t, "generated-marker", r.Source)
}

func TestMetadataMatcher_BranchAndLabel(t *testing.T) {
	m := NewMetadataMatcher()

	assert.Equal(t, "bot-branch", m.Match(nil, "copilot/fix-123", nil).Source)
	assert.Equal(t, "ai-label", m.Match(nil, "feature/x", []string{"AI-generated"}).Source)
}

func TestMetadataMatcher_NoMatch(t *testing.T) {
	m := NewMetadataMatcher()

	r := m.Match([]string{"fix off-by-one in pagination"}, "main", []string{"bug"})

	assert.False(t, r.Matched)
	assert.Zero(t, r.Confidence)
}
