// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package alerts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

func score(s int, zone aidebt.RiskZone) *aidebt.AIDebtScore {
	return &aidebt.AIDebtScore{Score: s, Zone: zone}
}

func categories(alerts []*aidebt.Alert) []aidebt.AlertCategory {
	out := make([]aidebt.AlertCategory, len(alerts))
	for i, a := range alerts {
		out[i] = a.Category
	}
	return out
}

func TestEvaluate_ZoneDowngrade(t *testing.T) {
	e := NewEngine(Rules{})
	repo := "repo-1"

	alerts := e.Evaluate(Evaluation{
		OrganizationID: "org-1",
		RepositoryID:   &repo,
		PreviousScore:  score(82, aidebt.ZoneHealthy),
		CurrentScore:   score(75, aidebt.ZoneCaution),
	})

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, aidebt.CategoryZoneDowngrade, a.Category)
	assert.Equal(t, aidebt.SeverityHigh, a.Severity)
	assert.Equal(t, aidebt.AlertActive, a.Status)
	assert.Equal(t, "org-1", a.OrganizationID)
	assert.Equal(t, &repo, a.RepositoryID)

	var ctx map[string]any
	require.NoError(t, json.Unmarshal(a.Context, &ctx))
	assert.Equal(t, "healthy", ctx["previous_zone"])
	assert.Equal(t, "caution", ctx["current_zone"])
}

func TestEvaluate_ZoneUpgradeOrSameIsQuiet(t *testing.T) {
	e := NewEngine(Rules{})

	assert.Empty(t, e.Evaluate(Evaluation{
		PreviousScore: score(70, aidebt.ZoneCaution),
		CurrentScore:  score(85, aidebt.ZoneHealthy),
	}))
	assert.Empty(t, e.Evaluate(Evaluation{
		PreviousScore: score(70, aidebt.ZoneCaution),
		CurrentScore:  score(65, aidebt.ZoneCaution),
	}))
}

func TestEvaluate_FirstScoreInCriticalAlerts(t *testing.T) {
	e := NewEngine(Rules{})

	alerts := e.Evaluate(Evaluation{CurrentScore: score(40, aidebt.ZoneCritical)})
	assert.Equal(t, []aidebt.AlertCategory{aidebt.CategoryZoneDowngrade}, categories(alerts))

	assert.Empty(t, e.Evaluate(Evaluation{CurrentScore: score(65, aidebt.ZoneCaution)}))
}

func TestEvaluate_ScoreDropWithoutZoneChange(t *testing.T) {
	e := NewEngine(Rules{ScoreDropThreshold: 10})

	alerts := e.Evaluate(Evaluation{
		PreviousScore: score(100, aidebt.ZoneHealthy),
		CurrentScore:  score(89, aidebt.ZoneHealthy),
	})
	require.Len(t, alerts, 1)
	assert.Equal(t, aidebt.CategoryScoreDrop, alerts[0].Category)
	assert.Equal(t, aidebt.SeverityHigh, alerts[0].Severity)

	assert.Empty(t, e.Evaluate(Evaluation{
		PreviousScore: score(100, aidebt.ZoneHealthy),
		CurrentScore:  score(90, aidebt.ZoneHealthy),
	}), "a drop equal to the threshold does not exceed it")
}

func TestEvaluate_DefaultThreshold(t *testing.T) {
	e := NewEngine(Rules{})

	assert.Empty(t, e.Evaluate(Evaluation{
		PreviousScore: score(95, aidebt.ZoneHealthy),
		CurrentScore:  score(80, aidebt.ZoneHealthy),
	}))
	assert.Len(t, e.Evaluate(Evaluation{
		PreviousScore: score(96, aidebt.ZoneHealthy),
		CurrentScore:  score(80, aidebt.ZoneHealthy),
	}), 1)
}

func TestEvaluate_DowngradeAndDropBothFire(t *testing.T) {
	e := NewEngine(Rules{})

	alerts := e.Evaluate(Evaluation{
		PreviousScore: score(85, aidebt.ZoneHealthy),
		CurrentScore:  score(55, aidebt.ZoneCritical),
	})
	assert.ElementsMatch(t,
		[]aidebt.AlertCategory{aidebt.CategoryZoneDowngrade, aidebt.CategoryScoreDrop},
		categories(alerts))
}

func TestEvaluate_UnreviewedMerges(t *testing.T) {
	e := NewEngine(Rules{})

	alerts := e.Evaluate(Evaluation{
		PreviousSummary: &aidebt.ScanSummary{UnreviewedAIMerges: 1},
		CurrentSummary:  &aidebt.ScanSummary{UnreviewedAIMerges: 3},
	})
	require.Len(t, alerts, 1)
	assert.Equal(t, aidebt.CategoryUnreviewedMerges, alerts[0].Category)
	assert.Equal(t, aidebt.SeverityMedium, alerts[0].Severity)

	assert.Empty(t, e.Evaluate(Evaluation{
		PreviousSummary: &aidebt.ScanSummary{UnreviewedAIMerges: 3},
		CurrentSummary:  &aidebt.ScanSummary{UnreviewedAIMerges: 3},
	}))

	first := e.Evaluate(Evaluation{CurrentSummary: &aidebt.ScanSummary{UnreviewedAIMerges: 2}})
	assert.Len(t, first, 1)
}

func TestEvaluate_UnchangedScoreRaisesNothing(t *testing.T) {
	e := NewEngine(Rules{})
	ev := Evaluation{
		PreviousScore:   score(62, aidebt.ZoneCaution),
		CurrentScore:    score(62, aidebt.ZoneCaution),
		PreviousSummary: &aidebt.ScanSummary{UnreviewedAIMerges: 2},
		CurrentSummary:  &aidebt.ScanSummary{UnreviewedAIMerges: 2},
	}

	assert.Empty(t, e.Evaluate(ev))
	assert.Empty(t, e.Evaluate(ev))
}

func TestEvaluate_AtMostOnePerCategory(t *testing.T) {
	e := NewEngine(Rules{ScoreDropThreshold: 1})
	ev := Evaluation{
		PreviousScore:   score(90, aidebt.ZoneHealthy),
		CurrentScore:    score(10, aidebt.ZoneCritical),
		PreviousSummary: &aidebt.ScanSummary{},
		CurrentSummary:  &aidebt.ScanSummary{UnreviewedAIMerges: 5},
	}

	alerts := e.Evaluate(ev)
	seen := map[aidebt.AlertCategory]int{}
	for _, a := range alerts {
		seen[a.Category]++
	}
	assert.Len(t, alerts, 3)
	for cat, n := range seen {
		assert.Equal(t, 1, n, "category %s", cat)
	}

	again := e.Evaluate(ev)
	assert.Len(t, again, 3)
	for i := range again {
		assert.NotSame(t, alerts[i], again[i])
	}
}
