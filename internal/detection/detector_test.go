// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	probability float64
	err         error
}

func (s stubClassifier) Classify(ctx context.Context, sample Sample) (*aidebt.MLResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &aidebt.MLResult{Probability: s.probability, ModelVersion: "stub"}, nil
}

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(l)
}

func TestDetector_AnalyzeFile_AILinesNeverExceedTotal(t *testing.T) {
	d := NewDetector(stubClassifier{probability: 0.9}, 2, testLogger())

	r := d.AnalyzeFile(context.Background(), source.FileInput{
		Path:           "sample.go",
		Language:       "go",
		Content:        sampleGo,
		CommitMessages: []string{"Co-authored-by: Copilot <x@y>"},
	})

	assert.Equal(t, aidebt.DetectionMethod("metadata+style+ml"), r.Detection.Method)
	assert.Equal(t, 13, r.TotalLines)
	assert.LessOrEqual(t, r.AILines, r.TotalLines)
	assert.Equal(t, aidebt.RiskHigh, r.RiskLevel)
}

func TestDetector_AnalyzeFile_ClassifierErrorIsNotFatal(t *testing.T) {
	d := NewDetector(stubClassifier{err: errors.New("boom")}, 2, testLogger())

	r := d.AnalyzeFile(context.Background(), source.FileInput{Path: "sample.go", Content: sampleGo})

	assert.Equal(t, aidebt.DetectionMethod("style"), r.Detection.Method)
}

func TestDetector_AnalyzeFile_NoSignals(t *testing.T) {
	d := NewDetector(nil, 2, testLogger())

	r := d.AnalyzeFile(context.Background(), source.FileInput{Path: "tiny.go", Content: "package x\n"})

	assert.Equal(t, aidebt.DetectionMethodNone, r.Detection.Method)
	assert.True(t, r.Detection.NeedsReview)
	assert.Zero(t, r.AILines)
	assert.Equal(t, 1, r.TotalLines)
}

func TestDetector_AnalyzeFiles_PreservesOrder(t *testing.T) {
	d := NewDetector(nil, 3, testLogger())
	var files []source.FileInput
	for i := 0; i < 20; i++ {
		files = append(files, source.FileInput{Path: fmt.Sprintf("f%02d.go", i), Content: sampleGo})
	}

	results, err := d.AnalyzeFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, files[i].Path, r.Path)
	}
}

func TestDetector_AnalyzeFiles_Cancelled(t *testing.T) {
	d := NewDetector(nil, 1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.AnalyzeFiles(ctx, []source.FileInput{{Path: "a.go", Content: sampleGo}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetector_AnalyzePullRequest(t *testing.T) {
	d := NewDetector(nil, 1, testLogger())
	merged := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	r := d.AnalyzePullRequest(source.PullRequestInput{
		Number:     7,
		Title:      "Refactor handlers",
		Author:     "alice",
		HeadBranch: "copilot/refactor-handlers",
		State:      aidebt.PRStateMerged,
		Reviews: []source.Review{
			{Reviewer: "alice", State: "COMMENTED"},
			{Reviewer: "dependabot[bot]", State: "APPROVED", Bot: true},
		},
		MergedAt: &merged,
	})

	assert.True(t, r.AIGenerated)
	assert.False(t, r.HumanReviewed, "self reviews and bot reviews do not count")
	assert.Equal(t, 2, r.ReviewCount)
	assert.Empty(t, r.Reviewers)
}
