// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package detection

import (
	"context"
	"math"
	"strings"

	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is used when a Detector is built with a non-positive limit
const DefaultParallelism = 8

// Detector turns fetched file and pull request data into scored results
type Detector struct {
	metadata    *MetadataMatcher
	style       *StyleAnalyzer
	classifier  Classifier
	parallelism int
	log         *logrus.Entry
}

// NewDetector creates a detector. classifier may be nil.
func NewDetector(classifier Classifier, parallelism int, log *logrus.Entry) *Detector {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}
	return &Detector{
		metadata:    NewMetadataMatcher(),
		style:       NewStyleAnalyzer(),
		classifier:  classifier,
		parallelism: parallelism,
		log:         log,
	}
}

// AnalyzeFile gathers evidence for one file and combines it
func (d *Detector) AnalyzeFile(ctx context.Context, in source.FileInput) aidebt.FileResult {
	var evidence []Evidence

	if len(in.CommitMessages) > 0 || in.Branch != "" {
		evidence = append(evidence, MetadataEvidence{Result: d.metadata.Match(in.CommitMessages, in.Branch, nil)})
	}
	if style, ok := d.style.Analyze(in.Content); ok {
		evidence = append(evidence, StyleEvidence{Result: style})
	}
	if d.classifier != nil && in.Content != "" {
		ml, err := d.classifier.Classify(ctx, Sample{Path: in.Path, Language: in.Language, Content: in.Content})
		if err != nil {
			d.log.WithError(err).WithField("path", in.Path).Debug("classifier unavailable, continuing without ML signal")
		} else if ml != nil {
			evidence = append(evidence, MLEvidence{Result: *ml})
		}
	}

	result := Combine(evidence...)
	total := countLines(in.Content)
	ai := 0
	if result.Method != aidebt.DetectionMethodNone {
		ai = int(math.Round(float64(total) * result.CombinedProbability))
	}

	return aidebt.FileResult{
		Path:       in.Path,
		Language:   in.Language,
		TotalLines: total,
		AILines:    ai,
		Detection:  result,
		RiskLevel:  result.RiskLevel,
	}
}

// AnalyzeFiles scores files concurrently. Output order matches input order.
// The only error is context cancellation.
func (d *Detector) AnalyzeFiles(ctx context.Context, files []source.FileInput) ([]aidebt.FileResult, error) {
	results := make([]aidebt.FileResult, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = d.AnalyzeFile(gCtx, files[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzePullRequest scores one pull request from its metadata and added lines
func (d *Detector) AnalyzePullRequest(in source.PullRequestInput) aidebt.PRResult {
	messages := append([]string{in.Title, in.Body}, in.CommitMessages...)
	evidence := []Evidence{MetadataEvidence{Result: d.metadata.Match(messages, in.HeadBranch, in.Labels)}}
	if style, ok := d.style.Analyze(in.AddedLines); ok {
		evidence = append(evidence, StyleEvidence{Result: style})
	}
	result := Combine(evidence...)

	return aidebt.PRResult{
		Number:        in.Number,
		Title:         in.Title,
		Author:        in.Author,
		State:         in.State,
		AIGenerated:   result.RiskLevel == aidebt.RiskHigh,
		AIProbability: result.CombinedProbability,
		HumanReviewed: in.HumanReviewed(),
		ReviewCount:   len(in.Reviews),
		Reviewers:     in.Reviewers(),
		Additions:     in.Additions,
		Deletions:     in.Deletions,
		FilesChanged:  in.ChangedFiles,
		CreatedAt:     in.CreatedAt,
		MergedAt:      in.MergedAt,
	}
}

// AnalyzePullRequests scores pull requests in order
func (d *Detector) AnalyzePullRequests(prs []source.PullRequestInput) []aidebt.PRResult {
	out := make([]aidebt.PRResult, len(prs))
	for i, pr := range prs {
		out[i] = d.AnalyzePullRequest(pr)
	}
	return out
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
