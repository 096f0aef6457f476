// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package github implements the source-control collaborator on top of the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/regrada-ai/aidebt-be/internal/source"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

const (
	defaultMaxFiles = 200
	defaultMaxPRs   = 50
	// files larger than this are skipped rather than downloaded
	maxFileBytes = 512 * 1024
	// commit messages fetched per file for metadata evidence
	commitsPerFile = 5
	maxCommitPages = 10
	perPage        = 100
)

// Provider fetches scan input from GitHub. Every API call waits on a shared
// limiter so one organization cannot exhaust its token's quota in a burst.
type Provider struct {
	client  *gogithub.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

// NewProvider creates a provider authenticated with token. baseURL overrides
// the API endpoint (GitHub Enterprise or tests); empty means api.github.com.
func NewProvider(token, baseURL string, limiter *rate.Limiter, log *logrus.Entry) (*Provider, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gogithub.NewClient(oauth2.NewClient(context.Background(), ts))

	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		client.BaseURL = u
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}

	return &Provider{client: client, limiter: limiter, log: log}, nil
}

func (p *Provider) Name() string { return "github" }

// Fetch gathers files, commit metadata and pull requests for one scan
func (p *Provider) Fetch(ctx context.Context, req source.FetchRequest) (*source.ScanInput, error) {
	if req.MaxFiles <= 0 {
		req.MaxFiles = defaultMaxFiles
	}
	if req.MaxPRs <= 0 {
		req.MaxPRs = defaultMaxPRs
	}

	switch req.Type {
	case aidebt.ScanTypePR:
		return p.fetchPullRequestScan(ctx, req)
	case aidebt.ScanTypeIncremental:
		if req.Since != nil {
			return p.fetchIncremental(ctx, req)
		}
	}
	return p.fetchFull(ctx, req)
}

func (p *Provider) fetchFull(ctx context.Context, req source.FetchRequest) (*source.ScanInput, error) {
	ref := branchName(req.Ref)

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	tree, _, err := p.client.Git.GetTree(ctx, req.Owner, req.Name, ref, true)
	if err != nil {
		return nil, p.wrap(err, "failed to list files")
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" || entry.GetSize() > maxFileBytes || !source.IsAnalyzable(entry.GetPath()) {
			continue
		}
		paths = append(paths, entry.GetPath())
	}
	sort.Strings(paths)
	if len(paths) > req.MaxFiles {
		p.log.WithFields(logrus.Fields{
			"repository": req.Owner + "/" + req.Name,
			"files":      len(paths),
			"limit":      req.MaxFiles,
		}).Warn("repository has more files than the scan limit, truncating")
		paths = paths[:req.MaxFiles]
	}

	files, err := p.files(ctx, req, ref, paths, nil)
	if err != nil {
		return nil, err
	}
	commits, err := p.countCommits(ctx, req.Owner, req.Name, ref)
	if err != nil {
		return nil, err
	}
	prs, err := p.recentPullRequests(ctx, req.Owner, req.Name, req.MaxPRs, nil)
	if err != nil {
		return nil, err
	}

	return &source.ScanInput{Commits: commits, Files: files, PullRequests: prs}, nil
}

// fetchIncremental scans only files touched by commits after req.Since
func (p *Provider) fetchIncremental(ctx context.Context, req source.FetchRequest) (*source.ScanInput, error) {
	commits, err := p.listCommits(ctx, req.Owner, req.Name, &gogithub.CommitsListOptions{
		SHA:   branchName(req.Ref),
		Since: *req.Since,
	})
	if err != nil {
		return nil, err
	}

	messages := make(map[string][]string)
	var paths []string
	for _, c := range commits {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		full, _, err := p.client.Repositories.GetCommit(ctx, req.Owner, req.Name, c.GetSHA(), nil)
		if err != nil {
			return nil, p.wrap(err, "failed to load commit "+c.GetSHA())
		}
		for _, f := range full.Files {
			path := f.GetFilename()
			if f.GetStatus() == "removed" || !source.IsAnalyzable(path) {
				continue
			}
			if _, seen := messages[path]; !seen {
				paths = append(paths, path)
			}
			messages[path] = append(messages[path], c.GetCommit().GetMessage())
		}
	}
	sort.Strings(paths)
	if len(paths) > req.MaxFiles {
		paths = paths[:req.MaxFiles]
	}

	files, err := p.files(ctx, req, branchName(req.Ref), paths, messages)
	if err != nil {
		return nil, err
	}
	prs, err := p.recentPullRequests(ctx, req.Owner, req.Name, req.MaxPRs, req.Since)
	if err != nil {
		return nil, err
	}

	return &source.ScanInput{Commits: len(commits), Files: files, PullRequests: prs}, nil
}

func (p *Provider) fetchPullRequestScan(ctx context.Context, req source.FetchRequest) (*source.ScanInput, error) {
	pr, err := p.PullRequest(ctx, req.Owner, req.Name, req.PRNumber)
	if err != nil {
		return nil, err
	}

	var paths []string
	pages, err := p.pullRequestFiles(ctx, req.Owner, req.Name, req.PRNumber)
	if err != nil {
		return nil, err
	}
	for _, f := range pages {
		if f.GetStatus() != "removed" && source.IsAnalyzable(f.GetFilename()) {
			paths = append(paths, f.GetFilename())
		}
	}
	if len(paths) > req.MaxFiles {
		paths = paths[:req.MaxFiles]
	}

	messages := make(map[string][]string, len(paths))
	for _, path := range paths {
		messages[path] = pr.CommitMessages
	}
	files, err := p.files(ctx, req, pr.HeadBranch, paths, messages)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i].Branch = pr.HeadBranch
	}

	return &source.ScanInput{
		Commits:      len(pr.CommitMessages),
		Files:        files,
		PullRequests: []source.PullRequestInput{*pr},
	}, nil
}

// files downloads each path at ref. Commit messages come from messages when
// present, otherwise from the latest commits touching the path.
func (p *Provider) files(ctx context.Context, req source.FetchRequest, ref string, paths []string, messages map[string][]string) ([]source.FileInput, error) {
	out := make([]source.FileInput, 0, len(paths))
	for _, path := range paths {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		content, _, _, err := p.client.Repositories.GetContents(ctx, req.Owner, req.Name, path, &gogithub.RepositoryContentGetOptions{Ref: ref})
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, p.wrap(err, "failed to download "+path)
		}
		if content == nil || content.GetSize() > maxFileBytes {
			continue
		}
		text, err := content.GetContent()
		if err != nil {
			p.log.WithError(err).WithField("path", path).Debug("skipping undecodable file")
			continue
		}

		msgs, ok := messages[path]
		if !ok {
			msgs, err = p.fileCommitMessages(ctx, req.Owner, req.Name, ref, path)
			if err != nil {
				return nil, err
			}
		}

		out = append(out, source.FileInput{
			Path:           path,
			Language:       source.LanguageForPath(path),
			Content:        text,
			CommitMessages: msgs,
		})
	}
	return out, nil
}

func (p *Provider) fileCommitMessages(ctx context.Context, owner, name, ref, path string) ([]string, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	commits, _, err := p.client.Repositories.ListCommits(ctx, owner, name, &gogithub.CommitsListOptions{
		SHA:         ref,
		Path:        path,
		ListOptions: gogithub.ListOptions{PerPage: commitsPerFile},
	})
	if err != nil {
		return nil, p.wrap(err, "failed to list commits for "+path)
	}
	msgs := make([]string, 0, len(commits))
	for _, c := range commits {
		msgs = append(msgs, c.GetCommit().GetMessage())
	}
	return msgs, nil
}

func (p *Provider) countCommits(ctx context.Context, owner, name, ref string) (int, error) {
	commits, err := p.listCommits(ctx, owner, name, &gogithub.CommitsListOptions{SHA: ref})
	return len(commits), err
}

func (p *Provider) listCommits(ctx context.Context, owner, name string, opts *gogithub.CommitsListOptions) ([]*gogithub.RepositoryCommit, error) {
	opts.ListOptions = gogithub.ListOptions{PerPage: perPage}
	var all []*gogithub.RepositoryCommit
	for page := 0; page < maxCommitPages; page++ {
		if err := p.wait(ctx); err != nil {
			return nil, err
		}
		commits, resp, err := p.client.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, p.wrap(err, "failed to list commits")
		}
		all = append(all, commits...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// recentPullRequests returns the most recently updated pull requests,
// stopping at the first one last updated before since.
func (p *Provider) recentPullRequests(ctx context.Context, owner, name string, limit int, since *time.Time) ([]source.PullRequestInput, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	prs, _, err := p.client.PullRequests.List(ctx, owner, name, &gogithub.PullRequestListOptions{
		State:       "all",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: gogithub.ListOptions{PerPage: min(limit, perPage)},
	})
	if err != nil {
		return nil, p.wrap(err, "failed to list pull requests")
	}

	out := make([]source.PullRequestInput, 0, len(prs))
	for _, pr := range prs {
		if len(out) >= limit {
			break
		}
		if since != nil && pr.GetUpdatedAt().Before(*since) {
			break
		}
		in, err := p.enrich(ctx, owner, name, pr)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, nil
}

// PullRequest loads one pull request with its reviews, commits and patch
func (p *Provider) PullRequest(ctx context.Context, owner, name string, number int) (*source.PullRequestInput, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	pr, _, err := p.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return nil, p.wrap(err, fmt.Sprintf("failed to load pull request #%d", number))
	}
	return p.enrich(ctx, owner, name, pr)
}

func (p *Provider) enrich(ctx context.Context, owner, name string, pr *gogithub.PullRequest) (*source.PullRequestInput, error) {
	number := pr.GetNumber()
	in := convertPullRequest(pr)

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	reviews, _, err := p.client.PullRequests.ListReviews(ctx, owner, name, number, &gogithub.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, p.wrap(err, fmt.Sprintf("failed to list reviews of #%d", number))
	}
	for _, r := range reviews {
		in.Reviews = append(in.Reviews, source.Review{
			Reviewer: r.GetUser().GetLogin(),
			State:    strings.ToUpper(r.GetState()),
			Bot:      r.GetUser().GetType() == "Bot",
		})
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	commits, _, err := p.client.PullRequests.ListCommits(ctx, owner, name, number, &gogithub.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, p.wrap(err, fmt.Sprintf("failed to list commits of #%d", number))
	}
	for _, c := range commits {
		in.CommitMessages = append(in.CommitMessages, c.GetCommit().GetMessage())
	}

	files, err := p.pullRequestFiles(ctx, owner, name, number)
	if err != nil {
		return nil, err
	}
	in.AddedLines, in.Language = addedLines(files)

	return &in, nil
}

func (p *Provider) pullRequestFiles(ctx context.Context, owner, name string, number int) ([]*gogithub.CommitFile, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	files, _, err := p.client.PullRequests.ListFiles(ctx, owner, name, number, &gogithub.ListOptions{PerPage: perPage})
	if err != nil {
		return nil, p.wrap(err, fmt.Sprintf("failed to list files of #%d", number))
	}
	return files, nil
}

func convertPullRequest(pr *gogithub.PullRequest) source.PullRequestInput {
	state := aidebt.PRStateOpen
	switch {
	case pr.MergedAt != nil:
		state = aidebt.PRStateMerged
	case pr.GetState() == "closed":
		state = aidebt.PRStateClosed
	}

	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return source.PullRequestInput{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		HeadBranch:   pr.GetHead().GetRef(),
		Labels:       labels,
		State:        state,
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
		CreatedAt:    pr.GetCreatedAt().Time,
		MergedAt:     pr.MergedAt.GetTime(),
	}
}

// addedLines collects the added lines of every analyzable file's patch and
// the language most of them are written in.
func addedLines(files []*gogithub.CommitFile) (string, string) {
	var b strings.Builder
	byLanguage := make(map[string]int)
	for _, f := range files {
		if !source.IsAnalyzable(f.GetFilename()) {
			continue
		}
		n := 0
		for _, line := range strings.Split(f.GetPatch(), "\n") {
			if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
				b.WriteString(line[1:])
				b.WriteByte('\n')
				n++
			}
		}
		byLanguage[source.LanguageForPath(f.GetFilename())] += n
	}

	lang, best := "", 0
	for l, n := range byLanguage {
		if n > best || (n == best && l < lang) {
			lang, best = l, n
		}
	}
	return b.String(), lang
}

// branchName turns a webhook ref like refs/heads/main into the form the
// REST API accepts. An empty ref means the default branch.
func branchName(ref string) string {
	ref = strings.TrimPrefix(ref, "refs/heads/")
	if ref == "" {
		return "HEAD"
	}
	return ref
}

func (p *Provider) wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("github request throttled: %w", err)
	}
	return nil
}

// wrap maps GitHub failures onto the source sentinel errors
func (p *Provider) wrap(err error, msg string) error {
	var rateErr *gogithub.RateLimitError
	var abuseErr *gogithub.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%s: %w", msg, source.ErrRateLimited)
	}
	var respErr *gogithub.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%s: %w", msg, source.ErrUnauthorized)
		case http.StatusForbidden, http.StatusTooManyRequests:
			if respErr.Response.Header.Get("X-RateLimit-Remaining") == "0" {
				return fmt.Errorf("%s: %w", msg, source.ErrRateLimited)
			}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isNotFound(err error) bool {
	var respErr *gogithub.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound
}
