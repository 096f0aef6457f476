// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

// Package memory is a process-local implementation of the storage
// repositories for development and tests. All repositories returned by one
// Store share a single lock.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/regrada-ai/aidebt-be/internal/storage"
	"github.com/regrada-ai/aidebt-be/pkg/aidebt"
)

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	orgs       map[string]*storage.Organization
	apiKeys    map[string]*storage.APIKey
	repos      map[string]*storage.Repository
	scans      map[string]*aidebt.Scan
	files      map[string][]aidebt.FileResult
	prs        []prRow
	debtScores []*aidebt.AIDebtScore
	teamScores []*aidebt.TeamMemberScore
	alerts     map[string]*aidebt.Alert
	alertOrder []string
	scanOrder  []string
}

type prRow struct {
	orgID  string
	repoID string
	result aidebt.PRResult
}

func NewStore() *Store {
	return &Store{
		now:     time.Now,
		orgs:    make(map[string]*storage.Organization),
		apiKeys: make(map[string]*storage.APIKey),
		repos:   make(map[string]*storage.Repository),
		scans:   make(map[string]*aidebt.Scan),
		files:   make(map[string][]aidebt.FileResult),
		alerts:  make(map[string]*aidebt.Alert),
	}
}

// SetClock overrides the time source
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Organizations() storage.OrganizationRepository { return (*orgRepo)(s) }
func (s *Store) APIKeys() storage.APIKeyRepository             { return (*apiKeyRepo)(s) }
func (s *Store) Repositories() storage.RepositoryRepository    { return (*repoRepo)(s) }
func (s *Store) Scans() storage.ScanRepository                 { return (*scanRepo)(s) }
func (s *Store) Results() storage.ResultRepository             { return (*resultRepo)(s) }
func (s *Store) Scores() storage.ScoreRepository               { return (*scoreRepo)(s) }
func (s *Store) Alerts() storage.AlertRepository               { return (*alertRepo)(s) }

func newID() string {
	return uuid.NewString()
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func sameRepo(a *string, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fold(s string) string {
	return strings.ToLower(s)
}
