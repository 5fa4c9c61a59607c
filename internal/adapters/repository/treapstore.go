// Package repository defines the community vault interface and errors.
package repository

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kitforge/kitforge/internal/domain/model"
	"github.com/kitforge/kitforge/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: score DESC, then buildID ASC (deterministic).
// The BST comparator treats "less" as ranks-earlier, so an in-order
// traversal yields the ranking from best to worst.

// record stores the score plus metadata for a build's best submission.
type record struct {
	score    int
	class    model.Class
	activity model.Activity
	tier     string
}

// Snapshot is an immutable view of the vault state, rebuilt periodically
// so read-heavy endpoints never contend with submissions.
type Snapshot struct {
	RankByBuild  map[string]int
	ScoreByBuild map[string]int

	// TopCache holds the top-M entries, sorted descending.
	TopCache []Entry
}

// treap node
type node struct {
	id    string
	score int
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aScore, aID) ranks earlier than (bScore, bID).
func less(aScore int, aID string, bScore int, bID string) bool {
	if aScore != bScore {
		return aScore > bScore // higher score ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// scoreToPriority keeps higher-scoring builds near the treap root.
func scoreToPriority(score int) uint64 {
	const offset = uint64(1) << 63
	return uint64(int64(score)) + offset
}

func insert(n *node, id string, score int) *node {
	if n == nil {
		return &node{id: id, score: score, prio: scoreToPriority(score), size: 1}
	}
	if less(score, id, n.score, n.id) {
		n.left = insert(n.left, id, score)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, score)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, score int) *node {
	if n == nil {
		return nil
	}
	if score == n.score && id == n.id {
		// Merge children by rotating the higher priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, score)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, score)
		}
	} else if less(score, id, n.score, n.id) {
		n.left = deleteNode(n.left, id, score)
	} else {
		n.right = deleteNode(n.right, id, score)
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, records map[string]record, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}

	collectTopN(n.left, limit, records, out)

	if len(*out) < limit {
		if rec, exists := records[n.id]; exists {
			*out = append(*out, Entry{
				BuildID:  n.id,
				Score:    rec.score,
				Class:    rec.class,
				Activity: rec.activity,
				Tier:     rec.tier,
			})
		}
	}

	if len(*out) < limit {
		collectTopN(n.right, limit, records, out)
	}
}

// TreapStore is the in-memory vault implementation.
type TreapStore struct {
	mu                    sync.RWMutex
	root                  *node
	byID                  map[string]record
	snapshotInterval      time.Duration
	metricsUpdateInterval time.Duration
	topCacheSize          int

	snapshot atomic.Pointer[Snapshot]

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a treap store with configuration options.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		snapshotInterval:      1 * time.Second,
		metricsUpdateInterval: 5 * time.Second,
		topCacheSize:          500,
		byID:                  make(map[string]record),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startPeriodicSnapshots(ctx)
	s.startMetricsUpdater(ctx)

	return s
}

// startPeriodicSnapshots publishes snapshots at the configured interval.
func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.publishSnapshot()
			}
		}
	}()
}

// publishSnapshot rebuilds and publishes a new snapshot.
func (s *TreapStore) publishSnapshot() {
	start := time.Now()
	s.mu.RLock()
	s.publishSnapshotInternal()
	s.mu.RUnlock()

	ms := float64(time.Since(start).Milliseconds())
	metrics.RecordVaultSnapshotRebuildDuration(ms)
	metrics.IncrementVaultSnapshotCount()
}

// Close gracefully shuts down the background goroutines.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
		// already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Submit implements Store.Submit with O(log n) expected time.
func (s *TreapStore) Submit(ctx context.Context, buildID string, score int, class model.Class, activity model.Activity, tier string) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordVaultUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	isNewBuild := false

	s.mu.Lock()
	if old, ok := s.byID[buildID]; ok {
		if score <= old.score { // not an improvement
			s.mu.Unlock()
			return false, nil
		}
		s.root = deleteNode(s.root, buildID, old.score)
	} else {
		isNewBuild = true
	}
	s.byID[buildID] = record{score: score, class: class, activity: activity, tier: tier}
	s.root = insert(s.root, buildID, score)
	s.mu.Unlock()

	if isNewBuild {
		metrics.UpdateVaultBuildsTotal(s.Count(ctx))
	}
	return true, nil
}

// Rank returns the current rank and score for a build in O(n).
func (s *TreapStore) Rank(ctx context.Context, buildID string) (Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordVaultQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.byID[buildID]; !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, ErrNotFound
	}

	allEntries := make([]Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &allEntries)
	sortEntries(allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		if entry.BuildID == buildID {
			return entry, nil
		}
	}

	return Entry{}, ErrNotFound
}

// TopN returns the top N entries ordered by score desc.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordVaultQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTopN(s.root, n, s.byID, &out)
	assignRanksWithTies(out)
	return out, nil
}

// Count returns the total number of builds tracked.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// CurrentSnapshot returns the latest published snapshot, or nil if none has
// been published yet.
func (s *TreapStore) CurrentSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// publishSnapshotInternal rebuilds the snapshot. Caller holds the read lock.
func (s *TreapStore) publishSnapshotInternal() {
	topCache := make([]Entry, 0, s.topCacheSize)
	collectTopN(s.root, s.topCacheSize, s.byID, &topCache)

	rankByBuild := make(map[string]int, len(s.byID))
	scoreByBuild := make(map[string]int, len(s.byID))

	allEntries := make([]Entry, 0, len(s.byID))
	collectAll(s.root, s.byID, &allEntries)
	assignRanksWithTies(allEntries)

	for _, entry := range allEntries {
		rankByBuild[entry.BuildID] = entry.Rank
		scoreByBuild[entry.BuildID] = entry.Score
	}

	for i := range topCache {
		if rank, exists := rankByBuild[topCache[i].BuildID]; exists {
			topCache[i].Rank = rank
		}
	}

	s.snapshot.Store(&Snapshot{
		RankByBuild:  rankByBuild,
		ScoreByBuild: scoreByBuild,
		TopCache:     topCache,
	})
}

// startMetricsUpdater refreshes vault gauges on a fixed interval.
func (s *TreapStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *TreapStore) updateMetrics() {
	s.mu.RLock()
	buildCount := len(s.byID)
	s.mu.RUnlock()

	metrics.UpdateVaultBuildsTotal(buildCount)
}

// collectAll appends all entries in rank order.
func collectAll(n *node, byID map[string]record, out *[]Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, byID, out)
	if rec, ok := byID[n.id]; ok {
		*out = append(*out, Entry{
			BuildID:  n.id,
			Score:    rec.score,
			Class:    rec.class,
			Activity: rec.activity,
			Tier:     rec.tier,
		})
	}
	collectAll(n.right, byID, out)
}

// sortEntries orders entries by score desc, then buildID asc.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].BuildID < entries[j].BuildID
	})
}

// assignRanksWithTies gives builds with equal scores the same rank.
func assignRanksWithTies(entries []Entry) {
	if len(entries) == 0 {
		return
	}

	currentRank := 1
	for i := 0; i < len(entries); i++ {
		entries[i].Rank = currentRank

		sameScoreCount := 1
		for j := i + 1; j < len(entries) && entries[j].Score == entries[i].Score; j++ {
			entries[j].Rank = currentRank
			sameScoreCount++
		}

		currentRank++
		i += sameScoreCount - 1
	}
}
