package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/at-ishikawa/playtrack/internal/analytics"
)

// index maps a dimension value to the positions of the records carrying it.
type index map[string]map[int]struct{}

func (idx index) add(key string, pos int) {
	set, ok := idx[key]
	if !ok {
		set = make(map[int]struct{})
		idx[key] = set
	}
	set[pos] = struct{}{}
}

func (idx index) remove(key string, pos int) {
	set, ok := idx[key]
	if !ok {
		return
	}
	delete(set, pos)
	if len(set) == 0 {
		delete(idx, key)
	}
}

type dimension struct {
	index index
	key   func(analytics.GameAnalytics) string
	// optional dimensions skip empty values, so an empty lookup key matches nothing
	optional bool
}

// MemoryRepository implements Repository in process memory.
// Records are kept in insertion order and indexed by user, game, school, grade and subject.
type MemoryRepository struct {
	mu        sync.RWMutex
	clock     analytics.Clock
	records   []analytics.GameAnalytics
	positions map[string]int

	byUser    dimension
	byGame    dimension
	bySchool  dimension
	byGrade   dimension
	bySubject dimension
}

// NewMemoryRepository creates an empty MemoryRepository. A nil clock uses the system clock.
func NewMemoryRepository(clock analytics.Clock) *MemoryRepository {
	if clock == nil {
		clock = analytics.SystemClock
	}
	return &MemoryRepository{
		clock:     clock,
		positions: make(map[string]int),
		byUser:    dimension{index: index{}, key: func(r analytics.GameAnalytics) string { return r.UserID }},
		byGame:    dimension{index: index{}, key: func(r analytics.GameAnalytics) string { return r.GameID }},
		bySchool:  dimension{index: index{}, key: func(r analytics.GameAnalytics) string { return r.SchoolID }, optional: true},
		byGrade:   dimension{index: index{}, key: func(r analytics.GameAnalytics) string { return r.GradeLevel }, optional: true},
		bySubject: dimension{index: index{}, key: func(r analytics.GameAnalytics) string { return r.Subject }, optional: true},
	}
}

func (r *MemoryRepository) dimensions() []*dimension {
	return []*dimension{&r.byUser, &r.byGame, &r.bySchool, &r.byGrade, &r.bySubject}
}

// Save inserts or merges record and returns a copy of what is stored.
func (r *MemoryRepository) Save(ctx context.Context, record analytics.GameAnalytics) (analytics.GameAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return analytics.GameAnalytics{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	pos, ok := r.positions[record.ID]
	if !ok {
		stored := record.Clone()
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		if stored.UpdatedAt.IsZero() {
			stored.UpdatedAt = now
		}
		pos = len(r.records)
		r.records = append(r.records, stored)
		r.positions[stored.ID] = pos
		r.indexRecord(stored, pos)
		return stored.Clone(), nil
	}

	existing := r.records[pos]
	merged := analytics.Overlay(existing, record.Clone())
	merged.UpdatedAt = now
	r.unindexRecord(existing, pos)
	r.records[pos] = merged
	r.indexRecord(merged, pos)
	return merged.Clone(), nil
}

func (r *MemoryRepository) indexRecord(record analytics.GameAnalytics, pos int) {
	for _, d := range r.dimensions() {
		key := d.key(record)
		if d.optional && key == "" {
			continue
		}
		d.index.add(key, pos)
	}
}

func (r *MemoryRepository) unindexRecord(record analytics.GameAnalytics, pos int) {
	for _, d := range r.dimensions() {
		d.index.remove(d.key(record), pos)
	}
}

// FindByID returns a copy of the record with id, or nil.
func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*analytics.GameAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.positions[id]
	if !ok {
		return nil, nil
	}
	record := r.records[pos].Clone()
	return &record, nil
}

func (r *MemoryRepository) FindByUser(ctx context.Context, userID string) ([]analytics.GameAnalytics, error) {
	return r.lookup(ctx, &r.byUser, userID)
}

func (r *MemoryRepository) FindByGame(ctx context.Context, gameID string) ([]analytics.GameAnalytics, error) {
	return r.lookup(ctx, &r.byGame, gameID)
}

func (r *MemoryRepository) FindBySchool(ctx context.Context, schoolID string) ([]analytics.GameAnalytics, error) {
	return r.lookup(ctx, &r.bySchool, schoolID)
}

func (r *MemoryRepository) FindByGrade(ctx context.Context, gradeLevel string) ([]analytics.GameAnalytics, error) {
	return r.lookup(ctx, &r.byGrade, gradeLevel)
}

func (r *MemoryRepository) FindBySubject(ctx context.Context, subject string) ([]analytics.GameAnalytics, error) {
	return r.lookup(ctx, &r.bySubject, subject)
}

func (r *MemoryRepository) lookup(ctx context.Context, d *dimension, key string) ([]analytics.GameAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set := d.index[key]
	positions := make([]int, 0, len(set))
	for pos := range set {
		positions = append(positions, pos)
	}
	slices.Sort(positions)

	result := make([]analytics.GameAnalytics, 0, len(positions))
	for _, pos := range positions {
		result = append(result, r.records[pos].Clone())
	}
	return result, nil
}

// FindByDateRange scans every record; CreatedAt is not indexed.
func (r *MemoryRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]analytics.GameAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]analytics.GameAnalytics, 0)
	for _, record := range r.records {
		if record.CreatedAt.Before(start) || record.CreatedAt.After(end) {
			continue
		}
		result = append(result, record.Clone())
	}
	return result, nil
}

// FindAll returns a consistent snapshot of every record.
func (r *MemoryRepository) FindAll(ctx context.Context) ([]analytics.GameAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]analytics.GameAnalytics, len(r.records))
	for i, record := range r.records {
		result[i] = record.Clone()
	}
	return result, nil
}

// Len returns the number of stored records.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
