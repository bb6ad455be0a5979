package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

var errStoreDown = errors.New("store unavailable")

type fakeWordRepo struct {
	mu        sync.RWMutex
	items     []*entities.VocabularyItem
	failTiers map[entities.Tier]bool
	failAll   bool
}

func newFakeWordRepo(items ...*entities.VocabularyItem) *fakeWordRepo {
	return &fakeWordRepo{items: items, failTiers: make(map[entities.Tier]bool)}
}

func (r *fakeWordRepo) fail(tier entities.Tier) error {
	if r.failAll || r.failTiers[tier] {
		return errStoreDown
	}
	return nil
}

func (r *fakeWordRepo) filter(keep func(*entities.VocabularyItem) bool) []*entities.VocabularyItem {
	var out []*entities.VocabularyItem
	for _, it := range r.items {
		if keep(it) {
			c := *it
			out = append(out, &c)
		}
	}
	return out
}

func (r *fakeWordRepo) FetchByTier(ctx context.Context, tier entities.Tier) ([]*entities.VocabularyItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(tier); err != nil {
		return nil, err
	}
	return r.filter(func(it *entities.VocabularyItem) bool { return it.Tier == tier && it.OwnerID == "" }), nil
}

func (r *fakeWordRepo) FetchAll(ctx context.Context) ([]*entities.VocabularyItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(entities.TierAll); err != nil {
		return nil, err
	}
	return r.filter(func(it *entities.VocabularyItem) bool { return it.Tier.IsShared() }), nil
}

func (r *fakeWordRepo) FetchOwnedBy(ctx context.Context, userID string) ([]*entities.VocabularyItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.fail(entities.TierPersonal); err != nil {
		return nil, err
	}
	return r.filter(func(it *entities.VocabularyItem) bool { return it.IsOwnedBy(userID) }), nil
}

func (r *fakeWordRepo) FetchOwnedByCategory(ctx context.Context, userID, category string) ([]*entities.VocabularyItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(it *entities.VocabularyItem) bool {
		return it.IsOwnedBy(userID) && it.Category == category
	}), nil
}

func (r *fakeWordRepo) CountByTier(ctx context.Context, tier entities.Tier) (int, error) {
	items, err := r.FetchByTier(ctx, tier)
	return len(items), err
}

func (r *fakeWordRepo) Create(ctx context.Context, item *entities.VocabularyItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *item
	r.items = append(r.items, &c)
	return nil
}

func (r *fakeWordRepo) Update(ctx context.Context, ownerID string, item *entities.VocabularyItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == item.ID && it.IsOwnedBy(ownerID) {
			c := *item
			r.items[i] = &c
			return nil
		}
	}
	return entities.ErrNotFoundOrUnauthorized
}

func (r *fakeWordRepo) Delete(ctx context.Context, ownerID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == itemID && it.IsOwnedBy(ownerID) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return entities.ErrNotFoundOrUnauthorized
}

func (r *fakeWordRepo) DeleteAllOwned(ctx context.Context, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entities.VocabularyItem
	var n int64
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			n++
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept
	return n, nil
}

func (r *fakeWordRepo) ReplaceShared(ctx context.Context, items []*entities.VocabularyItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entities.VocabularyItem
	for _, it := range r.items {
		if it.OwnerID != "" {
			kept = append(kept, it)
		}
	}
	r.items = append(kept, items...)
	return nil
}

type fakeLearnedRepo struct {
	mu      sync.RWMutex
	records map[string]*entities.LearnedRecord
	writes  int
	fail    bool
}

func newFakeLearnedRepo() *fakeLearnedRepo {
	return &fakeLearnedRepo{records: make(map[string]*entities.LearnedRecord)}
}

func (r *fakeLearnedRepo) RecordLearned(ctx context.Context, rec *entities.LearnedRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStoreDown
	}
	r.writes++
	r.records[rec.Key()] = rec
	return nil
}

func (r *fakeLearnedRepo) CountLearned(ctx context.Context, userID string, tier entities.Tier) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Tier == tier {
			n++
		}
	}
	return n, nil
}

func (r *fakeLearnedRepo) itemIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, rec := range r.records {
		ids = append(ids, rec.ItemID)
	}
	sort.Strings(ids)
	return ids
}

type fakeProgressStore struct {
	mu             sync.RWMutex
	progress       map[string]*entities.UserProgress
	positions      map[string]entities.Position
	positionWrites []entities.Position
	failWrites     bool
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{
		progress:  make(map[string]*entities.UserProgress),
		positions: make(map[string]entities.Position),
	}
}

func (s *fakeProgressStore) ReadProgress(ctx context.Context, userID string) (*entities.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[userID]
	if !ok {
		p = entities.NewUserProgress(userID)
		s.progress[userID] = p
	}
	c := *p
	return &c, nil
}

func (s *fakeProgressStore) WriteProgress(ctx context.Context, userID string, update entities.ProgressUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return errStoreDown
	}
	p, ok := s.progress[userID]
	if !ok {
		p = entities.NewUserProgress(userID)
		s.progress[userID] = p
	}
	p.Apply(update)
	return nil
}

func (s *fakeProgressStore) ReadPosition(ctx context.Context, userID string) (*entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.positions[userID]
	if !ok {
		return nil, entities.ErrPositionNotFound
	}
	return &pos, nil
}

func (s *fakeProgressStore) WritePosition(ctx context.Context, pos *entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[pos.UserID] = *pos
	s.positionWrites = append(s.positionWrites, *pos)
	return nil
}

func (s *fakeProgressStore) get(userID string) entities.UserProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.progress[userID]; ok {
		return *p
	}
	return entities.UserProgress{UserID: userID}
}

func (s *fakeProgressStore) writes() []entities.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Position(nil), s.positionWrites...)
}

type fakeUserRepo struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Save(ctx context.Context, user *entities.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.users[user.ID]
	r.users[user.ID] = user
	return !exists, nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[userID]
	return ok, nil
}

type fakeResetter struct {
	calls []string
}

func (r *fakeResetter) ResetUser(ctx context.Context, userID string) error {
	r.calls = append(r.calls, userID)
	return nil
}

// sharedWord builds a seeded word; ids sort in creation order.
func sharedWord(id, source, target string, tier entities.Tier) *entities.VocabularyItem {
	return &entities.VocabularyItem{ID: id, SourceText: source, TargetText: target, Tier: tier}
}

func personalWord(id, owner, source, target string) *entities.VocabularyItem {
	return &entities.VocabularyItem{ID: id, OwnerID: owner, SourceText: source, TargetText: target, Tier: entities.TierPersonal}
}

func testStores(words *fakeWordRepo) (Stores, *fakeLearnedRepo, *fakeProgressStore) {
	learned := newFakeLearnedRepo()
	progress := newFakeProgressStore()
	return Stores{Words: words, Learned: learned, Progress: progress}, learned, progress
}
