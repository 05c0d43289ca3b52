package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/brewsandbytes/seeder/internal/source"
)

// memStore is an in-memory Store that enforces foreign keys when enabled.
type memStore struct {
	mu sync.Mutex

	tribes        map[int64]Tribe
	professions   []Profession
	talkingPoints map[string]TalkingPoint
	nextID        int64

	fkEnabled bool
	calls     []string
	open      int

	sessionErr   error
	failTPInsert int // fail the Nth talking point insert when > 0
	tpInserts    int
}

func newMemStore() *memStore {
	return &memStore{
		tribes:        make(map[int64]Tribe),
		talkingPoints: make(map[string]TalkingPoint),
		fkEnabled:     true,
	}
}

func (m *memStore) Session(ctx context.Context) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	m.open++
	return &memSession{m: m}, nil
}

func (m *memStore) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *memStore) professionExists(id int64) bool {
	for _, p := range m.professions {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (m *memStore) sortedTribeIDs() []int64 {
	ids := make([]int64, 0, len(m.tribes))
	for id := range m.tribes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type memSession struct {
	m      *memStore
	closed bool
}

func (s *memSession) SetForeignKeys(ctx context.Context, enabled bool) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.fkEnabled = enabled
	if enabled {
		s.m.record("fk:on")
	} else {
		s.m.record("fk:off")
	}
	return nil
}

func (s *memSession) DeleteTribes(ctx context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.record("delete:tribes")
	s.m.tribes = make(map[int64]Tribe)
	return nil
}

func (s *memSession) InsertTribe(ctx context.Context, t Tribe) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tribes[t.ID]; ok {
		return errors.New("constraint failed: UNIQUE constraint failed: tribes.id (1555)")
	}
	s.m.tribes[t.ID] = t
	return nil
}

func (s *memSession) DeleteTalkingPoints(ctx context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.record("delete:talking_points")
	s.m.talkingPoints = make(map[string]TalkingPoint)
	return nil
}

func (s *memSession) DeleteProfessions(ctx context.Context) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.record("delete:professions")
	if s.m.fkEnabled && len(s.m.talkingPoints) > 0 {
		return errors.New("FOREIGN KEY constraint failed")
	}
	s.m.professions = nil
	return nil
}

func (s *memSession) InsertProfession(ctx context.Context, p Profession) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.nextID++
	p.ID = s.m.nextID
	s.m.professions = append(s.m.professions, p)
	return p.ID, nil
}

func (s *memSession) InsertTalkingPoint(ctx context.Context, tp TalkingPoint) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.tpInserts++
	if s.m.failTPInsert > 0 && s.m.tpInserts == s.m.failTPInsert {
		return false, errors.New("connection reset by peer")
	}
	if s.m.fkEnabled && !s.m.professionExists(tp.ProfessionID) {
		return false, errors.New("FOREIGN KEY constraint failed")
	}
	if _, ok := s.m.talkingPoints[tp.ID]; ok {
		return false, nil
	}
	s.m.talkingPoints[tp.ID] = tp
	return true, nil
}

func (s *memSession) Close() error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.closed {
		return errors.New("session already closed")
	}
	s.closed = true
	s.m.open--
	s.m.record("close")
	return nil
}

// mapSource serves files from memory.
type mapSource struct {
	files  map[string]string
	broken map[string]error
}

func (s mapSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err, ok := s.broken[name]; ok {
		return nil, err
	}
	content, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, source.ErrNotFound)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (s mapSource) Describe() string { return "memory" }
