package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"learnhub/internal/logger"
	"learnhub/internal/media"
)

// Manager owns the live editing sessions. One session per operator+course:
// starting again for the same pair tears down the previous session first.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byOwner  map[string]string // userID+courseID -> session id

	backend    CourseBackend
	previewDir string
	ttl        time.Duration
	log        *logger.Logger
}

func NewManager(backend CourseBackend, previewDir string, ttl time.Duration, log *logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = 45 * time.Minute
	}
	return &Manager{
		sessions:   make(map[string]*Session),
		byOwner:    make(map[string]string),
		backend:    backend,
		previewDir: previewDir,
		ttl:        ttl,
		log:        log,
	}
}

// Start loads the course and opens a session on stage 1. A failed load is
// fatal: no session is created and the caller sends the operator back to the
// course list.
func (m *Manager) Start(ctx context.Context, identity Identity, courseID string) (*Session, error) {
	course, err := m.backend.GetCourse(ctx, identity.Token, courseID)
	if err != nil {
		return nil, err
	}

	store, err := media.NewStore(m.previewDir)
	if err != nil {
		return nil, err
	}

	draft := CourseDraft{
		Title:        course.Title,
		Description:  course.Description,
		CategoryID:   course.CategoryID,
		Level:        course.Level,
		DurationHrs:  course.DurationHrs,
		Price:        course.Price,
		Tags:         append([]string(nil), course.Tags...),
		Instructions: append([]string(nil), course.Instructions...),
		ThumbnailURL: course.ThumbnailURL,
		Status:       course.Status,
	}
	snapshot := draft
	snapshot.Tags = append([]string(nil), course.Tags...)
	snapshot.Instructions = append([]string(nil), course.Instructions...)

	sections := make([]Section, 0, len(course.Sections))
	for _, sec := range course.Sections {
		out := Section{ID: sec.ID, Name: sec.Name, Created: true, Lessons: []Lesson{}}
		for _, l := range sec.Lessons {
			out.Lessons = append(out.Lessons, Lesson{
				ID:          l.ID,
				Title:       l.Title,
				Description: l.Description,
				VideoURL:    l.VideoURL,
			})
		}
		sections = append(sections, out)
	}

	s := &Session{
		id:         uuid.New().String(),
		identity:   identity,
		courseID:   courseID,
		stage:      StageDetails,
		draft:      draft,
		snapshot:   snapshot,
		sections:   sections,
		drafts:     make(map[string]*LessonDraft),
		media:      store,
		backend:    m.backend,
		lastActive: time.Now(),
	}
	s.log = m.log.With("session", s.id, "course", courseID)

	owner := identity.UserID + ":" + courseID
	m.mu.Lock()
	if oldID, ok := m.byOwner[owner]; ok {
		if old, ok := m.sessions[oldID]; ok {
			old.Close()
			delete(m.sessions, oldID)
		}
	}
	m.sessions[s.id] = s
	m.byOwner[owner] = s.id
	m.mu.Unlock()

	m.log.Info("editing session started", "session", s.id, "course", courseID, "user", identity.UserID)
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears a session down and forgets it. Unknown ids are a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		delete(m.byOwner, s.identity.UserID+":"+s.courseID)
	}
	m.mu.Unlock()

	if ok {
		s.Close()
	}
}

// ReapIdle closes sessions untouched for longer than the TTL and reports how
// many it removed.
func (m *Manager) ReapIdle(now time.Time) int {
	m.mu.Lock()
	var stale []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > m.ttl {
			stale = append(stale, s)
			delete(m.sessions, id)
			delete(m.byOwner, s.identity.UserID+":"+s.courseID)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		s.Close()
		m.log.Info("idle editing session reaped", "session", s.id)
	}
	return len(stale)
}

// RunReaper ticks until ctx is done.
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			m.ReapIdle(now)
		}
	}
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
