package client

import "sync"

// Store mirrors one page of the server's object listing. Fetched pages
// replace the mirror wholesale; broadcast events are merged only when
// they are provably consistent with the current view, otherwise the
// mirror is marked stale and the caller should refetch.
type Store struct {
	mu      sync.Mutex
	query   ListQuery
	objects []Object
	meta    Meta
	stale   bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace installs a freshly fetched page and clears staleness.
func (s *Store) Replace(page *ObjectPage, query ListQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects = append([]Object(nil), page.Data...)
	s.meta = page.Pagination
	s.query = query
	s.stale = false
}

// ApplyCreated merges an object:created event. New objects sort first,
// so the event can only be applied in place when the mirror shows the
// unfiltered first page. Any other view cannot know where the object
// lands and is marked stale instead.
func (s *Store) ApplyCreated(obj Object) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.query.Search != "" || s.meta.Page > 1 {
		s.stale = true
		return
	}

	s.objects = append([]Object{obj}, s.objects...)
	if s.meta.Limit > 0 && len(s.objects) > s.meta.Limit {
		s.objects = s.objects[:s.meta.Limit]
	}

	s.recount(s.meta.Total + 1)
}

// ApplyDeleted merges an object:deleted event. A deletion outside the
// mirrored page still changes the total, so an unseen id marks the
// mirror stale.
func (s *Store) ApplyDeleted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, obj := range s.objects {
		if obj.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.recount(s.meta.Total - 1)
			return
		}
	}

	s.stale = true
}

// MarkStale flags the mirror for refetch, e.g. after a reconnect where
// events may have been missed.
func (s *Store) MarkStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stale = true
}

// Stale reports whether the mirror needs a refetch.
func (s *Store) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// Query returns the view the mirror currently reflects.
func (s *Store) Query() ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Snapshot returns a copy of the mirrored objects and metadata.
func (s *Store) Snapshot() ([]Object, Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	objects := append([]Object(nil), s.objects...)
	return objects, s.meta
}

func (s *Store) recount(total int) {
	if total < 0 {
		total = 0
	}

	s.meta.Total = total

	if s.meta.Limit > 0 && total > 0 {
		s.meta.TotalPages = (total + s.meta.Limit - 1) / s.meta.Limit
	} else {
		s.meta.TotalPages = 0
	}

	s.meta.HasNextPage = s.meta.Page < s.meta.TotalPages
	s.meta.HasPreviousPage = s.meta.Page > 1
}
