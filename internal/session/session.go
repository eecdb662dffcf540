package session

import (
	"log/slog"
	"slices"
	"sync"

	"bookforge/internal/prefs"
	"bookforge/pkg/domain"
)

// Session is the single source of truth for the in-flight book creation
// flow, shared across screens. Persistence through the preference store is
// best-effort: failures are logged, never surfaced, and never block the
// in-memory update.
type Session struct {
	mu             sync.RWMutex
	formData       domain.BookFormData
	currentBookID  string
	preview        *domain.PreviewResponse
	selectedAddOns []string
	userEmail      string
	myBooks        []domain.Book

	store prefs.Store
}

// New builds an empty session backed by the given preference store.
func New(store prefs.Store) *Session {
	return &Session{
		formData: domain.DefaultFormData(),
		store:    store,
	}
}

// FormData returns a copy of the current form state.
func (s *Session) FormData() domain.BookFormData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formData
}

// UpdateFormData merges a partial edit into the current form state. No
// validation happens here; validation is screen-local.
func (s *Session) UpdateFormData(update func(*domain.BookFormData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.formData)
}

// ResetFormData restores defaults and clears the current book id, preview
// data and add-on selections. Called when starting a new book.
func (s *Session) ResetFormData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formData = domain.DefaultFormData()
	s.currentBookID = ""
	s.preview = nil
	s.selectedAddOns = nil
}

// SetCurrentBookID records the server-assigned id of the in-flight book.
func (s *Session) SetCurrentBookID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentBookID = id
}

func (s *Session) CurrentBookID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentBookID
}

// SetPreview stores the preview response for the current session.
func (s *Session) SetPreview(p *domain.PreviewResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = p
}

func (s *Session) Preview() *domain.PreviewResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview
}

// ToggleAddOn adds the id when absent and removes it when present.
func (s *Session) ToggleAddOn(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.selectedAddOns, id); i >= 0 {
		s.selectedAddOns = slices.Delete(s.selectedAddOns, i, i+1)
		return
	}
	s.selectedAddOns = append(s.selectedAddOns, id)
}

func (s *Session) SelectedAddOns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.selectedAddOns)
}

// SetUserEmail updates the in-memory email, mirrors it into the form data,
// and persists it best-effort.
func (s *Session) SetUserEmail(email string) {
	s.mu.Lock()
	s.userEmail = email
	s.formData.UserEmail = email
	s.mu.Unlock()

	if err := s.store.SetUserEmail(email); err != nil {
		slog.Warn("failed to save email", "err", err)
	}
}

func (s *Session) UserEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userEmail
}

// LoadUserEmail restores the saved email from the preference store.
func (s *Session) LoadUserEmail() {
	email, err := s.store.UserEmail()
	if err != nil {
		slog.Warn("failed to load email", "err", err)
		return
	}
	if email == "" {
		return
	}
	s.mu.Lock()
	s.userEmail = email
	s.formData.UserEmail = email
	s.mu.Unlock()
}

// MyBooks returns a copy of the book list, most recent first.
func (s *Session) MyBooks() []domain.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.myBooks)
}

// AddBook prepends to the list and persists it. No dedup by book id is
// performed; callers invoke this once per purchase.
func (s *Session) AddBook(book domain.Book) {
	s.mu.Lock()
	s.myBooks = append([]domain.Book{book}, s.myBooks...)
	updated := slices.Clone(s.myBooks)
	s.mu.Unlock()

	if err := s.store.SaveBooks(updated); err != nil {
		slog.Warn("failed to save book", "err", err)
	}
}

// UpdateBook applies a partial update to the entry with the matching id,
// preserving order. No-op when the id is absent.
func (s *Session) UpdateBook(bookID string, update func(*domain.Book)) {
	s.mu.Lock()
	found := false
	for i := range s.myBooks {
		if s.myBooks[i].BookID == bookID {
			update(&s.myBooks[i])
			found = true
		}
	}
	updated := slices.Clone(s.myBooks)
	s.mu.Unlock()

	if !found {
		return
	}
	if err := s.store.SaveBooks(updated); err != nil {
		slog.Warn("failed to update book", "err", err)
	}
}

// LoadMyBooks reads the persisted list and replaces the in-memory state.
// Called on landing and dashboard mount.
func (s *Session) LoadMyBooks() {
	books, err := s.store.Books()
	if err != nil {
		slog.Warn("failed to load books", "err", err)
		return
	}
	s.mu.Lock()
	s.myBooks = books
	s.mu.Unlock()
}
