package prefs

import "bookforge/pkg/domain"

// Store persists the two device-local preference entries: the saved email
// and the book list. Callers treat failures as best-effort.
type Store interface {
	UserEmail() (string, error)
	SetUserEmail(email string) error
	Books() ([]domain.Book, error)
	SaveBooks(books []domain.Book) error
}
