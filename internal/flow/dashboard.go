package flow

import (
	"context"

	"golang.org/x/sync/errgroup"

	"bookforge/pkg/domain"
)

// Dashboard lists the locally persisted books. A refresh fetches the
// server-side list and backend health concurrently and reconciles progress
// for any book still generating.
func (f *Flow) Dashboard(ctx context.Context) error {
	f.session.LoadMyBooks()
	f.renderShelf(f.session.MyBooks())

	choice, err := f.promptChoice("Dashboard", []string{"refresh", "back"}, "back")
	if err != nil {
		return err
	}
	if choice != "refresh" {
		return nil
	}

	email := f.session.UserEmail()
	if email == "" {
		f.alert("Email Required", "Save your email first by creating a book.")
		return nil
	}

	var (
		serverBooks []domain.Book
		health      string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := f.api.GetUserBooks(gctx, email)
		if err != nil {
			return err
		}
		serverBooks = books
		return nil
	})
	g.Go(func() error {
		status, err := f.api.CheckHealth(gctx)
		if err != nil {
			return err
		}
		health = status
		return nil
	})
	if err := g.Wait(); err != nil {
		f.alert("Refresh Failed", err.Error())
		return nil
	}

	for _, remote := range serverBooks {
		f.session.UpdateBook(remote.BookID, func(b *domain.Book) {
			// Forward-only: never let a stale server row move a book back.
			if b.Status.CanAdvanceTo(remote.Status) {
				b.Status = remote.Status
			}
			if remote.Progress > b.Progress {
				b.Progress = remote.Progress
			}
		})
	}

	f.printf("backend: %s\n", health)
	f.renderShelf(f.session.MyBooks())
	return nil
}

func (f *Flow) renderShelf(books []domain.Book) {
	f.println()
	f.println("My Books")
	if len(books) == 0 {
		f.println("  Nothing here yet. Create your first book.")
		return
	}
	for _, b := range books {
		f.printf("  %-36s %-10s %3d%%  $%-4d %s\n",
			b.Title, b.Status, b.Progress, b.Price, b.CreatedAt)
	}
}
