package flow

import (
	"context"
	"errors"

	"bookforge/internal/poller"
	"bookforge/pkg/domain"
)

// StatusScreen polls generation progress until a terminal state, then
// navigates to the download screen on completion. Step 4 of 4.
func (f *Flow) StatusScreen(ctx context.Context, bookID string) error {
	f.session.LoadMyBooks()
	f.println()
	f.println("Generating your book (step 4 of 4)")

	totalChapters := 0
	if preview := f.session.Preview(); preview != nil {
		totalChapters = preview.Outline.ChapterCount()
	}

	p := poller.New(f.api.GetBookStatus, poller.Config{
		Interval:        f.pollInterval,
		CompletionGrace: f.completionGrace,
		TotalChapters:   totalChapters,
	})

	var terminal domain.BookStatusValue
	err := p.Run(ctx, bookID, poller.Hooks{
		OnUpdate: func(u poller.Update) {
			f.session.UpdateBook(bookID, func(b *domain.Book) {
				b.Status = u.Status.Status
				b.Progress = u.Status.Progress
			})
			total := u.Status.TotalChapters
			if total <= 0 {
				total = totalChapters
			}
			step := u.Status.CurrentStep
			if step == "" {
				step = "Writing"
			}
			f.printf("  %3d%%  chapter %d of %d  ~%d min remaining  %s\n",
				u.Status.Progress, u.CurrentChapter, total, u.EstimatedMinutes, step)
		},
		OnComplete: func(status domain.BookStatus) {
			terminal = domain.StatusComplete
		},
		OnFailed: func(status domain.BookStatus) {
			terminal = domain.StatusFailed
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}

	switch terminal {
	case domain.StatusComplete:
		f.println("  Your book is ready!")
		return f.Download(ctx, bookID)
	case domain.StatusFailed:
		f.alert("Generation Failed", "Something went wrong while writing your book. Please contact support.")
	}
	return nil
}
