package flow

import (
	"context"
	"strings"
)

// PreviewScreen shows the free sample: the full outline with chapter 1
// unlocked and every other chapter locked until purchase. Step 2 of 4.
func (f *Flow) PreviewScreen(ctx context.Context) error {
	preview := f.session.Preview()
	if preview == nil {
		f.alert("Error", "No preview available. Generate one first.")
		return nil
	}

	f.println()
	f.println("Your Book Preview (step 2 of 4)")
	f.println()
	f.printf("  %s\n", preview.Outline.Title)
	if preview.Outline.Subtitle != "" {
		f.printf("  %s\n", preview.Outline.Subtitle)
	}
	f.printf("  %d chapters", preview.Outline.ChapterCount())
	if preview.Outline.EstimatedPages > 0 {
		f.printf(" (about %d pages)", preview.Outline.EstimatedPages)
	}
	f.println()
	f.println()

	f.println("Table of contents:")
	for _, ch := range preview.Outline.Chapters {
		lock := "locked"
		if ch.Number == 1 {
			lock = "free"
		}
		f.printf("  %2d. %-40s [%s]\n", ch.Number, ch.Title, lock)
	}

	f.println()
	f.println("Chapter 1:")
	f.println(strings.TrimSpace(preview.Chapter1))
	f.println()
	f.printf("Full book price: $%d (server-confirmed)\n", preview.Price)

	choice, err := f.promptChoice("Unlock the full book", []string{"pay", "back"}, "pay")
	if err != nil {
		return err
	}
	if choice != "pay" {
		return nil
	}
	return f.Payment(ctx)
}
