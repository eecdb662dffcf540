package flow

import (
	"context"
	"fmt"

	"bookforge/pkg/pricing"
)

// Landing is the entry screen: restore saved preferences, advertise the
// pricing tiers, and route into the create flow or the dashboard.
func (f *Flow) Landing(ctx context.Context) error {
	f.session.LoadUserEmail()
	f.session.LoadMyBooks()

	f.println("BookForge - AI-written books, delivered in hours")
	f.println()
	for _, tier := range pricing.Tiers {
		f.printf("  %-14s $%-4d %s chapters, %s words - %s\n",
			tier.Name, tier.Price, tier.Chapters, tier.Words, tier.Description)
	}
	f.println()
	if email := f.session.UserEmail(); email != "" {
		f.printf("Welcome back, %s\n", email)
	}
	if books := f.session.MyBooks(); len(books) > 0 {
		f.printf("You have %d book(s) on your shelf.\n", len(books))
	}

	for {
		choice, err := f.promptChoice("Start", []string{"create", "dashboard", "quit"}, "create")
		if err != nil {
			return err
		}
		switch choice {
		case "create":
			return f.Create(ctx)
		case "dashboard":
			if err := f.Dashboard(ctx); err != nil {
				return err
			}
		case "quit":
			return nil
		}
	}
}

// Health prints the backend health status.
func (f *Flow) Health(ctx context.Context) error {
	status, err := f.api.CheckHealth(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	f.printf("backend status: %s\n", status)
	return nil
}
