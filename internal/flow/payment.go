package flow

import (
	"context"
	"slices"
	"strings"
	"time"

	"bookforge/internal/validate"
	"bookforge/pkg/domain"
	"bookforge/pkg/pricing"
)

// Optional extras offered at checkout, priced per pricing.AddOnPrice.
var optionalAddOns = []string{
	pricing.AddOnIllustrations,
	pricing.AddOnCover,
	pricing.AddOnRush,
	pricing.AddOnEditing,
	pricing.AddOnPublishing,
}

// Payment completes the purchase: quote the total from the server price,
// create a payment intent, confirm it with the payment processor, then
// confirm the purchase with the backend. Step 3 of 4.
func (f *Flow) Payment(ctx context.Context) error {
	preview := f.session.Preview()
	bookID := f.session.CurrentBookID()
	if preview == nil || bookID == "" {
		f.alert("Error", "No book to purchase. Generate a preview first.")
		return nil
	}

	f.println()
	f.println("Complete Your Purchase (step 3 of 4)")
	f.printf("  %s: %d chapters, %s length\n",
		preview.Outline.Title, preview.Outline.ChapterCount(), f.session.FormData().Length)

	var email string
	for {
		def := f.session.UserEmail()
		label := "Delivery email"
		if def != "" {
			label += " [" + def + "]"
		}
		entered, err := f.prompt(label)
		if err != nil {
			return err
		}
		if entered == "" {
			entered = def
		}
		if verr := validate.Email(entered); verr != nil {
			f.alert("Invalid Email", verr.Error())
			continue
		}
		email = entered
		break
	}

	f.println("  1 cover image is FREE. Add more illustrations at $1 each.")
	extras, err := f.promptInt("Extra illustrations", f.session.FormData().ExtraIllustrations)
	if err != nil {
		return err
	}

	f.println("  Optional add-ons (enter one to toggle, done to continue):")
	for _, id := range optionalAddOns {
		f.printf("    %-18s $%d\n", id, pricing.AddOnPrice(id))
	}
	for {
		if selected := f.session.SelectedAddOns(); len(selected) > 0 {
			f.printf("  Selected: %s\n", strings.Join(selected, ", "))
		}
		choice, err := f.promptChoice("Add-on", append(slices.Clone(optionalAddOns), "done"), "done")
		if err != nil {
			return err
		}
		if choice == "done" {
			break
		}
		f.session.ToggleAddOn(choice)
	}

	// The server price from the preview is authoritative here.
	quote := pricing.FromServer(preview.Price, extras)
	quote.Selected = f.session.SelectedAddOns()
	f.printf("  Base: $%d  Extras: $%d  Add-ons: $%d  Total: $%d\n",
		quote.Base, quote.IllustrationsTotal(), quote.SelectedTotal(), quote.Total())

	confirm, err := f.promptChoice("Charge your card on file", []string{"yes", "no"}, "no")
	if err != nil {
		return err
	}
	if confirm != "yes" {
		f.println("Payment cancelled.")
		return nil
	}

	addOns := quote.AddOns()
	intent, err := f.api.CreatePaymentIntent(ctx, bookID, addOns)
	if err != nil {
		f.alert("Payment Failed", err.Error())
		return nil
	}
	// The intent's total is the final authoritative amount, in cents.
	f.printf("  Charging $%d.%02d...\n", intent.TotalAmount/100, intent.TotalAmount%100)

	paymentIntentID, err := f.confirmer.Confirm(ctx, intent.ClientSecret)
	if err != nil {
		f.alert("Payment Failed", err.Error())
		return nil
	}

	result, err := f.api.ConfirmPurchase(ctx, bookID, paymentIntentID, email, addOns)
	if err != nil {
		f.alert("Payment Failed", err.Error())
		return nil
	}
	if !result.Success {
		f.alert("Payment Failed", result.Message)
		return nil
	}
	f.printf("  %s\n", result.Message)

	f.session.AddBook(domain.Book{
		BookID:    bookID,
		Title:     preview.Outline.Title,
		Topic:     f.session.FormData().Topic,
		Status:    domain.StatusGenerating,
		Progress:  0,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Paid:      true,
		// The intent carries the final server-computed charge; the local
		// quote is only the pre-intent display.
		Price:   intent.TotalAmount / 100,
		Outline: &preview.Outline,
	})

	return f.StatusScreen(ctx, bookID)
}
