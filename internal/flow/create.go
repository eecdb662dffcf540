package flow

import (
	"context"

	"bookforge/internal/validate"
	"bookforge/pkg/domain"
	"bookforge/pkg/pricing"
)

var (
	audienceOptions = []string{"students", "developers", "ceos", "general"}
	styleOptions    = []string{"conversational", "academic", "technical", "business"}
	lengthOptions   = []string{"short", "standard", "comprehensive", "dissertation"}
)

// Create collects the book configuration, validates it locally, generates
// the free preview and hands off to the preview screen. Step 1 of 4.
func (f *Flow) Create(ctx context.Context) error {
	f.session.ResetFormData()
	f.println()
	f.println("Create Your Book (step 1 of 4)")

	for {
		topic, err := f.prompt("Describe your book topic (the more detail, the better the book)")
		if err != nil {
			return err
		}
		f.session.UpdateFormData(func(form *domain.BookFormData) {
			form.Topic = topic
		})
		if verr := validate.Topic(topic); verr != nil {
			f.printf("  ! %s\n", verr)
			continue
		}
		break
	}

	audience, err := f.promptChoice("Audience", audienceOptions, string(domain.AudienceGeneral))
	if err != nil {
		return err
	}
	style, err := f.promptChoice("Writing style", styleOptions, string(domain.StyleConversational))
	if err != nil {
		return err
	}
	length, err := f.promptChoice("Book length", lengthOptions, string(domain.LengthStandard))
	if err != nil {
		return err
	}
	f.println("  1 cover image is FREE; additional illustrations are $1 each.")
	extras, err := f.promptInt("Extra illustrations needed", 0)
	if err != nil {
		return err
	}
	f.session.UpdateFormData(func(form *domain.BookFormData) {
		form.Audience = domain.Audience(audience)
		form.Style = domain.Style(style)
		form.Length = domain.Length(length)
		form.ExtraIllustrations = extras
	})

	for {
		def := f.session.UserEmail()
		label := "Your email"
		if def != "" {
			label += " [" + def + "]"
		}
		email, err := f.prompt(label)
		if err != nil {
			return err
		}
		if email == "" {
			email = def
		}
		if verr := validate.Email(email); verr != nil {
			f.printf("  ! %s\n", verr)
			continue
		}
		// Save for future sessions; best-effort.
		f.session.SetUserEmail(email)
		break
	}

	form := f.session.FormData()
	quote := pricing.Estimate(form.Length, form.ExtraIllustrations)
	f.println()
	f.printf("Pricing summary (estimate, final price set at preview):\n")
	f.printf("  Book (%s): $%d\n", form.Length, quote.Base)
	if quote.ExtraIllustrations > 0 {
		f.printf("  Extra illustrations (%d x $1): $%d\n", quote.ExtraIllustrations, quote.IllustrationsTotal())
	}
	f.printf("  Total after preview: $%d (the preview itself is FREE)\n", quote.Total())
	f.println()
	f.println("Generating your free preview (takes about 30 seconds)...")

	preview, err := f.api.GeneratePreview(ctx, form)
	if err != nil {
		f.alert("Error", err.Error())
		return nil
	}

	f.session.SetCurrentBookID(preview.BookID)
	f.session.SetPreview(&preview)
	return f.PreviewScreen(ctx)
}
