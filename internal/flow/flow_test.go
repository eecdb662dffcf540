package flow

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bookforge/internal/prefs"
	"bookforge/internal/session"
	"bookforge/internal/storage"
	"bookforge/pkg/domain"
)

type fakeAPI struct {
	preview         domain.PreviewResponse
	previewForm     domain.BookFormData
	statuses        []domain.BookStatus
	statusCalls     int
	intentAddOns    []string
	purchaseIntent  string
	purchaseAddOns  []string
	downloadURL     string
	userBooks       []domain.Book
	health          string
	totalAmount     int64
	purchaseSuccess bool
}

func (f *fakeAPI) GeneratePreview(ctx context.Context, form domain.BookFormData) (domain.PreviewResponse, error) {
	f.previewForm = form
	return f.preview, nil
}

func (f *fakeAPI) GetBookStatus(ctx context.Context, bookID string) (domain.BookStatus, error) {
	i := f.statusCalls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.statusCalls++
	return f.statuses[i], nil
}

func (f *fakeAPI) CreatePaymentIntent(ctx context.Context, bookID string, addOns []string) (domain.PaymentIntentResponse, error) {
	f.intentAddOns = addOns
	return domain.PaymentIntentResponse{
		ClientSecret: "pi_fake_secret_abc",
		TotalAmount:  f.totalAmount,
		Breakdown:    map[string]int64{"base": f.totalAmount, "total": f.totalAmount},
	}, nil
}

func (f *fakeAPI) ConfirmPurchase(ctx context.Context, bookID, paymentIntentID, email string, addOns []string) (domain.PurchaseResult, error) {
	f.purchaseIntent = paymentIntentID
	f.purchaseAddOns = addOns
	return domain.PurchaseResult{Success: f.purchaseSuccess, BookID: bookID, Message: "Your book is being generated!"}, nil
}

func (f *fakeAPI) GetDownloadURL(ctx context.Context, bookID, format string) (string, error) {
	return f.downloadURL + "?format=" + format, nil
}

func (f *fakeAPI) GetUserBooks(ctx context.Context, email string) ([]domain.Book, error) {
	return f.userBooks, nil
}

func (f *fakeAPI) CheckHealth(ctx context.Context) (string, error) {
	return f.health, nil
}

type fakeConfirmer struct {
	confirmed []string
}

func (f *fakeConfirmer) Confirm(ctx context.Context, clientSecret string) (string, error) {
	f.confirmed = append(f.confirmed, clientSecret)
	return "pi_fake", nil
}

func newTestFlow(t *testing.T, api API, input string) (*Flow, *session.Session, *bytes.Buffer) {
	t.Helper()
	store, err := prefs.NewFileStore(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("new prefs store: %v", err)
	}
	files, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	sess := session.New(store)
	out := &bytes.Buffer{}
	f := New(Config{
		API:             api,
		Session:         sess,
		Confirmer:       &fakeConfirmer{},
		Files:           files,
		PollInterval:    time.Millisecond,
		CompletionGrace: time.Millisecond,
		Input:           strings.NewReader(input),
		Output:          out,
	})
	return f, sess, out
}

func testPreview() domain.PreviewResponse {
	return domain.PreviewResponse{
		BookID: "book-1",
		Status: domain.StatusPreview,
		Outline: domain.Outline{
			Title:         "Scaling Startups",
			TotalChapters: 10,
			Chapters: []domain.Chapter{
				{Number: 1, Title: "The First Ten"},
				{Number: 2, Title: "Hiring"},
			},
		},
		Chapter1: "Growth begins with people.",
		Price:    49,
	}
}

func TestCreateFlowValidatesAndStoresPreview(t *testing.T) {
	api := &fakeAPI{preview: testPreview()}
	input := strings.Join([]string{
		"too short",
		"A business book about scaling startups from 10 to 100 employees",
		"ceos",        // audience
		"business",    // style
		"standard",    // length
		"1",           // extra illustrations
		"plainstring", // rejected email
		"a@b.co",
		"back", // leave the preview screen
	}, "\n") + "\n"

	f, sess, out := newTestFlow(t, api, input)
	if err := f.Create(context.Background()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if api.previewForm.Audience != domain.AudienceCEOs || api.previewForm.Style != domain.StyleBusiness {
		t.Fatalf("form not forwarded: %+v", api.previewForm)
	}
	if api.previewForm.UserEmail != "a@b.co" {
		t.Fatalf("email not forwarded: %q", api.previewForm.UserEmail)
	}
	if sess.CurrentBookID() != "book-1" || sess.Preview() == nil {
		t.Fatalf("preview not stored in session")
	}
	if sess.UserEmail() != "a@b.co" {
		t.Fatalf("email not saved for future sessions")
	}

	rendered := out.String()
	if !strings.Contains(rendered, "Please provide more context") {
		t.Fatalf("topic validation error not shown:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Please enter a valid email address") {
		t.Fatalf("email validation error not shown:\n%s", rendered)
	}
	if !strings.Contains(rendered, "[free]") || !strings.Contains(rendered, "[locked]") {
		t.Fatalf("chapter locks not rendered:\n%s", rendered)
	}
}

func TestPaymentFlowThroughDownload(t *testing.T) {
	artifact := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer artifact.Close()

	api := &fakeAPI{
		preview: testPreview(),
		statuses: []domain.BookStatus{
			{BookID: "book-1", Status: domain.StatusGenerating, Progress: 50, CurrentChapter: 5},
			{BookID: "book-1", Status: domain.StatusComplete, Progress: 100},
		},
		downloadURL:     artifact.URL,
		totalAmount:     7700,
		purchaseSuccess: true,
	}
	input := strings.Join([]string{
		"",     // accept saved delivery email
		"2",    // extra illustrations
		"rush", // toggle rush delivery
		"done",
		"yes", // confirm charge
		"pdf", // download format
	}, "\n") + "\n"

	f, sess, out := newTestFlow(t, api, input)
	sess.SetUserEmail("a@b.co")
	preview := testPreview()
	sess.SetCurrentBookID(preview.BookID)
	sess.SetPreview(&preview)

	if err := f.Payment(context.Background()); err != nil {
		t.Fatalf("payment: %v", err)
	}

	if len(api.intentAddOns) != 3 || api.intentAddOns[0] != "rush" {
		t.Fatalf("expected rush plus 2 extra_illustration add-ons, got %v", api.intentAddOns)
	}
	if got := sess.SelectedAddOns(); len(got) != 1 || got[0] != "rush" {
		t.Fatalf("add-on selection not held in session: %v", got)
	}
	if api.purchaseIntent != "pi_fake" {
		t.Fatalf("purchase used intent %q, want pi_fake", api.purchaseIntent)
	}

	books := sess.MyBooks()
	if len(books) != 1 {
		t.Fatalf("expected 1 book on the shelf, got %d", len(books))
	}
	b := books[0]
	// 7700 cents from the intent, not the $80 local quote.
	if !b.Paid || b.Price != 77 || b.Title != "Scaling Startups" {
		t.Fatalf("unexpected shelf entry: %+v", b)
	}
	if b.Status != domain.StatusComplete || b.Progress != 100 {
		t.Fatalf("status polling should have advanced the entry: %+v", b)
	}

	if !strings.Contains(out.String(), "Saved to ") {
		t.Fatalf("artifact path not reported:\n%s", out.String())
	}
}

func TestPaymentCancelled(t *testing.T) {
	api := &fakeAPI{preview: testPreview(), totalAmount: 4900, purchaseSuccess: true}
	input := "a@b.co\n0\ndone\nno\n"

	f, sess, _ := newTestFlow(t, api, input)
	preview := testPreview()
	sess.SetCurrentBookID(preview.BookID)
	sess.SetPreview(&preview)

	if err := f.Payment(context.Background()); err != nil {
		t.Fatalf("payment: %v", err)
	}
	if len(sess.MyBooks()) != 0 {
		t.Fatalf("cancelled payment must not add a book")
	}
	if api.intentAddOns != nil {
		t.Fatalf("cancelled payment must not create an intent")
	}
}

func TestDashboardRefreshIsForwardOnly(t *testing.T) {
	api := &fakeAPI{
		health: "healthy",
		userBooks: []domain.Book{
			{BookID: "done", Status: domain.StatusComplete, Progress: 100},
			{BookID: "stale", Status: domain.StatusPreview, Progress: 0},
		},
	}
	f, sess, out := newTestFlow(t, api, "refresh\n")
	sess.SetUserEmail("a@b.co")
	sess.AddBook(domain.Book{BookID: "stale", Status: domain.StatusGenerating, Progress: 60})
	sess.AddBook(domain.Book{BookID: "done", Status: domain.StatusGenerating, Progress: 80})

	if err := f.Dashboard(context.Background()); err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	books := sess.MyBooks()
	byID := map[string]domain.Book{}
	for _, b := range books {
		byID[b.BookID] = b
	}
	if byID["done"].Status != domain.StatusComplete || byID["done"].Progress != 100 {
		t.Fatalf("server completion not applied: %+v", byID["done"])
	}
	if byID["stale"].Status != domain.StatusGenerating || byID["stale"].Progress != 60 {
		t.Fatalf("stale server row must not move a book backwards: %+v", byID["stale"])
	}
	if !strings.Contains(out.String(), "backend: healthy") {
		t.Fatalf("health not rendered:\n%s", out.String())
	}
}

func TestStatusScreenFailureShowsAlert(t *testing.T) {
	api := &fakeAPI{
		statuses: []domain.BookStatus{
			{BookID: "book-1", Status: domain.StatusFailed, Progress: 30},
		},
	}
	f, sess, out := newTestFlow(t, api, "")
	sess.AddBook(domain.Book{BookID: "book-1", Status: domain.StatusGenerating})

	if err := f.StatusScreen(context.Background(), "book-1"); err != nil {
		t.Fatalf("status screen: %v", err)
	}
	if !strings.Contains(out.String(), "[Generation Failed]") {
		t.Fatalf("failure alert not shown:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Download format") {
		t.Fatalf("failed generation must not navigate to download")
	}
}
