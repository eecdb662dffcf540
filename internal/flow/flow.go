package flow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookforge/internal/payment"
	"bookforge/internal/session"
	"bookforge/internal/storage"
	"bookforge/pkg/domain"
)

// API is the backend surface the screens call.
type API interface {
	GeneratePreview(ctx context.Context, form domain.BookFormData) (domain.PreviewResponse, error)
	GetBookStatus(ctx context.Context, bookID string) (domain.BookStatus, error)
	CreatePaymentIntent(ctx context.Context, bookID string, addOns []string) (domain.PaymentIntentResponse, error)
	ConfirmPurchase(ctx context.Context, bookID, paymentIntentID, email string, addOns []string) (domain.PurchaseResult, error)
	GetDownloadURL(ctx context.Context, bookID, format string) (string, error)
	GetUserBooks(ctx context.Context, email string) ([]domain.Book, error)
	CheckHealth(ctx context.Context) (string, error)
}

// Config wires the screen flow together.
type Config struct {
	API             API
	Session         *session.Session
	Confirmer       payment.Confirmer
	Files           *storage.FileStore
	PollInterval    time.Duration
	CompletionGrace time.Duration
	DefaultFormat   string
	Input           io.Reader
	Output          io.Writer
}

// Flow runs the ordered screens (landing -> create -> preview -> payment ->
// status -> download, plus the dashboard) over a terminal.
type Flow struct {
	api             API
	session         *session.Session
	confirmer       payment.Confirmer
	files           *storage.FileStore
	pollInterval    time.Duration
	completionGrace time.Duration
	defaultFormat   string
	downloader      *http.Client
	in              *bufio.Reader
	out             io.Writer
}

// New builds the flow. Missing tunables take the screen defaults.
func New(cfg Config) *Flow {
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "pdf"
	}
	return &Flow{
		api:             cfg.API,
		session:         cfg.Session,
		confirmer:       cfg.Confirmer,
		files:           cfg.Files,
		pollInterval:    cfg.PollInterval,
		completionGrace: cfg.CompletionGrace,
		defaultFormat:   cfg.DefaultFormat,
		downloader:      &http.Client{Timeout: 60 * time.Second},
		in:              bufio.NewReader(cfg.Input),
		out:             cfg.Output,
	}
}

func (f *Flow) printf(format string, args ...any) {
	fmt.Fprintf(f.out, format, args...)
}

func (f *Flow) println(args ...any) {
	fmt.Fprintln(f.out, args...)
}

// alert prints a titled failure the way the app shows a modal dialog, then
// leaves the caller in an actionable state.
func (f *Flow) alert(title, message string) {
	fmt.Fprintf(f.out, "\n[%s] %s\n", title, message)
}

func (f *Flow) prompt(label string) (string, error) {
	fmt.Fprintf(f.out, "%s: ", label)
	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptChoice asks for one of the listed values, returning def on empty
// input or anything unrecognized.
func (f *Flow) promptChoice(label string, options []string, def string) (string, error) {
	fmt.Fprintf(f.out, "%s (%s) [%s]: ", label, strings.Join(options, "/"), def)
	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	choice := strings.ToLower(strings.TrimSpace(line))
	for _, opt := range options {
		if choice == opt {
			return opt, nil
		}
	}
	return def, nil
}

func (f *Flow) promptInt(label string, def int) (int, error) {
	fmt.Fprintf(f.out, "%s [%d]: ", label, def)
	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return def, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return def, nil
	}
	return n, nil
}
