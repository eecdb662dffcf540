package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookforge/pkg/domain"
)

// Client calls the book-generation backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// APIError represents a backend error response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient constructs a backend client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type previewRequest struct {
	Topic     string `json:"topic"`
	Audience  string `json:"audience"`
	Length    string `json:"length"`
	Style     string `json:"style"`
	UserEmail string `json:"user_email"`
}

// GeneratePreview requests the free outline plus first chapter.
func (c *Client) GeneratePreview(ctx context.Context, form domain.BookFormData) (domain.PreviewResponse, error) {
	body := previewRequest{
		Topic:     form.Topic,
		Audience:  string(form.Audience),
		Length:    string(form.Length),
		Style:     string(form.Style),
		UserEmail: form.UserEmail,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/preview", body)
	if err != nil {
		return domain.PreviewResponse{}, err
	}

	var preview domain.PreviewResponse
	if err := c.do(req, &preview); err != nil {
		return domain.PreviewResponse{}, err
	}
	return preview, nil
}

// GetBookStatus fetches one generation-progress snapshot.
func (c *Client) GetBookStatus(ctx context.Context, bookID string) (domain.BookStatus, error) {
	path := fmt.Sprintf("%s/api/status/%s", c.baseURL, url.PathEscape(bookID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return domain.BookStatus{}, err
	}

	var status domain.BookStatus
	if err := c.do(req, &status); err != nil {
		return domain.BookStatus{}, err
	}
	return status, nil
}

type paymentIntentRequest struct {
	BookID string   `json:"book_id"`
	AddOns []string `json:"add_ons"`
}

// CreatePaymentIntent asks the backend for a payment-processor handshake.
func (c *Client) CreatePaymentIntent(ctx context.Context, bookID string, addOns []string) (domain.PaymentIntentResponse, error) {
	if addOns == nil {
		addOns = []string{}
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/create-payment-intent", paymentIntentRequest{
		BookID: bookID,
		AddOns: addOns,
	})
	if err != nil {
		return domain.PaymentIntentResponse{}, err
	}

	var intent domain.PaymentIntentResponse
	if err := c.do(req, &intent); err != nil {
		return domain.PaymentIntentResponse{}, err
	}
	return intent, nil
}

type purchaseRequest struct {
	BookID          string   `json:"book_id"`
	PaymentIntentID string   `json:"payment_intent_id"`
	Email           string   `json:"email"`
	AddOns          []string `json:"add_ons"`
}

// ConfirmPurchase reports a confirmed payment and starts full generation.
func (c *Client) ConfirmPurchase(ctx context.Context, bookID, paymentIntentID, email string, addOns []string) (domain.PurchaseResult, error) {
	if addOns == nil {
		addOns = []string{}
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/purchase", purchaseRequest{
		BookID:          bookID,
		PaymentIntentID: paymentIntentID,
		Email:           email,
		AddOns:          addOns,
	})
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	var result domain.PurchaseResult
	if err := c.do(req, &result); err != nil {
		return domain.PurchaseResult{}, err
	}
	return result, nil
}

// GetDownloadURL returns the URL of the finished artifact in the requested
// format (pdf, docx or epub).
func (c *Client) GetDownloadURL(ctx context.Context, bookID, format string) (string, error) {
	path := fmt.Sprintf("%s/api/download/%s?format=%s", c.baseURL, url.PathEscape(bookID), url.QueryEscape(format))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

// GetUserBooks lists the books the backend holds for an email address.
func (c *Client) GetUserBooks(ctx context.Context, email string) ([]domain.Book, error) {
	path := fmt.Sprintf("%s/api/books?email=%s", c.baseURL, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var books []domain.Book
	if err := c.do(req, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CheckHealth probes the backend health endpoint.
func (c *Client) CheckHealth(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: decodeErrorMessage(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}
	return nil
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// decodeErrorMessage extracts a human-readable message from the three error
// body shapes the backend emits: a field-error list, a string detail, or a
// message field. Anything else falls back to a generic message.
func decodeErrorMessage(resp *http.Response) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return genericErrorMessage
	}
	if len(body.Detail) > 0 {
		var fields []fieldError
		if err := json.Unmarshal(body.Detail, &fields); err == nil {
			parts := make([]string, 0, len(fields))
			for _, f := range fields {
				locs := make([]string, 0, len(f.Loc))
				for _, l := range f.Loc {
					locs = append(locs, fmt.Sprint(l))
				}
				parts = append(parts, strings.Join(locs, ".")+": "+f.Msg)
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}
	}
	if body.Message != "" {
		return body.Message
	}
	return genericErrorMessage
}

const genericErrorMessage = "An error occurred"
