package domain

type BookStatusValue string

const (
	StatusPreview    BookStatusValue = "preview"
	StatusGenerating BookStatusValue = "generating"
	StatusComplete   BookStatusValue = "complete"
	StatusFailed     BookStatusValue = "failed"
)

// CanAdvanceTo reports whether moving to next is a forward transition.
// The client never reverts a status: preview -> generating -> {complete|failed}.
func (s BookStatusValue) CanAdvanceTo(next BookStatusValue) bool {
	rank := map[BookStatusValue]int{
		StatusPreview:    0,
		StatusGenerating: 1,
		StatusComplete:   2,
		StatusFailed:     2,
	}
	cur, ok := rank[s]
	if !ok {
		return false
	}
	nxt, ok := rank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// Terminal reports whether no further transitions are possible.
func (s BookStatusValue) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

type Audience string

const (
	AudienceStudents   Audience = "students"
	AudienceDevelopers Audience = "developers"
	AudienceCEOs       Audience = "ceos"
	AudienceGeneral    Audience = "general"
)

type Length string

const (
	LengthShort         Length = "short"
	LengthStandard      Length = "standard"
	LengthComprehensive Length = "comprehensive"
	LengthDissertation  Length = "dissertation"
)

type Style string

const (
	StyleConversational Style = "conversational"
	StyleAcademic       Style = "academic"
	StyleTechnical      Style = "technical"
	StyleBusiness       Style = "business"
)

// BookFormData collects the create-screen inputs for one book.
type BookFormData struct {
	Topic              string   `json:"topic"`
	Audience           Audience `json:"audience"`
	Length             Length   `json:"length"`
	Style              Style    `json:"style"`
	UserEmail          string   `json:"user_email"`
	ExtraIllustrations int      `json:"-"`
}

// DefaultFormData returns the form defaults used when a new session starts.
func DefaultFormData() BookFormData {
	return BookFormData{
		Audience: AudienceGeneral,
		Length:   LengthStandard,
		Style:    StyleConversational,
	}
}

// Chapter is one table-of-contents entry. Ordering is significant and
// chapter 1 is the only unlocked chapter before purchase.
type Chapter struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	Focus     string   `json:"focus,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
}

type Outline struct {
	Title          string    `json:"title"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Chapters       []Chapter `json:"chapters"`
	TotalChapters  int       `json:"totalChapters,omitempty"`
	EstimatedPages int       `json:"estimatedPages,omitempty"`
	EstimatedWords int       `json:"estimatedWords,omitempty"`
}

// ChapterCount prefers the explicit total and falls back to the list length.
func (o Outline) ChapterCount() int {
	if o.TotalChapters > 0 {
		return o.TotalChapters
	}
	return len(o.Chapters)
}

// PreviewResponse is the free sample returned before purchase.
// Price is the authoritative server-computed amount in whole dollars.
type PreviewResponse struct {
	BookID         string          `json:"book_id"`
	Status         BookStatusValue `json:"status"`
	Outline        Outline         `json:"outline"`
	Chapter1       string          `json:"chapter_1"`
	Price          int64           `json:"price"`
	EstimatedPages int             `json:"estimated_pages,omitempty"`
	EstimatedTime  string          `json:"estimated_time,omitempty"`
}

type DownloadURLs struct {
	PDF  string `json:"pdf,omitempty"`
	DOCX string `json:"docx,omitempty"`
	EPUB string `json:"epub,omitempty"`
}

// BookStatus is one generation-progress snapshot.
type BookStatus struct {
	BookID         string          `json:"book_id"`
	Status         BookStatusValue `json:"status"`
	Progress       int             `json:"progress"`
	CurrentChapter int             `json:"current_chapter,omitempty"`
	TotalChapters  int             `json:"total_chapters,omitempty"`
	CurrentStep    string          `json:"current_step,omitempty"`
	CompletedAt    string          `json:"completed_at,omitempty"`
	Outline        *Outline        `json:"outline,omitempty"`
	DownloadURLs   *DownloadURLs   `json:"download_urls,omitempty"`
}

// Book is the locally persisted dashboard entry.
type Book struct {
	BookID     string          `json:"book_id"`
	Title      string          `json:"title"`
	Topic      string          `json:"topic"`
	Status     BookStatusValue `json:"status"`
	Progress   int             `json:"progress"`
	CreatedAt  string          `json:"created_at"`
	Paid       bool            `json:"paid"`
	Price      int64           `json:"price"`
	CoverImage string          `json:"coverImage,omitempty"`
	Outline    *Outline        `json:"outline,omitempty"`
}

// PaymentIntentResponse carries the payment-processor handshake for one
// attempt. Amounts are in cents. Single-use; discarded after confirmation.
type PaymentIntentResponse struct {
	ClientSecret string           `json:"client_secret"`
	TotalAmount  int64            `json:"total_amount"`
	Breakdown    map[string]int64 `json:"breakdown"`
}

// PurchaseResult is the backend's acknowledgement that paid generation started.
type PurchaseResult struct {
	Success   bool   `json:"success"`
	BookID    string `json:"book_id,omitempty"`
	StatusURL string `json:"status_url,omitempty"`
	Message   string `json:"message"`
}
