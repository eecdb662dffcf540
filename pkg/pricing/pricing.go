package pricing

import "bookforge/pkg/domain"

// Tier describes one advertised book length tier. Prices are whole dollars.
type Tier struct {
	Length      domain.Length
	Name        string
	Price       int64
	Chapters    string
	Words       string
	Description string
}

// Tiers is the advertised pricing table, in display order. The server price
// on PreviewResponse remains authoritative; this table only feeds the
// pre-preview estimate and the landing screen.
var Tiers = []Tier{
	{domain.LengthShort, "Short", 29, "5-7", "15K-25K", "Quick guide or introduction"},
	{domain.LengthStandard, "Standard", 49, "8-12", "30K-50K", "Complete book for most topics"},
	{domain.LengthComprehensive, "Comprehensive", 99, "15-20", "60K-80K", "In-depth coverage with examples"},
	{domain.LengthDissertation, "Dissertation", 199, "25-30", "100K+", "Academic-level depth and rigor"},
}

// Per-unit add-on prices in whole dollars. One cover image is always free;
// extra illustrations are billed per unit.
const (
	AddOnExtraIllustration = "extra_illustration"
	AddOnIllustrations     = "illustrations"
	AddOnCover             = "cover"
	AddOnRush              = "rush"
	AddOnEditing           = "editing"
	AddOnPublishing        = "publishing"
)

var addOnPrices = map[string]int64{
	AddOnExtraIllustration: 1,
	AddOnIllustrations:     20,
	AddOnCover:             19,
	AddOnRush:              29,
	AddOnEditing:           99,
	AddOnPublishing:        49,
}

// AddOnPrice returns the per-unit price for an add-on id, 0 when unknown.
func AddOnPrice(id string) int64 {
	return addOnPrices[id]
}

// BasePrice returns the tier price for a length. Unknown lengths fall back
// to the standard tier so an estimate is always displayable.
func BasePrice(length domain.Length) int64 {
	for _, t := range Tiers {
		if t.Length == length {
			return t.Price
		}
	}
	return BasePrice(domain.LengthStandard)
}

// TierFor returns the tier metadata for a length.
func TierFor(length domain.Length) (Tier, bool) {
	for _, t := range Tiers {
		if t.Length == length {
			return t, true
		}
	}
	return Tier{}, false
}

// Quote is a displayed total. It is advisory until the backend returns an
// authoritative price.
type Quote struct {
	Base               int64
	ExtraIllustrations int
	Selected           []string
	ServerPriced       bool
}

// Estimate builds a quote from the local tier table, before any server
// price exists.
func Estimate(length domain.Length, extraIllustrations int) Quote {
	return Quote{
		Base:               BasePrice(length),
		ExtraIllustrations: max(0, extraIllustrations),
	}
}

// FromServer builds a quote from a server-computed base price, which the UI
// must prefer once available.
func FromServer(base int64, extraIllustrations int) Quote {
	return Quote{
		Base:               base,
		ExtraIllustrations: max(0, extraIllustrations),
		ServerPriced:       true,
	}
}

// IllustrationsTotal is the extras charge: $1 per extra illustration, the
// first cover image being free.
func (q Quote) IllustrationsTotal() int64 {
	return int64(q.ExtraIllustrations) * addOnPrices[AddOnExtraIllustration]
}

// SelectedTotal is the charge for the selected optional add-ons.
func (q Quote) SelectedTotal() int64 {
	var sum int64
	for _, id := range q.Selected {
		sum += addOnPrices[id]
	}
	return sum
}

// Total is base plus extras and is always >= base.
func (q Quote) Total() int64 {
	return q.Base + q.IllustrationsTotal() + q.SelectedTotal()
}

// AddOns builds the add-on id list the payment endpoints expect: the
// selected optional add-ons plus one extra_illustration entry per unit.
func (q Quote) AddOns() []string {
	ids := make([]string, 0, len(q.Selected)+q.ExtraIllustrations)
	ids = append(ids, q.Selected...)
	for i := 0; i < q.ExtraIllustrations; i++ {
		ids = append(ids, AddOnExtraIllustration)
	}
	return ids
}
