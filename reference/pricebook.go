package reference

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Product is a price-book entry. Owner is empty for the shared book.
type Product struct {
	ID            string  `json:"id"`
	Owner         string  `json:"eigenaar,omitempty"`
	Name          string  `json:"naam"`
	Category      string  `json:"categorie"`
	PurchasePrice float64 `json:"inkoopprijs"`
	SalePrice     float64 `json:"verkoopprijs"`
	Unit          string  `json:"eenheid"`
	LossPercent   float64 `json:"verliesPercentage"`
	Active        bool    `json:"actief"`
}

func (p Product) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Unit, validation.Required),
		validation.Field(&p.PurchasePrice, validation.Min(0.0)),
		validation.Field(&p.SalePrice, validation.Min(0.0)),
		validation.Field(&p.LossPercent, validation.Min(0.0), validation.Max(100.0).Exclusive()),
	)
}

// EffectivePrice is the sale price grossed up by the loss percentage, so the
// quoted net quantity covers cutting and breakage.
func (p Product) EffectivePrice() float64 {
	return p.SalePrice * (1 + p.LossPercent/100)
}

// PriceBook is an immutable, deterministically ordered set of active products.
// Owner-specific products shadow shared ones with the same category and name.
type PriceBook struct {
	products []Product
}

func NewPriceBook(products []Product) PriceBook {
	active := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Active {
			active = append(active, p)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if (a.Owner != "") != (b.Owner != "") {
			return a.Owner != ""
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return PriceBook{products: active}
}

func (b PriceBook) Len() int { return len(b.products) }

// Find resolves a material to a product by category and name, both
// case-insensitive. A miss is reported, never substituted.
func (b PriceBook) Find(category, name string) (Product, bool) {
	for _, p := range b.products {
		if strings.EqualFold(p.Category, category) && strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Product{}, false
}

// Search returns the products in a category whose name contains term.
// An empty category matches every category.
func (b PriceBook) Search(category, term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []Product
	for _, p := range b.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}
