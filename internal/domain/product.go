package domain

// Category identifies a catalog section.
type Category string

const (
	CategoryGadgets     Category = "gadgets"
	CategoryElectronics Category = "electronics"
	CategorySports      Category = "sports"
	CategoryFashion     Category = "fashion"
	CategoryBeauty      Category = "beauty"
	CategoryHome        Category = "home"
)

// Valid reports whether c is one of the known catalog sections.
func (c Category) Valid() bool {
	switch c {
	case CategoryGadgets, CategoryElectronics, CategorySports, CategoryFashion, CategoryBeauty, CategoryHome:
		return true
	}
	return false
}

// CategoryInfo is the display entry for a category.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}

// Product is an immutable catalog entry. Prices are whole rupees.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	OriginalPrice  *int64            `json:"originalPrice,omitempty"`
	Image          string            `json:"image"`
	Category       Category          `json:"category"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	InStock        bool              `json:"inStock"`
	ExchangeValue  *int64            `json:"exchangeValue,omitempty"`
	Specifications map[string]string `json:"specifications"`
	Reviews        []Review          `json:"reviews"`
}

// ExchangeDiscount returns the trade-in value, or 0 when the product has none.
func (p Product) ExchangeDiscount() int64 {
	if p.ExchangeValue == nil {
		return 0
	}
	return *p.ExchangeValue
}

type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
	Verified bool   `json:"verified"`
}
