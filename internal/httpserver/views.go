package httpserver

import (
	"shopfront/internal/domain"
	"shopfront/internal/money"
	"shopfront/internal/service/checkout"
)

// productView adds display fields to a catalog product.
type productView struct {
	domain.Product
	DiscountPercent    int    `json:"discountPercent"`
	PriceLabel         string `json:"priceLabel"`
	OriginalPriceLabel string `json:"originalPriceLabel,omitempty"`
	ExchangeValueLabel string `json:"exchangeValueLabel,omitempty"`
}

func toProductView(p domain.Product) productView {
	v := productView{
		Product:         p,
		DiscountPercent: money.DiscountPercent(p.Price, p.OriginalPrice),
		PriceLabel:      money.FormatINR(p.Price),
	}
	if p.OriginalPrice != nil {
		v.OriginalPriceLabel = money.FormatINR(*p.OriginalPrice)
	}
	if p.ExchangeValue != nil {
		v.ExchangeValueLabel = money.FormatINR(*p.ExchangeValue)
	}
	return v
}

func toProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

type cartLineView struct {
	Product        productView `json:"product"`
	Quantity       int         `json:"quantity"`
	LineTotal      int64       `json:"lineTotal"`
	LineTotalLabel string      `json:"lineTotalLabel"`
}

type summaryView struct {
	checkout.Summary
	TotalLabel string `json:"totalLabel"`
}

type cartView struct {
	Items           []cartLineView `json:"items"`
	Count           int            `json:"count"`
	CartTotal       int64          `json:"cartTotal"`
	ExchangeProduct *productView   `json:"exchangeProduct"`
	Summary         summaryView    `json:"summary"`
}

type cartReader interface {
	Cart() []domain.CartItem
	CartCount() int
	CartTotal() int64
	ExchangeProduct() *domain.Product
}

func toCartView(st cartReader, quoter checkoutService) cartView {
	items := st.Cart()
	exchange := st.ExchangeProduct()
	v := cartView{
		Items:     make([]cartLineView, 0, len(items)),
		Count:     st.CartCount(),
		CartTotal: st.CartTotal(),
	}
	for _, item := range items {
		v.Items = append(v.Items, cartLineView{
			Product:        toProductView(item.Product),
			Quantity:       item.Quantity,
			LineTotal:      item.LineTotal(),
			LineTotalLabel: money.FormatINR(item.LineTotal()),
		})
	}
	if exchange != nil {
		ev := toProductView(*exchange)
		v.ExchangeProduct = &ev
	}
	v.Summary = toSummaryView(quoter.Quote(items, exchange))
	return v
}

func toSummaryView(s checkout.Summary) summaryView {
	return summaryView{Summary: s, TotalLabel: money.FormatINR(s.Total)}
}
