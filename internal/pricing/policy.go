// Package pricing computes displayed prices. All functions are pure; the
// exclusion and promotion rules are fixed at startup.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/panesgr/chatbot-backend/internal/catalog"
)

// IsDiscountExcluded reports whether the product may never be discounted,
// by id, by name keyword, or by category keyword.
func IsDiscountExcluded(p catalog.Product) bool {
	if _, ok := excludedProductIDs[p.ID]; ok {
		return true
	}

	name := strings.ToLower(p.Name)
	for _, keyword := range excludedNameKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}

	for _, category := range p.Categories {
		lowered := strings.ToLower(category)
		for _, keyword := range excludedCategoryKeywords {
			if strings.Contains(lowered, keyword) {
				return true
			}
		}
	}

	return false
}

// BusinessPrice returns the wholesale price for business-tagged products.
// The second return is false when the product is not eligible.
func BusinessPrice(p catalog.Product) (decimal.Decimal, bool) {
	if !p.Price.IsPositive() {
		return decimal.Zero, false
	}
	if !p.HasTag(BusinessTag) {
		return decimal.Zero, false
	}
	if IsDiscountExcluded(p) {
		return decimal.Zero, false
	}
	return discounted(p.Price, businessDiscountPercent), true
}

// SubscriptionPrice returns the recurring-pickup price. Excluded products
// keep their full price.
func SubscriptionPrice(p catalog.Product) decimal.Decimal {
	if IsDiscountExcluded(p) {
		return p.Price
	}
	return discounted(p.Price, subscriptionDiscountPercent)
}

// Promotions returns display-only annotations for the product card. They
// never change the computed price.
func Promotions(p catalog.Product) []string {
	var notes []string
	if _, ok := giftProductIDs[p.ID]; ok {
		notes = append(notes, "🎁 Δώρο με την αγορά")
	}
	name := strings.ToLower(p.Name)
	for _, keyword := range cashbackNameKeywords {
		if strings.Contains(name, keyword) {
			notes = append(notes, "💶 Συμμετέχει σε πρόγραμμα cashback")
			break
		}
	}
	return notes
}

func discounted(price decimal.Decimal, percent int64) decimal.Decimal {
	factor := decimal.NewFromInt(100 - percent).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}
