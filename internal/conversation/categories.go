package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/panesgr/chatbot-backend/internal/catalog"
)

// category maps a menu entry to the catalog lookup behind it: a curated
// tag slug when the shop maintains one, a free-text query otherwise.
// NoDiscount flags regulated categories; the flag only annotates the
// listing.
type category struct {
	Label      string
	Query      string
	Tag        string
	NoDiscount bool
}

var categories = []category{
	{Label: "Πάνες", Tag: "panes"},
	{Label: "Μωρομάντηλα", Tag: "moromantila"},
	{Label: "Βρεφικά γάλατα", Query: "βρεφικό γάλα", NoDiscount: true},
	{Label: "Καλλυντικά & περιποίηση", Query: "καλλυντικά"},
	{Label: "Χαρτικά & οικιακά", Query: "χαρτικά"},
}

func categoriesText() string {
	var b strings.Builder
	b.WriteString("📂 *Κατηγορίες προϊόντων:*\n\n")
	for i, c := range categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Label)
	}
	b.WriteString("\nΣτείλτε τον αριθμό της κατηγορίας.")
	return b.String()
}

func (s *Service) handleCategories(ctx context.Context, t *turn) string {
	choice, err := strconv.Atoi(strings.TrimSpace(t.text))
	if err != nil || choice < 1 || choice > len(categories) {
		return invalidChoiceText(len(categories))
	}

	selected := categories[choice-1]
	var products []catalog.Product
	if selected.Tag != "" {
		products = s.catalog.ByTag(ctx, selected.Tag, searchLimit)
	} else {
		products = s.catalog.Search(ctx, selected.Query, searchLimit)
	}
	if len(products) == 0 {
		return "Δεν βρέθηκαν προϊόντα στην κατηγορία «" + selected.Label + "». Δοκιμάστε άλλη κατηγορία ή στείλτε «μενού»."
	}
	return s.showResults(t, products, "📂 *"+selected.Label+":*", selected.NoDiscount)
}
