package pricing

// Discount and promotion rules are fixed business configuration, reviewed
// with the retailer. Infant formula and related products are excluded from
// every percentage discount by regulation.

const (
	// BusinessTag marks products eligible for the wholesale discount.
	BusinessTag = "business"
	// SubscriptionTag marks products promoted for subscriptions.
	SubscriptionTag = "syndromes"

	businessDiscountPercent     = 20
	subscriptionDiscountPercent = 10
)

var excludedProductIDs = map[int64]struct{}{
	18250: {},
	18274: {},
	19102: {},
}

var excludedNameKeywords = []string{
	"humana",
	"aptamil",
	"novalac",
	"frezylac",
	"almiron",
	"βρεφικό γάλα",
	"βρεφικο γαλα",
}

var excludedCategoryKeywords = []string{
	"βρεφικά γάλατα",
	"βρεφικα γαλατα",
	"γάλατα",
}

// giftProductIDs get a free-gift annotation on the product card.
var giftProductIDs = map[int64]struct{}{
	17460: {},
	17461: {},
}

// cashbackNameKeywords get a cashback annotation on the product card.
var cashbackNameKeywords = []string{
	"pampers premium care",
	"babylino sensitive",
}
