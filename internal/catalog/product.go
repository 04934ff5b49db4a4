package catalog

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockInStock    StockStatus = "instock"
	StockOutOfStock StockStatus = "outofstock"
)

// Product is a read-only catalog entry sourced from the products API.
type Product struct {
	ID               int64
	Name             string
	Price            decimal.Decimal
	StockStatus      StockStatus
	SKU              string
	ShortDescription string
	Tags             []string
	Categories       []string
}

func (p Product) InStock() bool {
	return p.StockStatus == StockInStock
}

func (p Product) HasTag(slug string) bool {
	for _, tag := range p.Tags {
		if strings.EqualFold(tag, slug) {
			return true
		}
	}
	return false
}

type productPayload struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Price            string `json:"price"`
	StockStatus      string `json:"stock_status"`
	SKU              string `json:"sku"`
	ShortDescription string `json:"short_description"`
	Tags             []struct {
		Slug string `json:"slug"`
	} `json:"tags"`
	Categories []struct {
		Name string `json:"name"`
	} `json:"categories"`
}

var htmlTagRe = regexp.MustCompile(`<[^<]+?>`)

func (p productPayload) toProduct() Product {
	price, err := decimal.NewFromString(strings.TrimSpace(p.Price))
	if err != nil {
		price = decimal.Zero
	}

	product := Product{
		ID:               p.ID,
		Name:             p.Name,
		Price:            price,
		StockStatus:      StockStatus(p.StockStatus),
		SKU:              p.SKU,
		ShortDescription: strings.TrimSpace(htmlTagRe.ReplaceAllString(p.ShortDescription, "")),
	}
	for _, tag := range p.Tags {
		product.Tags = append(product.Tags, tag.Slug)
	}
	for _, cat := range p.Categories {
		product.Categories = append(product.Categories, cat.Name)
	}
	return product
}
