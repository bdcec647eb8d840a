package renderer

import (
	"html/template"

	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New() *render.Render {
	return render.New(render.Options{
		Layout:     "layout",
		Extensions: []string{".html"},
		Funcs: []template.FuncMap{
			{
				"formatPrice": func(amount decimal.Decimal) string {
					return format.Price(amount)
				},
				"formatPricePtr": func(amount *decimal.Decimal) string {
					return format.PricePtr(amount)
				},
				"discountPercent": func(p models.Product) int {
					return p.DiscountPercent()
				},
				"primaryImage": func(p models.Product) string {
					return p.PrimaryImage()
				},
				"formatDate":      format.Date,
				"formatShortDate": format.ShortDate,
				"truncate":        format.Truncate,
				"collectionTypeLabel": func(t models.CollectionType) string {
					return t.Label()
				},
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"min": func(a, b int) int {
					if a < b {
						return a
					}
					return b
				},
				"max": func(a, b int) int {
					if a > b {
						return a
					}
					return b
				},
			},
		},
	})
}
