package domain

type Product struct {
	Model         `bson:",inline"`
	Image         string  `bson:"image" json:"image"`
	Title         string  `bson:"title" json:"title"`
	Description   string  `bson:"description" json:"description"`
	Category      string  `bson:"category" json:"category"`
	Brand         string  `bson:"brand" json:"brand"`
	Price         float64 `bson:"price" json:"price"`
	SalePrice     float64 `bson:"salePrice" json:"salePrice"`
	TotalStock    int     `bson:"totalStock" json:"totalStock"`
	AverageReview float64 `bson:"averageReview" json:"averageReview"`
}

func (Product) CollectionName() string {
	return "products"
}

// EffectivePrice is the sale price when one is set.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
