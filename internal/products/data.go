package products

import "github.com/shopspring/decimal"

var seedCategories = []Category{
	{ID: 1, Name: "Yoga Gear", Slug: "yoga-gear"},
	{ID: 2, Name: "Eco Balls", Slug: "eco-balls"},
	{ID: 3, Name: "Sustainable Fitness", Slug: "sustainable-fitness"},
	{ID: 4, Name: "Outdoor Equipment", Slug: "outdoor-equipment"},
	{ID: 5, Name: "Water Sports", Slug: "water-sports"},
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var seedProducts = []Product{
	{
		ID:            1,
		Name:          "Eco Bamboo Yoga Mat",
		Category:      "Yoga Gear",
		CategoryID:    1,
		Price:         price("89.99"),
		OriginalPrice: price("119.99"),
		Description:   "Premium bamboo yoga mat made from sustainable materials. Non-slip surface with natural antimicrobial properties.",
		Image:         "eco-bamboo-yoga-mat-in-use",
		EcoTag:        "Biodegradable",
		InStock:       true,
		Rating:        4.8,
		Features:      []string{"100% Bamboo Fiber", "Non-slip Surface", "Antimicrobial", "Biodegradable", "6mm Thickness"},
	},
	{
		ID:            2,
		Name:          "Recycled Soccer Ball",
		Category:      "Eco Balls",
		CategoryID:    2,
		Price:         price("34.99"),
		OriginalPrice: price("49.99"),
		Description:   "Professional-grade soccer ball made from 100% recycled ocean plastic. FIFA approved quality.",
		Image:         "recycled-soccer-ball-on-grass-field",
		EcoTag:        "Ocean Plastic",
		InStock:       true,
		Rating:        4.6,
		Features:      []string{"100% Ocean Plastic", "FIFA Approved", "Professional Grade", "Traditional Design", "Durable Construction"},
	},
	{
		ID:            3,
		Name:          "Cork Yoga Blocks Set",
		Category:      "Yoga Gear",
		CategoryID:    1,
		Price:         price("24.99"),
		OriginalPrice: price("34.99"),
		Description:   "Set of 2 natural cork yoga blocks. Lightweight, antimicrobial, and sustainably harvested.",
		Image:         "set-of-two-cork-yoga-blocks",
		EcoTag:        "Sustainable Cork",
		InStock:       true,
		Rating:        4.7,
		Features:      []string{"Natural Cork", "Set of 2", "Antimicrobial", "Lightweight", "Sustainable Harvest"},
	},
	{
		ID:            4,
		Name:          "Organic Cotton Resistance Bands",
		Category:      "Sustainable Fitness",
		CategoryID:    3,
		Price:         price("19.99"),
		OriginalPrice: price("29.99"),
		Description:   "Set of 3 resistance bands made from organic cotton and natural latex. Multiple resistance levels.",
		Image:         "set-of-organic-cotton-resistance-bands",
		EcoTag:        "Organic Cotton",
		InStock:       true,
		Rating:        4.5,
		Features:      []string{"Organic Cotton", "Natural Latex", "3 Resistance Levels", "Skin-Friendly", "Durable Design"},
	},
	{
		ID:            5,
		Name:          "Bamboo Water Bottle",
		Category:      "Outdoor Equipment",
		CategoryID:    4,
		Price:         price("29.99"),
		OriginalPrice: price("39.99"),
		Description:   "Insulated bamboo water bottle with stainless steel interior. Keeps drinks cold for 24h, hot for 12h.",
		Image:         "bamboo-water-bottle-with-nature-background",
		EcoTag:        "Bamboo Fiber",
		InStock:       true,
		Rating:        4.9,
		Features:      []string{"Bamboo Exterior", "Stainless Steel Interior", "Double-Wall Insulation", "Leak-Proof", "500ml Capacity"},
	},
	{
		ID:            6,
		Name:          "Recycled Foam Roller",
		Category:      "Sustainable Fitness",
		CategoryID:    3,
		Price:         price("39.99"),
		OriginalPrice: price("54.99"),
		Description:   "High-density foam roller made from recycled materials. Perfect for muscle recovery and massage.",
		Image:         "recycled-foam-roller-in-use-for-back-massage",
		EcoTag:        "Recycled Materials",
		InStock:       true,
		Rating:        4.4,
		Features:      []string{"100% Recycled Foam", "High Density", "Textured Surface", "Lightweight", "Travel-Friendly"},
	},
	{
		ID:            7,
		Name:          "Hemp Jump Rope",
		Category:      "Sustainable Fitness",
		CategoryID:    3,
		Price:         price("16.99"),
		OriginalPrice: price("24.99"),
		Description:   "Natural hemp fiber jump rope with wooden handles. Adjustable length for all heights.",
		Image:         "hemp-jump-rope-with-wooden-handles",
		EcoTag:        "Hemp Fiber",
		InStock:       true,
		Rating:        4.3,
		Features:      []string{"Natural Hemp Rope", "Wooden Handles", "Adjustable Length", "Lightweight", "Traditional Design"},
	},
	{
		ID:            8,
		Name:          "Eco Tennis Ball Set",
		Category:      "Eco Balls",
		CategoryID:    2,
		Price:         price("12.99"),
		OriginalPrice: price("18.99"),
		Description:   "Set of 3 tennis balls made from natural rubber and recycled felt. ITF approved.",
		Image:         "set-of-eco-tennis-balls-on-court",
		EcoTag:        "Natural Rubber",
		InStock:       true,
		Rating:        4.6,
		Features:      []string{"Natural Rubber Core", "Recycled Felt", "ITF Approved", "Set of 3", "Consistent Bounce"},
	},
}
