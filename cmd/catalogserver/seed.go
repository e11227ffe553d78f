package main

import "github.com/merchkit/catalog/internal/importer"

// sampleCatalog returns a small development data set covering all three
// category variants and all three attribute types.
func sampleCatalog() importer.Payload {
	return importer.Payload{
		Categories: []importer.CategoryData{
			{Name: "all"},
			{Name: "clothes"},
			{Name: "tech"},
		},
		Products: []importer.ProductData{
			{
				ID:          "huarache-x-stussy-le",
				Name:        "Nike Air Huarache Le",
				InStock:     true,
				Description: "<p>Great sneakers for everyday use!</p>",
				Category:    "clothes",
				Brand:       "Nike x Stussy",
				Gallery: []string{
					"https://cdn.example.com/products/huarache-1.jpg",
					"https://cdn.example.com/products/huarache-2.jpg",
				},
				Attributes: []importer.AttributeData{
					{
						Name: "Size",
						Type: "text",
						Items: []importer.AttributeItemData{
							{DisplayValue: "40", Value: "40", ID: "40"},
							{DisplayValue: "41", Value: "41", ID: "41"},
							{DisplayValue: "42", Value: "42", ID: "42"},
							{DisplayValue: "43", Value: "43", ID: "43"},
						},
					},
				},
				Prices: []importer.PriceData{
					newPrice(144.69, "USD", "$"),
				},
			},
			{
				ID:          "jacket-canada-goosee",
				Name:        "Jacket",
				InStock:     true,
				Description: "<p>Awesome winter jacket</p>",
				Category:    "clothes",
				Brand:       "Canada Goose",
				Gallery: []string{
					"https://cdn.example.com/products/jacket-1.jpg",
				},
				Attributes: []importer.AttributeData{
					{
						Name: "Size",
						Type: "select",
						Items: []importer.AttributeItemData{
							{DisplayValue: "Small", Value: "S", ID: "Small"},
							{DisplayValue: "Medium", Value: "M", ID: "Medium"},
							{DisplayValue: "Large", Value: "L", ID: "Large"},
						},
					},
				},
				Prices: []importer.PriceData{
					newPrice(518.47, "USD", "$"),
				},
			},
			{
				ID:          "apple-imac-2021",
				Name:        "iMac 2021",
				InStock:     true,
				Description: "The new iMac!",
				Category:    "tech",
				Brand:       "Apple",
				Gallery: []string{
					"https://cdn.example.com/products/imac-1.jpg",
				},
				Attributes: []importer.AttributeData{
					{
						Name: "Capacity",
						Type: "select",
						Items: []importer.AttributeItemData{
							{DisplayValue: "256GB", Value: "256GB", ID: "256GB"},
							{DisplayValue: "512GB", Value: "512GB", ID: "512GB"},
						},
					},
					{
						Name: "Color",
						Type: "swatch",
						Items: []importer.AttributeItemData{
							{DisplayValue: "Green", Value: "#44FF03", ID: "Green"},
							{DisplayValue: "Blue", Value: "#030BFF", ID: "Blue"},
						},
					},
					{
						Name: "With USB 3 ports",
						Type: "select",
						Items: []importer.AttributeItemData{
							{DisplayValue: "Yes", Value: "Yes", ID: "Yes"},
							{DisplayValue: "No", Value: "No", ID: "No"},
						},
					},
				},
				Prices: []importer.PriceData{
					newPrice(1688.03, "USD", "$"),
				},
			},
			{
				ID:          "apple-iphone-12-pro",
				Name:        "iPhone 12 Pro",
				InStock:     false,
				Description: "This is iPhone 12. Nothing else to say.",
				Category:    "tech",
				Brand:       "Apple",
				Gallery: []string{
					"https://cdn.example.com/products/iphone-1.jpg",
				},
				Attributes: []importer.AttributeData{
					{
						Name: "Capacity",
						Type: "select",
						Items: []importer.AttributeItemData{
							{DisplayValue: "512G", Value: "512G", ID: "512G"},
							{DisplayValue: "1T", Value: "1T", ID: "1T"},
						},
					},
				},
				Prices: []importer.PriceData{
					newPrice(1000.76, "USD", "$"),
				},
			},
		},
	}
}

func newPrice(amount float64, label, symbol string) importer.PriceData {
	price := importer.PriceData{Amount: amount}
	price.Currency.Label = label
	price.Currency.Symbol = symbol
	return price
}
