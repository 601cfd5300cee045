package store

// SampleCatalog returns the demo products the storefront starts with when seeding is enabled.
func SampleCatalog() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "High-Performance Laptop",
			Description: "16GB RAM, 512GB SSD, 15-inch display",
			Price:       7999,
			Details:     "Latest-generation processor with outstanding performance and battery life. A thin and light design that suits professionals and students alike.",
		},
		{
			ID:          2,
			Name:        "Wireless Noise-Cancelling Headphones",
			Description: "40-hour battery, active noise cancelling, hi-fi sound",
			Price:       1299,
			Details:     "Active noise cancelling blocks out the world around you while high-quality drivers deliver immersive sound. Up to 40 hours of playback for long trips.",
		},
		{
			ID:          3,
			Name:        "Smart Watch",
			Description: "Heart-rate monitoring, sleep tracking, 5ATM water resistance",
			Price:       1599,
			Details:     "More than a watch: built-in heart-rate sensor and sleep analysis help you stay healthy, and 5ATM water resistance makes it fit for any activity.",
		},
		{
			ID:          4,
			Name:        "4K Smart TV",
			Description: "55-inch, Dolby Vision, voice control",
			Price:       3499,
			Details:     "A 55-inch 4K panel with Dolby Vision and HDR support. The built-in assistant lets you control the TV and search for content by voice.",
		},
		{
			ID:          5,
			Name:        "Portable Bluetooth Speaker",
			Description: "Waterproof, 24-hour playback, dual bass",
			Price:       399,
			Details:     "Powerful sound with deep bass. The waterproof body works outdoors or in the bathroom, and one charge plays for 24 hours.",
		},
		{
			ID:          6,
			Name:        "HD Digital Camera",
			Description: "24MP, 30x optical zoom, 4K video",
			Price:       4299,
			Details:     "A 24-megapixel sensor with a 30x optical zoom lens captures distant, detailed shots. Records 4K video with fast, accurate autofocus.",
		},
	}
}
