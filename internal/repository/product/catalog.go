package product

import "shopfront/internal/domain"

func rupees(v int64) *int64 { return &v }

var catalog = []domain.Product{
	{
		ID:            "g1",
		Name:          "Smart Watch Pro X",
		Description:   "Advanced smartwatch with health monitoring, GPS tracking, and 7-day battery life. Water resistant up to 50m.",
		Price:         12999,
		OriginalPrice: rupees(18999),
		Image:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400",
		Category:      domain.CategoryGadgets,
		Rating:        4.5,
		ReviewCount:   2847,
		InStock:       true,
		ExchangeValue: rupees(3000),
		Specifications: map[string]string{
			"Display":          "1.4\" AMOLED",
			"Battery":          "7 days",
			"Water Resistance": "50m",
			"Sensors":          "Heart Rate, SpO2, GPS",
			"Connectivity":     "Bluetooth 5.0, WiFi",
		},
		Reviews: []domain.Review{
			{ID: "r1", UserName: "Rahul K.", Rating: 5, Comment: "Excellent watch! Battery lasts a week easily.", Date: "2024-01-15", Verified: true},
			{ID: "r2", UserName: "Priya S.", Rating: 4, Comment: "Great features but strap could be better.", Date: "2024-01-10", Verified: true},
		},
	},
	{
		ID:            "g2",
		Name:          "Wireless Earbuds Elite",
		Description:   "Premium wireless earbuds with active noise cancellation and 30-hour battery life with case.",
		Price:         4999,
		OriginalPrice: rupees(7999),
		Image:         "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=400",
		Category:      domain.CategoryGadgets,
		Rating:        4.7,
		ReviewCount:   5621,
		InStock:       true,
		ExchangeValue: rupees(1500),
		Specifications: map[string]string{
			"Driver Size": "11mm",
			"Battery":     "8hrs (30hrs with case)",
			"ANC":         "Active Noise Cancellation",
			"Codec":       "AAC, SBC, aptX",
		},
		Reviews: []domain.Review{
			{ID: "r3", UserName: "Amit T.", Rating: 5, Comment: "Best earbuds in this price range!", Date: "2024-01-20", Verified: true},
		},
	},
	{
		ID:            "e1",
		Name:          "Ultra HD Smart TV 55\"",
		Description:   "55-inch 4K Ultra HD Smart LED TV with Dolby Vision, HDR10+, and built-in streaming apps.",
		Price:         42999,
		OriginalPrice: rupees(59999),
		Image:         "https://images.unsplash.com/photo-1593359677879-a4bb92f829d1?w=400",
		Category:      domain.CategoryElectronics,
		Rating:        4.4,
		ReviewCount:   1823,
		InStock:       true,
		ExchangeValue: rupees(8000),
		Specifications: map[string]string{
			"Screen Size":  "55 inches",
			"Resolution":   "4K Ultra HD",
			"HDR":          "Dolby Vision, HDR10+",
			"Smart TV":     "Android TV 11",
			"Refresh Rate": "120Hz",
		},
		Reviews: []domain.Review{
			{ID: "r4", UserName: "Suresh M.", Rating: 5, Comment: "Picture quality is amazing!", Date: "2024-01-18", Verified: true},
		},
	},
	{
		ID:            "e2",
		Name:          "Laptop Pro 15",
		Description:   "Powerful laptop with Intel i7, 16GB RAM, 512GB SSD, and dedicated graphics.",
		Price:         72999,
		OriginalPrice: rupees(89999),
		Image:         "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400",
		Category:      domain.CategoryElectronics,
		Rating:        4.6,
		ReviewCount:   982,
		InStock:       true,
		ExchangeValue: rupees(15000),
		Specifications: map[string]string{
			"Processor": "Intel Core i7-12th Gen",
			"RAM":       "16GB DDR5",
			"Storage":   "512GB NVMe SSD",
			"Display":   "15.6\" FHD IPS",
			"Graphics":  "NVIDIA RTX 3050",
		},
		Reviews: []domain.Review{
			{ID: "r5", UserName: "Vikram R.", Rating: 5, Comment: "Perfect for work and gaming!", Date: "2024-01-12", Verified: true},
		},
	},
	{
		ID:            "s1",
		Name:          "Professional Running Shoes",
		Description:   "Lightweight running shoes with responsive cushioning and breathable mesh upper.",
		Price:         3499,
		OriginalPrice: rupees(5999),
		Image:         "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
		Category:      domain.CategorySports,
		Rating:        4.3,
		ReviewCount:   3421,
		InStock:       true,
		ExchangeValue: rupees(800),
		Specifications: map[string]string{
			"Material": "Breathable Mesh",
			"Sole":     "Responsive Foam",
			"Weight":   "280g",
			"Closure":  "Lace-up",
		},
		Reviews: []domain.Review{
			{ID: "r6", UserName: "Ankit P.", Rating: 4, Comment: "Very comfortable for long runs.", Date: "2024-01-14", Verified: true},
		},
	},
	{
		ID:            "s2",
		Name:          "Yoga Mat Premium",
		Description:   "Extra thick yoga mat with non-slip surface and carrying strap.",
		Price:         1299,
		OriginalPrice: rupees(1999),
		Image:         "https://images.unsplash.com/photo-1601925260368-ae2f83cf8b7f?w=400",
		Category:      domain.CategorySports,
		Rating:        4.8,
		ReviewCount:   1567,
		InStock:       true,
		ExchangeValue: rupees(300),
		Specifications: map[string]string{
			"Thickness": "8mm",
			"Material":  "TPE Eco-friendly",
			"Size":      "183 x 61 cm",
			"Features":  "Non-slip, Carrying strap",
		},
		Reviews: []domain.Review{
			{ID: "r7", UserName: "Meera L.", Rating: 5, Comment: "Best yoga mat I have used!", Date: "2024-01-16", Verified: true},
		},
	},
	{
		ID:            "f1",
		Name:          "Classic Denim Jacket",
		Description:   "Timeless denim jacket with modern fit. Perfect for casual and semi-formal occasions.",
		Price:         2499,
		OriginalPrice: rupees(3999),
		Image:         "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400",
		Category:      domain.CategoryFashion,
		Rating:        4.5,
		ReviewCount:   2134,
		InStock:       true,
		ExchangeValue: rupees(600),
		Specifications: map[string]string{
			"Material": "100% Cotton Denim",
			"Fit":      "Regular",
			"Care":     "Machine Washable",
			"Closure":  "Button",
		},
		Reviews: []domain.Review{
			{ID: "r8", UserName: "Neha G.", Rating: 5, Comment: "Fits perfectly and looks great!", Date: "2024-01-19", Verified: true},
		},
	},
	{
		ID:            "f2",
		Name:          "Designer Sneakers",
		Description:   "Premium leather sneakers with cushioned insole and durable rubber outsole.",
		Price:         4999,
		OriginalPrice: rupees(6999),
		Image:         "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=400",
		Category:      domain.CategoryFashion,
		Rating:        4.6,
		ReviewCount:   1876,
		InStock:       true,
		ExchangeValue: rupees(1200),
		Specifications: map[string]string{
			"Material": "Premium Leather",
			"Sole":     "Rubber",
			"Insole":   "Memory Foam",
			"Style":    "Casual",
		},
		Reviews: []domain.Review{
			{ID: "r9", UserName: "Karan S.", Rating: 5, Comment: "Super comfortable and stylish!", Date: "2024-01-17", Verified: true},
		},
	},
	{
		ID:            "b1",
		Name:          "Skincare Essential Kit",
		Description:   "Complete skincare routine with cleanser, toner, serum, and moisturizer.",
		Price:         1899,
		OriginalPrice: rupees(2999),
		Image:         "https://images.unsplash.com/photo-1556228720-195a672e8a03?w=400",
		Category:      domain.CategoryBeauty,
		Rating:        4.7,
		ReviewCount:   4532,
		InStock:       true,
		ExchangeValue: rupees(400),
		Specifications: map[string]string{
			"Contains":  "4 Products",
			"Skin Type": "All",
			"Benefits":  "Hydration, Glow",
			"Size":      "Full Size",
		},
		Reviews: []domain.Review{
			{ID: "r10", UserName: "Deepika M.", Rating: 5, Comment: "My skin has never looked better!", Date: "2024-01-21", Verified: true},
		},
	},
	{
		ID:            "b2",
		Name:          "Hair Care Bundle",
		Description:   "Professional hair care set with shampoo, conditioner, and hair serum.",
		Price:         1499,
		OriginalPrice: rupees(2199),
		Image:         "https://images.unsplash.com/photo-1522337360788-8b13dee7a37e?w=400",
		Category:      domain.CategoryBeauty,
		Rating:        4.4,
		ReviewCount:   2187,
		InStock:       true,
		ExchangeValue: rupees(350),
		Specifications: map[string]string{
			"Contains":     "3 Products",
			"Hair Type":    "All",
			"Benefits":     "Repair, Shine",
			"Sulfate Free": "Yes",
		},
		Reviews: []domain.Review{
			{ID: "r11", UserName: "Shruti K.", Rating: 4, Comment: "Great products, lovely fragrance!", Date: "2024-01-13", Verified: true},
		},
	},
	{
		ID:            "h1",
		Name:          "Smart Air Purifier",
		Description:   "HEPA air purifier with smart controls, covers up to 500 sq ft.",
		Price:         8999,
		OriginalPrice: rupees(12999),
		Image:         "https://images.unsplash.com/photo-1585771724684-38269d6639fd?w=400",
		Category:      domain.CategoryHome,
		Rating:        4.5,
		ReviewCount:   1234,
		InStock:       true,
		ExchangeValue: rupees(2000),
		Specifications: map[string]string{
			"Coverage":       "500 sq ft",
			"Filter":         "True HEPA",
			"CADR":           "350 m³/h",
			"Smart Features": "App Control, Auto Mode",
		},
		Reviews: []domain.Review{
			{ID: "r12", UserName: "Rajesh N.", Rating: 5, Comment: "Air quality improved significantly!", Date: "2024-01-22", Verified: true},
		},
	},
	{
		ID:            "h2",
		Name:          "Robot Vacuum Cleaner",
		Description:   "Smart robot vacuum with mapping, auto-charging, and app control.",
		Price:         15999,
		OriginalPrice: rupees(22999),
		Image:         "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400",
		Category:      domain.CategoryHome,
		Rating:        4.3,
		ReviewCount:   876,
		InStock:       true,
		ExchangeValue: rupees(3500),
		Specifications: map[string]string{
			"Suction":        "2500Pa",
			"Battery":        "150 min",
			"Navigation":     "LiDAR Mapping",
			"Smart Features": "App, Voice Control",
		},
		Reviews: []domain.Review{
			{ID: "r13", UserName: "Kavita T.", Rating: 4, Comment: "Makes cleaning so easy!", Date: "2024-01-11", Verified: true},
		},
	},
}
