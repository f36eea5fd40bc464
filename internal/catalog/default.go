package catalog

import "github.com/shopspring/decimal"

// Default returns the built-in TechShop product line-up.
func Default() *Catalog {
	products := []Product{
		{ID: 1, Name: "Wireless Headphones", Price: price("79.99"), Description: "Premium noise-canceling headphones with 30-hour battery life", Icon: "🎧"},
		{ID: 2, Name: "Smart Watch", Price: price("199.99"), Description: "Fitness tracking, heart rate monitor, and notifications", Icon: "⌚"},
		{ID: 3, Name: "Laptop Stand", Price: price("49.99"), Description: "Ergonomic aluminum stand for better posture", Icon: "💻"},
		{ID: 4, Name: "Wireless Mouse", Price: price("29.99"), Description: "Ergonomic design with precision tracking", Icon: "🖱️"},
		{ID: 5, Name: "USB-C Hub", Price: price("39.99"), Description: "7-in-1 hub with HDMI, USB ports, and SD card reader", Icon: "🔌"},
		{ID: 6, Name: "Portable Charger", Price: price("34.99"), Description: "20,000mAh power bank with fast charging", Icon: "🔋"},
		{ID: 7, Name: "Webcam HD", Price: price("89.99"), Description: "1080p webcam with auto-focus and built-in microphone", Icon: "📷"},
		{ID: 8, Name: "Bluetooth Speaker", Price: price("59.99"), Description: "Waterproof speaker with 12-hour playtime", Icon: "🔊"},
		{ID: 9, Name: "Mechanical Keyboard", Price: price("129.99"), Description: "RGB backlit with cherry MX switches", Icon: "⌨️"},
	}
	c, err := New(products)
	if err != nil {
		// The built-in list is static; a validation failure here is a bug.
		panic(err)
	}
	return c
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
