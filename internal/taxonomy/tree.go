// Package taxonomy holds the marketplace's three-level category tree:
// main category, sub-category, and leaf item.
package taxonomy

import "marketadmin/internal/models"

// Main is a top-level category
type Main struct {
	Name string
	Subs []Sub
}

// Sub is a second-level category with its leaf items
type Sub struct {
	Name  string
	Items []string
}

// Tree is the seeded taxonomy in declaration order
var Tree = []Main{
	{Name: "Electronics", Subs: []Sub{
		{Name: "Mobiles", Items: []string{"Smartphones", "Feature Phones", "Refurbished Phones"}},
		{Name: "Mobile Accessories", Items: []string{"Cases & Covers", "Screen Guards", "Chargers", "Power Banks", "Cables"}},
		{Name: "Laptops", Items: []string{"Gaming Laptops", "Thin & Light Laptops", "2-in-1 Laptops"}},
		{Name: "Computer Accessories", Items: []string{"Keyboards", "Mice", "Monitors", "External Hard Drives", "Pen Drives"}},
		{Name: "Audio", Items: []string{"Headphones", "Earbuds", "Bluetooth Speakers", "Soundbars"}},
		{Name: "Cameras", Items: []string{"DSLR Cameras", "Mirrorless Cameras", "Action Cameras", "Lenses"}},
		{Name: "Wearables", Items: []string{"Smart Watches", "Fitness Bands"}},
	}},
	{Name: "Fashion", Subs: []Sub{
		{Name: "Men's Clothing", Items: []string{"T-Shirts", "Shirts", "Jeans", "Trousers", "Kurtas", "Jackets"}},
		{Name: "Women's Clothing", Items: []string{"Sarees", "Kurtis", "Dresses", "Tops", "Leggings", "Lehengas"}},
		{Name: "Kids' Clothing", Items: []string{"Boys' Clothing", "Girls' Clothing", "Infant Wear"}},
		{Name: "Footwear", Items: []string{"Sports Shoes", "Casual Shoes", "Formal Shoes", "Sandals", "Heels"}},
		{Name: "Bags & Luggage", Items: []string{"Backpacks", "Handbags", "Wallets", "Suitcases"}},
		{Name: "Jewellery", Items: []string{"Necklaces", "Earrings", "Rings", "Bangles"}},
		{Name: "Watches", Items: []string{"Analog Watches", "Digital Watches"}},
	}},
	{Name: "Home & Kitchen", Subs: []Sub{
		{Name: "Kitchen Appliances", Items: []string{"Mixer Grinders", "Microwave Ovens", "Induction Cooktops", "Electric Kettles"}},
		{Name: "Cookware", Items: []string{"Pressure Cookers", "Pans & Tawas", "Kadhais", "Cookware Sets"}},
		{Name: "Home Decor", Items: []string{"Wall Art", "Clocks", "Showpieces", "Candles"}},
		{Name: "Furnishing", Items: []string{"Bedsheets", "Curtains", "Cushions", "Blankets"}},
		{Name: "Furniture", Items: []string{"Beds", "Sofas", "Dining Tables", "Office Chairs", "Wardrobes"}},
		{Name: "Storage & Organisation", Items: []string{"Containers", "Shelves", "Laundry Baskets"}},
	}},
	{Name: "Beauty & Personal Care", Subs: []Sub{
		{Name: "Makeup", Items: []string{"Lipsticks", "Foundation", "Kajal & Eyeliner", "Nail Polish"}},
		{Name: "Skin Care", Items: []string{"Face Wash", "Moisturisers", "Sunscreen", "Serums"}},
		{Name: "Hair Care", Items: []string{"Shampoo", "Conditioner", "Hair Oil", "Hair Dryers"}},
		{Name: "Fragrances", Items: []string{"Perfumes", "Deodorants", "Attars"}},
		{Name: "Men's Grooming", Items: []string{"Trimmers", "Shaving Cream", "Beard Oil"}},
	}},
	{Name: "Grocery", Subs: []Sub{
		{Name: "Staples", Items: []string{"Rice", "Atta & Flours", "Dals & Pulses", "Edible Oils", "Spices"}},
		{Name: "Snacks & Beverages", Items: []string{"Biscuits", "Chips & Namkeen", "Tea", "Coffee", "Juices"}},
		{Name: "Packaged Food", Items: []string{"Noodles & Pasta", "Ready to Cook", "Breakfast Cereals", "Sauces & Spreads"}},
		{Name: "Dairy & Eggs", Items: []string{"Milk", "Paneer & Cheese", "Butter & Ghee", "Eggs"}},
	}},
	{Name: "Sports & Fitness", Subs: []Sub{
		{Name: "Exercise & Fitness", Items: []string{"Dumbbells", "Yoga Mats", "Resistance Bands", "Treadmills"}},
		{Name: "Team Sports", Items: []string{"Cricket", "Football", "Basketball", "Volleyball"}},
		{Name: "Racket Sports", Items: []string{"Badminton", "Tennis", "Table Tennis"}},
		{Name: "Outdoor & Adventure", Items: []string{"Cycling", "Camping", "Hiking"}},
	}},
	{Name: "Books & Stationery", Subs: []Sub{
		{Name: "Books", Items: []string{"Fiction", "Non-Fiction", "Academic", "Children's Books", "Comics"}},
		{Name: "Stationery", Items: []string{"Notebooks", "Pens", "Art Supplies", "Office Supplies"}},
		{Name: "Musical Instruments", Items: []string{"Guitars", "Keyboards & Pianos", "Tablas"}},
	}},
	{Name: "Toys & Baby", Subs: []Sub{
		{Name: "Toys", Items: []string{"Action Figures", "Board Games", "Puzzles", "Soft Toys", "Remote Control Toys"}},
		{Name: "Baby Care", Items: []string{"Diapers", "Baby Wipes", "Baby Food", "Feeding Bottles"}},
		{Name: "Baby Gear", Items: []string{"Strollers", "Car Seats", "Baby Carriers"}},
	}},
}

// MainSummary counts the children of one main category
type MainSummary struct {
	Main          string `json:"main"`
	SubCategories int    `json:"subCategories"`
	Leaves        int    `json:"leaves"`
}

// Flatten returns one node per (main, sub, leaf) in declaration order.
// Every node is active; timestamps are left to the caller.
func Flatten(tree []Main) []models.CategoryNode {
	var nodes []models.CategoryNode
	for _, m := range tree {
		for _, s := range m.Subs {
			for _, item := range s.Items {
				nodes = append(nodes, models.CategoryNode{
					MainCategory:   m.Name,
					SubCategory:    s.Name,
					SubSubCategory: item,
					IsActive:       true,
				})
			}
		}
	}
	return nodes
}

// Summarize counts sub-categories and leaves per main category
func Summarize(tree []Main) []MainSummary {
	out := make([]MainSummary, 0, len(tree))
	for _, m := range tree {
		s := MainSummary{Main: m.Name, SubCategories: len(m.Subs)}
		for _, sub := range m.Subs {
			s.Leaves += len(sub.Items)
		}
		out = append(out, s)
	}
	return out
}

// LeafCount returns the number of leaf rows the tree produces
func LeafCount(tree []Main) int {
	n := 0
	for _, m := range tree {
		for _, s := range m.Subs {
			n += len(s.Items)
		}
	}
	return n
}
