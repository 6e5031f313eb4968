package models

import (
	"time"

	"gorm.io/datatypes"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleItems returns a fresh copy of the demo catalog.
func SampleItems() []Item {
	return []Item{
		{
			ID:             "1",
			Title:          "Vintage Denim Jacket",
			Description:    "Classic vintage denim jacket from the 90s. Excellent condition with minimal wear. Perfect for layering and adding a retro touch to any outfit.",
			Category:       "Outerwear",
			Type:           "Jacket",
			Size:           "M",
			Condition:      "Excellent",
			Tags:           datatypes.NewJSONSlice([]string{"vintage", "denim", "casual", "retro"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1544966503-7cc5ac882d5e"}),
			UserID:         "user1",
			UploaderName:   "Sarah Johnson",
			UploaderEmail:  "sarah@example.com",
			PointsRequired: 50,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-15T10:30:00Z"),
			Location:       "New York, NY",
		},
		{
			ID:             "2",
			Title:          "Designer Silk Scarf",
			Description:    "Luxurious silk scarf with beautiful floral patterns. Authentic designer piece, barely worn. Adds elegance to any ensemble.",
			Category:       "Accessories",
			Type:           "Scarf",
			Size:           "One Size",
			Condition:      "Like New",
			Tags:           datatypes.NewJSONSlice([]string{"designer", "silk", "elegant", "formal"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1590736969955-71cc94901144"}),
			UserID:         "user2",
			UploaderName:   "Emily Chen",
			UploaderEmail:  "emily@example.com",
			PointsRequired: 75,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-14T14:20:00Z"),
			Location:       "Los Angeles, CA",
		},
		{
			ID:             "3",
			Title:          "Casual Summer Dress",
			Description:    "Light and breezy summer dress perfect for warm weather. Comfortable cotton blend with a flattering fit. Great for casual outings.",
			Category:       "Dresses",
			Type:           "Casual Dress",
			Size:           "S",
			Condition:      "Good",
			Tags:           datatypes.NewJSONSlice([]string{"summer", "casual", "comfortable", "cotton"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1595777457583-95e059d581b8"}),
			UserID:         "user3",
			UploaderName:   "Jessica Williams",
			UploaderEmail:  "jessica@example.com",
			PointsRequired: 40,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-13T09:15:00Z"),
			Location:       "Chicago, IL",
		},
		{
			ID:             "4",
			Title:          "Professional Blazer",
			Description:    "Sharp, tailored blazer perfect for business meetings and professional events. High-quality fabric with excellent construction.",
			Category:       "Formal Wear",
			Type:           "Blazer",
			Size:           "L",
			Condition:      "Excellent",
			Tags:           datatypes.NewJSONSlice([]string{"professional", "business", "formal", "tailored"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1594633313593-bab3825d0caf"}),
			UserID:         "user4",
			UploaderName:   "Michael Brown",
			UploaderEmail:  "michael@example.com",
			PointsRequired: 80,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-12T16:45:00Z"),
			Location:       "San Francisco, CA",
		},
		{
			ID:             "5",
			Title:          "Trendy Sneakers",
			Description:    "Stylish sneakers in excellent condition. Perfect for casual wear and sports activities. Comfortable and durable.",
			Category:       "Footwear",
			Type:           "Sneakers",
			Size:           "9",
			Condition:      "Very Good",
			Tags:           datatypes.NewJSONSlice([]string{"sneakers", "casual", "comfortable", "sports"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1549298916-b41d501d3772"}),
			UserID:         "user5",
			UploaderName:   "Alex Davis",
			UploaderEmail:  "alex@example.com",
			PointsRequired: 60,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-11T11:30:00Z"),
			Location:       "Miami, FL",
		},
		{
			ID:             "6",
			Title:          "Bohemian Maxi Dress",
			Description:    "Flowing maxi dress with beautiful bohemian patterns. Perfect for festivals, beach days, or any casual occasion.",
			Category:       "Dresses",
			Type:           "Maxi Dress",
			Size:           "M",
			Condition:      "Good",
			Tags:           datatypes.NewJSONSlice([]string{"bohemian", "maxi", "festival", "flowy"}),
			Images:         datatypes.NewJSONSlice([]string{"https://images.unsplash.com/photo-1566479179817-c2c9c1a3e9dd"}),
			UserID:         "user6",
			UploaderName:   "Luna Rodriguez",
			UploaderEmail:  "luna@example.com",
			PointsRequired: 45,
			Status:         ItemStatusAvailable,
			CreatedAt:      mustTime("2024-01-10T13:20:00Z"),
			Location:       "Austin, TX",
		},
	}
}

// SampleUsers returns the demo accounts. Passwords are left empty; the
// seeder hashes a shared demo password before storing them.
func SampleUsers() []User {
	return []User{
		{ID: "user1", DisplayName: "Sarah Johnson", Email: "sarah@example.com", Points: 150, Role: RoleUser, Location: "New York, NY", Bio: "Fashion enthusiast who loves vintage and sustainable clothing.", CreatedAt: mustTime("2024-01-01T00:00:00Z")},
		{ID: "user2", DisplayName: "Emily Chen", Email: "emily@example.com", Points: 200, Role: RoleUser, Location: "Los Angeles, CA", Bio: "Designer with a passion for luxury accessories and sustainable fashion.", CreatedAt: mustTime("2024-01-02T00:00:00Z")},
		{ID: "user3", DisplayName: "Jessica Williams", Email: "jessica@example.com", Points: 100, Role: RoleUser, Location: "Chicago, IL", CreatedAt: mustTime("2024-01-03T00:00:00Z")},
		{ID: "user4", DisplayName: "Michael Brown", Email: "michael@example.com", Points: 100, Role: RoleUser, Location: "San Francisco, CA", CreatedAt: mustTime("2024-01-04T00:00:00Z")},
		{ID: "user5", DisplayName: "Alex Davis", Email: "alex@example.com", Points: 100, Role: RoleUser, Location: "Miami, FL", CreatedAt: mustTime("2024-01-05T00:00:00Z")},
		{ID: "user6", DisplayName: "Luna Rodriguez", Email: "luna@example.com", Points: 100, Role: RoleUser, Location: "Austin, TX", CreatedAt: mustTime("2024-01-06T00:00:00Z")},
		{ID: "admin1", DisplayName: "Admin User", Email: "admin@rewear.com", Points: 1000, Role: RoleAdmin, Location: "HQ", Bio: "Platform administrator", CreatedAt: mustTime("2024-01-01T00:00:00Z")},
	}
}
