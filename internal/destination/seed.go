package destination

import "time"

// Seed returns the built-in destination catalogue stamped with createdAt.
// It backs the in-memory repository and the initial PostgreSQL load.
func Seed(createdAt time.Time) []Destination {
	ds := []Destination{
		{
			ID:          1,
			Name:        "Santorini",
			Country:     "Greece",
			Region:      "Cyclades",
			Description: "Experience the breathtaking sunsets and white-washed buildings of this Greek paradise.",
			ImageURL:    "https://images.pexels.com/photos/161815/santorini-oia-greece-blue-161815.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       1299,
			Duration:    "7 days",
			Rating:      4.9,
			Difficulty:  DifficultyEasy,
			BestSeason:  "Summer",
			Highlights:  []string{"Oia sunset", "Caldera views", "Volcanic beaches"},
			Category:    "beach",
			Featured:    true,
		},
		{
			ID:          2,
			Name:        "Bali",
			Country:     "Indonesia",
			Description: "Discover tropical beaches, ancient temples, and vibrant culture in the Island of Gods.",
			ImageURL:    "https://images.pexels.com/photos/2474690/pexels-photo-2474690.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       899,
			Duration:    "10 days",
			Rating:      4.8,
			Category:    "cultural",
			Featured:    true,
		},
		{
			ID:          3,
			Name:        "Tokyo",
			Country:     "Japan",
			Region:      "Kanto",
			Description: "Immerse yourself in the perfect blend of traditional culture and modern innovation.",
			ImageURL:    "https://images.pexels.com/photos/2064827/pexels-photo-2064827.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       1599,
			Duration:    "6 days",
			Rating:      4.7,
			Category:    "city",
			Featured:    true,
		},
		{
			ID:          4,
			Name:        "Maldives",
			Country:     "Maldives",
			Description: "Relax in overwater villas surrounded by crystal-clear turquoise waters.",
			ImageURL:    "https://images.pexels.com/photos/1320684/pexels-photo-1320684.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       2299,
			Duration:    "5 days",
			Rating:      4.9,
			Category:    "luxury",
			Featured:    true,
		},
		{
			ID:          5,
			Name:        "Everest Base Camp Trek",
			Country:     "Nepal",
			Region:      "Khumbu",
			Description: "The ultimate trekking adventure to the base of the world's highest mountain. Experience Sherpa culture, stunning mountain views, and the thrill of reaching 5,364m.",
			ImageURL:    "https://images.pexels.com/photos/1287460/pexels-photo-1287460.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       2499,
			Duration:    "14 days",
			Rating:      4.9,
			Difficulty:  DifficultyChallenging,
			BestSeason:  "Autumn",
			Highlights:  []string{"Mount Everest views", "Sherpa culture", "Namche Bazaar", "Tengboche Monastery"},
			Category:    "adventure",
		},
		{
			ID:          6,
			Name:        "Annapurna Circuit Trek",
			Country:     "Nepal",
			Region:      "Annapurna",
			Description: "A classic trek through diverse landscapes, from subtropical forests to high alpine terrain. Cross the Thorong La Pass at 5,416m and experience incredible mountain panoramas.",
			ImageURL:    "https://images.pexels.com/photos/1559825/pexels-photo-1559825.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       1899,
			Duration:    "16 days",
			Rating:      4.8,
			Difficulty:  DifficultyChallenging,
			BestSeason:  "Autumn",
			Highlights:  []string{"Thorong La Pass", "Diverse landscapes", "Hot springs", "Mountain panoramas"},
			Category:    "adventure",
		},
		{
			ID:          7,
			Name:        "Kathmandu Valley Tour",
			Country:     "Nepal",
			Region:      "Central",
			Description: "Explore the cultural heart of Nepal with visits to ancient temples, palaces, and UNESCO World Heritage Sites in Kathmandu, Bhaktapur, and Patan.",
			ImageURL:    "https://images.pexels.com/photos/2850287/pexels-photo-2850287.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       299,
			Duration:    "3 days",
			Rating:      4.6,
			Difficulty:  DifficultyEasy,
			BestSeason:  "All seasons",
			Highlights:  []string{"UNESCO sites", "Ancient temples", "Local culture", "Traditional crafts"},
			Category:    "cultural",
		},
		{
			ID:          8,
			Name:        "Pokhara Lake District",
			Country:     "Nepal",
			Region:      "Western",
			Description: "Relax by the serene Phewa Lake with stunning Annapurna mountain reflections. Perfect for boating, paragliding, and enjoying the laid-back atmosphere.",
			ImageURL:    "https://images.pexels.com/photos/1661546/pexels-photo-1661546.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       199,
			Duration:    "2 days",
			Rating:      4.7,
			Difficulty:  DifficultyEasy,
			BestSeason:  "All seasons",
			Highlights:  []string{"Phewa Lake", "Mountain views", "Paragliding", "Peace Pagoda"},
			Category:    "nature",
		},
		{
			ID:          9,
			Name:        "Mount Fuji Climb",
			Country:     "Japan",
			Region:      "Honshu",
			Description: "Climb Japan's sacred mountain and highest peak. Experience traditional Japanese culture and stunning sunrise views from the summit.",
			ImageURL:    "https://images.pexels.com/photos/2064827/pexels-photo-2064827.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       899,
			Duration:    "3 days",
			Rating:      4.5,
			Difficulty:  DifficultyModerate,
			BestSeason:  "Summer",
			Highlights:  []string{"Sacred mountain", "Sunrise views", "Japanese culture", "Pilgrimage route"},
			Category:    "adventure",
		},
		{
			ID:          10,
			Name:        "Bali Cultural Tour",
			Country:     "Indonesia",
			Region:      "Bali",
			Description: "Discover the Island of Gods with visits to ancient temples, rice terraces, and traditional villages. Experience Balinese Hindu culture and stunning landscapes.",
			ImageURL:    "https://images.pexels.com/photos/2474690/pexels-photo-2474690.jpeg?auto=compress&cs=tinysrgb&w=800",
			Price:       799,
			Duration:    "7 days",
			Rating:      4.6,
			Difficulty:  DifficultyEasy,
			BestSeason:  "Dry season",
			Highlights:  []string{"Hindu temples", "Rice terraces", "Traditional villages", "Cultural performances"},
			Category:    "cultural",
		},
	}

	for i := range ds {
		ds[i].CreatedAt = createdAt
	}
	return ds
}
