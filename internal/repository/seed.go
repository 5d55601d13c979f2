package repository

import "github.com/dmuriithi/campuscafe/internal/model"

// PlaceholderImageURL is stored when an item is saved without an image.
const PlaceholderImageURL = "default-image-url.jpg"

// DefaultMenuItems is the built-in catalog used to seed an empty remote
// store and as the last-resort fallback when both the remote store and
// the local cache are unavailable. It spans all four categories.
func DefaultMenuItems() []model.MenuItem {
	return []model.MenuItem{
		{
			ID:           "item_1",
			Name:         "Breakfast Burrito",
			Category:     model.CategoryAppetizers,
			Price:        180,
			Featured:     true,
			Availability: model.Available,
			Description:  "Start your day right with our hearty breakfast burrito packed with scrambled eggs, cheese, potatoes, and your choice of bacon or sausage.",
			Ingredients:  []string{"Flour tortilla", "Scrambled eggs", "Cheddar cheese", "Potatoes", "Choice of bacon or sausage", "Salsa"},
			ImageURL:     "https://images.unsplash.com/photo-1584178639036-613ba57e5e37?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_2",
			Name:         "Classic Burger",
			Category:     model.CategoryMainCourses,
			Price:        220,
			Featured:     true,
			Availability: model.Available,
			Description:  "Juicy beef patty topped with lettuce, tomato, onion, and our special sauce on a toasted brioche bun. Served with fries.",
			Ingredients:  []string{"Beef patty", "Brioche bun", "Lettuce", "Tomato", "Onion", "Special sauce", "French fries"},
			ImageURL:     "https://images.unsplash.com/photo-1586190848861-99aa4a171e90?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_3",
			Name:         "Grilled Chicken Salad",
			Category:     model.CategoryMainCourses,
			Price:        260,
			Featured:     true,
			Availability: model.Available,
			Description:  "Fresh mixed greens topped with grilled chicken breast, cherry tomatoes, cucumber, red onion, and balsamic vinaigrette.",
			Ingredients:  []string{"Mixed greens", "Grilled chicken breast", "Cherry tomatoes", "Cucumber", "Red onion", "Balsamic vinaigrette"},
			ImageURL:     "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_4",
			Name:         "Double Chocolate Brownie",
			Category:     model.CategoryDesserts,
			Price:        100,
			Availability: model.Available,
			Description:  "Rich, fudgy brownie loaded with chocolate chips. The perfect sweet treat between classes.",
			Ingredients:  []string{"Chocolate", "Flour", "Sugar", "Eggs", "Butter", "Chocolate chips", "Vanilla extract"},
			ImageURL:     "https://images.unsplash.com/photo-1606313564200-e75d5e30476c?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_5",
			Name:         "Iced Coffee",
			Category:     model.CategoryDrinks,
			Price:        90,
			Availability: model.Available,
			Description:  "Smooth cold-brewed coffee served over ice. Add your choice of flavored syrup for an extra kick.",
			Ingredients:  []string{"Cold-brewed coffee", "Ice", "Optional: flavored syrup", "Optional: cream"},
			ImageURL:     "https://images.unsplash.com/photo-1517701550927-30cf4ba1dba5?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_6",
			Name:         "Veggie Wrap",
			Category:     model.CategoryMainCourses,
			Price:        195,
			Availability: model.Available,
			Description:  "Grilled vegetables, hummus, and feta cheese wrapped in a spinach tortilla. A healthy option for busy students.",
			Ingredients:  []string{"Spinach tortilla", "Grilled vegetables", "Hummus", "Feta cheese", "Mixed greens"},
			ImageURL:     "https://images.unsplash.com/photo-1626700051175-6818013e1d4f?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_7",
			Name:         "Avocado Toast",
			Category:     model.CategoryAppetizers,
			Price:        150,
			Availability: model.Available,
			Description:  "Smashed avocado on toasted sourdough bread with cherry tomatoes, red pepper flakes, and a drizzle of olive oil.",
			Ingredients:  []string{"Sourdough bread", "Avocado", "Cherry tomatoes", "Red pepper flakes", "Olive oil", "Salt and pepper"},
			ImageURL:     "https://images.unsplash.com/photo-1588137378633-dea1168fc056?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
		{
			ID:           "item_8",
			Name:         "Fruit Parfait",
			Category:     model.CategoryDesserts,
			Price:        120,
			Availability: model.Available,
			Description:  "Layers of yogurt, granola, and seasonal fresh fruits. A light and refreshing dessert option.",
			Ingredients:  []string{"Greek yogurt", "Granola", "Seasonal fruits", "Honey", "Mint garnish"},
			ImageURL:     "https://images.unsplash.com/photo-1488477181946-6428a0291777?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80",
		},
	}
}
