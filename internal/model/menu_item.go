package model

// Category is one of the four fixed menu sections.
type Category string

const (
	CategoryAppetizers  Category = "appetizers"
	CategoryMainCourses Category = "main-courses"
	CategoryDesserts    Category = "desserts"
	CategoryDrinks      Category = "drinks"
)

// Categories lists all menu categories in display order.
var Categories = []Category{
	CategoryAppetizers,
	CategoryMainCourses,
	CategoryDesserts,
	CategoryDrinks,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryAppetizers, CategoryMainCourses, CategoryDesserts, CategoryDrinks:
		return true
	}
	return false
}

// Availability marks whether an item can currently be ordered.
type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

type MenuItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Price        float64      `json:"price"`
	Description  string       `json:"description"`
	Ingredients  []string     `json:"ingredients"`
	ImageURL     string       `json:"imageUrl"`
	Availability Availability `json:"availability"`
	Featured     bool         `json:"featured"`
}
