package models

// Ingredient is a catalog entry. It is used both as a row and as a response.
// swagger:model Ingredient
type Ingredient struct {
	// example: 1
	ID int64 `json:"id" db:"id"`
	// example: Капуста
	Name string `json:"name" db:"name" yaml:"name"`
	// example: кг
	MeasurementUnit string `json:"measurement_unit" db:"measurement_unit" yaml:"measurement_unit"`
}

// Tag is a catalog entry. It is used both as a row and as a response.
// swagger:model Tag
type Tag struct {
	// example: 1
	ID int64 `json:"id" db:"id"`
	// example: Завтрак
	Name string `json:"name" db:"name" yaml:"name"`
	// example: #E26C2D
	Color string `json:"color" db:"color" yaml:"color"`
	// example: breakfast
	Slug string `json:"slug" db:"slug" yaml:"slug"`
}
