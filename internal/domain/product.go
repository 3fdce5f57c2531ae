package domain

import "time"

// Product is a bookable travel package. Slug is unique via the
// slug-index GSI and used for public lookups.
type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Slug        string    `json:"slug" dynamodbav:"slug"`
	Description string    `json:"description" dynamodbav:"description"` // rich-text HTML
	Price       int64     `json:"price" dynamodbav:"price"`             // smallest currency unit
	CountryID   string    `json:"country_id,omitempty" dynamodbav:"country_id"`
	StateID     string    `json:"state_id,omitempty" dynamodbav:"state_id"`
	CityID      string    `json:"city_id,omitempty" dynamodbav:"city_id"`
	ImageKeys   []string  `json:"image_keys,omitempty" dynamodbav:"image_keys"` // S3 object keys
	Enable      bool      `json:"enable" dynamodbav:"enable"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" validate:"required,gt=0"`
	CountryID   string   `json:"country_id"`
	StateID     string   `json:"state_id"`
	CityID      string   `json:"city_id"`
	ImageKeys   []string `json:"image_keys"`
}

type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *int64    `json:"price"`
	CountryID   *string   `json:"country_id"`
	StateID     *string   `json:"state_id"`
	CityID      *string   `json:"city_id"`
	ImageKeys   *[]string `json:"image_keys"`
	Enable      *bool     `json:"enable"`
}
