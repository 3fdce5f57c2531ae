package domain

import "time"

// Country, State and City form the location hierarchy the catalog and
// blogs hang off. Each is looked up publicly by slug.
type Country struct {
	CountryID string    `json:"id" dynamodbav:"country_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Slug      string    `json:"slug" dynamodbav:"slug"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type State struct {
	StateID   string    `json:"id" dynamodbav:"state_id"`
	CountryID string    `json:"country_id" dynamodbav:"country_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Slug      string    `json:"slug" dynamodbav:"slug"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type City struct {
	CityID    string    `json:"id" dynamodbav:"city_id"`
	StateID   string    `json:"state_id" dynamodbav:"state_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Slug      string    `json:"slug" dynamodbav:"slug"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// StateWithBlogs is the aggregate served by GET /api/states/{slug}.
type StateWithBlogs struct {
	State *State `json:"state"`
	Blogs []Blog `json:"blogs"`
}

type CreateCountryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

type CreateStateRequest struct {
	CountryID string `json:"country_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
}

type CreateCityRequest struct {
	StateID string `json:"state_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Slug    string `json:"slug" validate:"required"`
}
