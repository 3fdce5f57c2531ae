package domain

import "time"

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking records a user's reservation of a product for a travel date.
type Booking struct {
	BookingID  string    `json:"id" dynamodbav:"booking_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	ProductID  string    `json:"product_id" dynamodbav:"product_id"`
	TravelDate time.Time `json:"travel_date" dynamodbav:"travel_date"`
	Travellers int       `json:"travellers" dynamodbav:"travellers"`
	Amount     int64     `json:"amount" dynamodbav:"amount"`
	Status     string    `json:"status" dynamodbav:"status"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateBookingRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	TravelDate string `json:"travel_date" validate:"required"` // YYYY-MM-DD
	Travellers int    `json:"travellers" validate:"required,gte=1,lte=20"`
}
