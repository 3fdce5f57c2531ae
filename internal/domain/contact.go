package domain

import "time"

// ContactMessage is a public enquiry submitted from the site.
type ContactMessage struct {
	ContactID string    `json:"id" dynamodbav:"contact_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=4000"`
}
