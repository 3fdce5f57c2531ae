package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// User is keyed by user_id; email is unique via the email-index GSI and
// always stored lowercase.
//
// OTP and OTPExpiresAt are both set while a code is pending and both nil
// otherwise — never one without the other. Verified is monotonic: once
// true it is never reset by the auth flow.
type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Email        string     `json:"email" dynamodbav:"email"`
	Name         string     `json:"name" dynamodbav:"name"`
	Phone        *string    `json:"phone,omitempty" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Role         string     `json:"role" dynamodbav:"role"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	OTP          *string    `json:"-" dynamodbav:"otp"`
	OTPExpiresAt *int64     `json:"-" dynamodbav:"otp_expires_at"` // Unix seconds
	AuthProvider string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub    string     `json:"-" dynamodbav:"google_sub"`
	Enable       bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// NewUser creates a first-contact user record: unverified, no pending
// code, local provider.
func NewUser(userID, email string, now time.Time) *User {
	return &User{
		UserID:       userID,
		Email:        email,
		Role:         RoleUser,
		AuthProvider: AuthProviderLocal,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasActiveOTP reports whether an unexpired code is pending at now.
func (u *User) HasActiveOTP(now time.Time) bool {
	return u.OTP != nil && u.OTPExpiresAt != nil && *u.OTPExpiresAt > now.Unix()
}

// SetOTP installs a fresh code, overwriting any prior pending one.
func (u *User) SetOTP(code string, expiresAt time.Time) {
	u.OTP = &code
	exp := expiresAt.Unix()
	u.OTPExpiresAt = &exp
}

// ClearOTP removes the pending code, keeping the both-or-neither invariant.
func (u *User) ClearOTP() {
	u.OTP = nil
	u.OTPExpiresAt = nil
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
