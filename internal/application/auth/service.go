package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/friskytrails/api/internal/domain"
	googleinfra "github.com/friskytrails/api/internal/infrastructure/google"
	"github.com/friskytrails/api/internal/pkg/id"
	"github.com/friskytrails/api/internal/pkg/otp"
	"github.com/friskytrails/api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// OTPTTL is the validity window of an issued code.
const OTPTTL = 5 * time.Minute

// DynamoDB attribute names used in partial update maps.
const (
	fieldName         = "name"
	fieldVerified     = "verified"
	fieldOTP          = "otp"
	fieldOTPExpiresAt = "otp_expires_at"
	fieldPasswordHash = "password_hash"
	fieldAuthProvider = "auth_provider"
	fieldGoogleSub    = "google_sub"
)

type Service interface {
	// SendOTP issues a fresh code for the email, creating the account on
	// first contact. Rejects with domain.ErrTooManyRequests while an
	// unexpired code is pending.
	SendOTP(ctx context.Context, email string) error
	// VerifyOTP redeems a pending code. On success the account becomes
	// verified and the code is cleared; every rejection leaves the record
	// untouched.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	CompleteSignup(ctx context.Context, req domain.SignupRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	LoginWithGoogle(ctx context.Context, idToken string) (string, *domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*googleinfra.Payload, error)
}

type service struct {
	userRepo userStore
	mail     mailer
	sheet    googleinfra.RowAppender
	google   googleVerifier
	jwt      jwtSigner
	now      func() time.Time
}

type ServiceDeps struct {
	UserRepo       userStore
	Mailer         mailer
	Sheet          googleinfra.RowAppender // nil disables the mirror
	GoogleVerifier googleVerifier          // nil disables Google sign-in
	JWTProvider    jwtSigner
	Now            func() time.Time // nil means time.Now
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		userRepo: deps.UserRepo,
		mail:     deps.Mailer,
		sheet:    deps.Sheet,
		google:   deps.GoogleVerifier,
		jwt:      deps.JWTProvider,
		now:      now,
	}
}

func (s *service) SendOTP(ctx context.Context, email string) error {
	if !validate.Email(email) {
		return fmt.Errorf("invalid email format: %w", domain.ErrBadRequest)
	}
	email = strings.ToLower(email)
	now := s.now().UTC()

	u, err := s.userRepo.GetByEmail(ctx, email)
	isNew := errors.Is(err, domain.ErrNotFound)
	switch {
	case isNew:
		u = domain.NewUser(id.New(), email, now)
	case err != nil:
		// Only a definite not-found counts as first contact.
		return fmt.Errorf("look up user: %w", err)
	case u.HasActiveOTP(now):
		return fmt.Errorf("OTP already sent, check your email: %w", domain.ErrTooManyRequests)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	expiresAt := now.Add(OTPTTL)

	if isNew {
		u.SetOTP(code, expiresAt)
		if err := s.userRepo.Put(ctx, u); err != nil {
			return err
		}
		s.mirrorSignup(ctx, u)
	} else {
		if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
			fieldOTP:          code,
			fieldOTPExpiresAt: expiresAt.Unix(),
		}); err != nil {
			return err
		}
	}

	// The caller is only told "sent" once dispatch actually succeeded.
	if err := s.mail.SendEmail(email, "Your verification code",
		fmt.Sprintf("Your one-time code is %s. It expires in 5 minutes.", code)); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(email)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("user not found, request an OTP first: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}
	if u.OTP == nil {
		return "", fmt.Errorf("no OTP found, request a new one: %w", domain.ErrBadRequest)
	}
	if *u.OTP != code {
		return "", fmt.Errorf("invalid OTP: %w", domain.ErrBadRequest)
	}
	if u.OTPExpiresAt == nil || *u.OTPExpiresAt < s.now().Unix() {
		return "", fmt.Errorf("OTP has expired, request a new one: %w", domain.ErrBadRequest)
	}

	// All checks passed: verify and clear the code pair in one update.
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		fieldVerified:     true,
		fieldOTP:          nil,
		fieldOTPExpiresAt: nil,
	}); err != nil {
		return "", err
	}
	return email, nil
}

func (s *service) CompleteSignup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	email := strings.ToLower(req.Email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("user not found, request an OTP first: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !u.Verified {
		return nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	if u.PasswordHash != "" {
		return nil, fmt.Errorf("signup already completed: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
		fieldName:         req.Name,
		fieldPasswordHash: string(hash),
	}); err != nil {
		return nil, err
	}
	u.Name = req.Name
	u.PasswordHash = string(hash)
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	email := strings.ToLower(req.Email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		// Same message as a bad password so the endpoint does not leak
		// which emails have accounts.
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return "", nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	bearer, err := s.jwt.Sign(u.UserID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return bearer, u, nil
}

func (s *service) LoginWithGoogle(ctx context.Context, idToken string) (string, *domain.User, error) {
	if s.google == nil {
		return "", nil, fmt.Errorf("google sign-in not configured: %w", domain.ErrUnavailable)
	}
	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", nil, err
	}
	if !payload.EmailVerified {
		return "", nil, fmt.Errorf("google account email not verified: %w", domain.ErrUnauthorized)
	}

	email := strings.ToLower(payload.Email)
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, fmt.Errorf("look up user: %w", err)
	}
	if err != nil {
		now := s.now().UTC()
		u = domain.NewUser(id.New(), email, now)
		u.Name = payload.Name
		u.Verified = true
		u.AuthProvider = domain.AuthProviderGoogle
		u.GoogleSub = payload.Sub
		if err := s.userRepo.Put(ctx, u); err != nil {
			return "", nil, err
		}
		s.mirrorSignup(ctx, u)
	} else if u.GoogleSub == "" {
		// Link an existing local account on first Google login.
		if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{
			fieldGoogleSub:    payload.Sub,
			fieldAuthProvider: domain.AuthProviderGoogle,
		}); err != nil {
			return "", nil, err
		}
	}

	bearer, err := s.jwt.Sign(u.UserID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return bearer, u, nil
}

// mirrorSignup appends new accounts to the tracking sheet. Best-effort:
// a mirror failure never fails the signup.
func (s *service) mirrorSignup(ctx context.Context, u *domain.User) {
	if s.sheet == nil {
		return
	}
	row := []interface{}{u.Email, u.Name, u.AuthProvider, u.CreatedAt.Format(time.RFC3339)}
	if err := s.sheet.AppendRow(ctx, googleinfra.SheetUsers, row); err != nil {
		slog.Warn("failed to mirror signup to sheet", "email", u.Email, "err", err)
	}
}
