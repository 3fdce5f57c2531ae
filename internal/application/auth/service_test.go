package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/friskytrails/api/internal/domain"
	googleinfra "github.com/friskytrails/api/internal/infrastructure/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSheet struct{ mock.Mock }

func (m *mockSheet) AppendRow(ctx context.Context, sheetName string, row []interface{}) error {
	return m.Called(ctx, sheetName, row).Error(0)
}

type mockGoogleVerifier struct{ mock.Mock }

func (m *mockGoogleVerifier) Verify(ctx context.Context, token string) (*googleinfra.Payload, error) {
	args := m.Called(ctx, token)
	if p, _ := args.Get(0).(*googleinfra.Payload); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJWTSigner struct{ mock.Mock }

func (m *mockJWTSigner) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

// --- builders ---

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestService(us *mockUserStore, ml *mockMailer, sheet *mockSheet, gv *mockGoogleVerifier, jwt *mockJWTSigner, now time.Time) Service {
	deps := ServiceDeps{
		UserRepo:    us,
		Mailer:      ml,
		JWTProvider: jwt,
		Now:         func() time.Time { return now },
	}
	if sheet != nil {
		deps.Sheet = sheet
	}
	if gv != nil {
		deps.GoogleVerifier = gv
	}
	return NewService(deps)
}

func pendingUser(code string, expiresAt time.Time) *domain.User {
	u := domain.NewUser("u1", "a@b.com", testNow.Add(-time.Hour))
	u.SetOTP(code, expiresAt)
	return u
}

// --- SendOTP ---

func TestSendOTP_InvalidEmail(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestSendOTP_FirstContact_CreatesUserAndMirrors(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	sheet := &mockSheet{}

	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	var created *domain.User
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
	}).Return(nil)
	sheet.On("AppendRow", mock.Anything, googleinfra.SheetUsers, mock.Anything).Return(nil)
	ml.On("SendEmail", "new@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(us, ml, sheet, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "New@X.com")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "new@x.com", created.Email)
	assert.False(t, created.Verified)
	require.NotNil(t, created.OTP)
	require.NotNil(t, created.OTPExpiresAt)
	assert.Len(t, *created.OTP, 6)
	assert.Equal(t, testNow.Add(OTPTTL).Unix(), *created.OTPExpiresAt)
	us.AssertExpectations(t)
	ml.AssertExpectations(t)
	sheet.AssertExpectations(t)
}

func TestSendOTP_PendingUnexpiredCode_Conflict(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("123456", testNow.Add(2*time.Minute)), nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "a@b.com")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTooManyRequests))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOTP_ExpiredCode_IssuesFreshOne(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("111111", testNow.Add(-time.Minute)), nil)
	var updates map[string]interface{}
	us.On("Update", mock.Anything, "u1", mock.Anything).Run(func(args mock.Arguments) {
		updates = args.Get(2).(map[string]interface{})
	}).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(us, ml, nil, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "a@b.com")

	require.NoError(t, err)
	require.NotNil(t, updates)
	code, ok := updates[fieldOTP].(string)
	require.True(t, ok)
	assert.Len(t, code, 6)
	assert.NotEqual(t, "111111", code)
	assert.Equal(t, testNow.Add(OTPTTL).Unix(), updates[fieldOTPExpiresAt])
}

func TestSendOTP_MailDispatchFails_NoSuccessClaim(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}

	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("111111", testNow.Add(-time.Minute)), nil)
	us.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	svc := newTestService(us, ml, nil, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "a@b.com")
	require.Error(t, err)
}

func TestSendOTP_SheetMirrorFailure_DoesNotFailIssuance(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	sheet := &mockSheet{}

	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound)
	us.On("Put", mock.Anything, mock.Anything).Return(nil)
	sheet.On("AppendRow", mock.Anything, googleinfra.SheetUsers, mock.Anything).
		Return(errors.New("sheet quota exceeded"))
	ml.On("SendEmail", "new@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(us, ml, sheet, nil, nil, testNow)
	require.NoError(t, svc.SendOTP(context.Background(), "new@x.com"))
}

func TestSendOTP_StoreFailure_NoAccountCreated(t *testing.T) {
	// Only a definite not-found is first contact. A throttled or
	// unreachable store must surface as an error, never mint a user.
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(nil, errors.New("dynamodb: ProvisionedThroughputExceededException"))

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	err := svc.SendOTP(context.Background(), "a@b.com")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- VerifyOTP ---

func TestVerifyOTP_UserNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(nil, domain.ErrNotFound)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestVerifyOTP_StoreFailure_NotMaskedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(nil, errors.New("dynamodb: connection reset"))

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrBadRequest))
}

func TestVerifyOTP_NoPendingCode(t *testing.T) {
	us := &mockUserStore{}
	u := domain.NewUser("u1", "a@b.com", testNow)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(u, nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_WrongCode_RecordUntouched(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("123456", testNow.Add(2*time.Minute)), nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "654321")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_WrongCode_AfterExpiry_StillMismatch(t *testing.T) {
	// Mismatch takes precedence over expiry in the rejection order.
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("123456", testNow.Add(-time.Minute)), nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "654321")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid OTP")
}

func TestVerifyOTP_CorrectCode_Expired_RecordUntouched(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("123456", testNow.Add(-time.Second)), nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.VerifyOTP(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyOTP_HappyPath_VerifiesAndClearsCode(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(pendingUser("123456", testNow.Add(2*time.Minute)), nil)
	var updates map[string]interface{}
	us.On("Update", mock.Anything, "u1", mock.Anything).Run(func(args mock.Arguments) {
		updates = args.Get(2).(map[string]interface{})
	}).Return(nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	email, err := svc.VerifyOTP(context.Background(), "A@B.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	require.NotNil(t, updates)
	assert.Equal(t, true, updates[fieldVerified])
	// the code pair is cleared together — both-or-neither invariant
	v, present := updates[fieldOTP]
	assert.True(t, present)
	assert.Nil(t, v)
	v, present = updates[fieldOTPExpiresAt]
	assert.True(t, present)
	assert.Nil(t, v)
}

// Scenario from the product flow: issue, immediate re-issue blocked,
// re-issue allowed once the window elapses and yields a different code.
func TestOTPLifecycle_ReissueAfterExpiry(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}

	// t0: first contact
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(nil, domain.ErrNotFound).Once()
	var u *domain.User
	us.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u = args.Get(1).(*domain.User)
	}).Return(nil)
	ml.On("SendEmail", "new@x.com", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(us, ml, nil, nil, nil, testNow)
	require.NoError(t, svc.SendOTP(context.Background(), "new@x.com"))
	firstCode := *u.OTP

	// t0+1s: immediate retry is rejected
	us.On("GetByEmail", mock.Anything, "new@x.com").Return(u, nil)
	err := svc.SendOTP(context.Background(), "new@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTooManyRequests))

	// t0+5m+1s: window elapsed, a fresh different code is issued
	late := newTestService(us, ml, nil, nil, nil, testNow.Add(OTPTTL+time.Second))
	var updates map[string]interface{}
	us.On("Update", mock.Anything, u.UserID, mock.Anything).Run(func(args mock.Arguments) {
		updates = args.Get(2).(map[string]interface{})
	}).Return(nil)
	require.NoError(t, late.SendOTP(context.Background(), "new@x.com"))
	require.NotNil(t, updates)
	assert.NotEqual(t, firstCode, updates[fieldOTP].(string))
}

// --- CompleteSignup / Login ---

func TestCompleteSignup_Unverified_Forbidden(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(domain.NewUser("u1", "a@b.com", testNow), nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.CompleteSignup(context.Background(), domain.SignupRequest{
		Email: "a@b.com", Name: "Asha", Password: "longenough1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCompleteSignup_Verified_SetsNameAndHash(t *testing.T) {
	us := &mockUserStore{}
	u := domain.NewUser("u1", "a@b.com", testNow)
	u.Verified = true
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(u, nil)
	var updates map[string]interface{}
	us.On("Update", mock.Anything, "u1", mock.Anything).Run(func(args mock.Arguments) {
		updates = args.Get(2).(map[string]interface{})
	}).Return(nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	got, err := svc.CompleteSignup(context.Background(), domain.SignupRequest{
		Email: "a@b.com", Name: "Asha", Password: "longenough1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	require.NotNil(t, updates)
	hash, _ := updates[fieldPasswordHash].(string)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("longenough1")))
}

func TestCompleteSignup_StoreFailure_NotMaskedAsNotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(nil, errors.New("dynamodb: request timeout"))

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, err := svc.CompleteSignup(context.Background(), domain.SignupRequest{
		Email: "a@b.com", Name: "Asha", Password: "longenough1",
	})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}

func TestLogin_StoreFailure_NotMaskedAsUnauthorized(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@b.com").
		Return(nil, errors.New("dynamodb: connection reset"))

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "rightpassword"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_WrongPassword_Unauthorized(t *testing.T) {
	us := &mockUserStore{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	u := domain.NewUser("u1", "a@b.com", testNow)
	u.Verified = true
	u.PasswordHash = string(hash)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(u, nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_Unverified_Forbidden(t *testing.T) {
	us := &mockUserStore{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	u := domain.NewUser("u1", "a@b.com", testNow)
	u.PasswordHash = string(hash)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(u, nil)

	svc := newTestService(us, nil, nil, nil, nil, testNow)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com", Password: "rightpassword"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	jwt := &mockJWTSigner{}
	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.MinCost)
	u := domain.NewUser("u1", "a@b.com", testNow)
	u.Verified = true
	u.PasswordHash = string(hash)
	us.On("GetByEmail", mock.Anything, "a@b.com").Return(u, nil)
	jwt.On("Sign", "u1", domain.RoleUser).Return("bearer-token", nil)

	svc := newTestService(us, nil, nil, nil, jwt, testNow)
	bearer, got, err := svc.Login(context.Background(), domain.LoginRequest{Email: "A@b.com", Password: "rightpassword"})

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", bearer)
	assert.Equal(t, "u1", got.UserID)
}

func TestLoginWithGoogle_StoreFailure_NoAccountCreated(t *testing.T) {
	us := &mockUserStore{}
	gv := &mockGoogleVerifier{}

	gv.On("Verify", mock.Anything, "google-token").Return(&googleinfra.Payload{
		Sub: "sub-1", Email: "g@mail.com", EmailVerified: true,
	}, nil)
	us.On("GetByEmail", mock.Anything, "g@mail.com").
		Return(nil, errors.New("dynamodb: service unavailable"))

	svc := newTestService(us, nil, nil, gv, nil, testNow)
	_, _, err := svc.LoginWithGoogle(context.Background(), "google-token")

	require.Error(t, err)
	us.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestLoginWithGoogle_NewUser_CreatedVerified(t *testing.T) {
	us := &mockUserStore{}
	gv := &mockGoogleVerifier{}
	jwt := &mockJWTSigner{}

	gv.On("Verify", mock.Anything, "google-token").Return(&googleinfra.Payload{
		Sub: "sub-1", Email: "G@Mail.com", EmailVerified: true, Name: "Gita",
	}, nil)
	us.On("GetByEmail", mock.Anything, "g@mail.com").Return(nil, domain.ErrNotFound)
	var created *domain.User
	us.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
	}).Return(nil)
	jwt.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)

	svc := newTestService(us, nil, nil, gv, jwt, testNow)
	bearer, _, err := svc.LoginWithGoogle(context.Background(), "google-token")

	require.NoError(t, err)
	assert.Equal(t, "bearer-token", bearer)
	require.NotNil(t, created)
	assert.True(t, created.Verified)
	assert.Equal(t, domain.AuthProviderGoogle, created.AuthProvider)
	assert.Equal(t, "sub-1", created.GoogleSub)
}
