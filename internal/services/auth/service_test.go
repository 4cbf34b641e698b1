package auth

import (
	"context"
	"testing"
	"time"

	"kudi/internal/logger"
	"kudi/internal/models"
	"kudi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) CreateOTP(ctx context.Context, otp *models.OTP) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *MockUserRepository) GetLatestOTP(ctx context.Context, email string) (*models.OTP, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OTP), args.Error(1)
}

func (m *MockUserRepository) MarkOTPUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// captureMailer records the last code handed to it.
type captureMailer struct {
	email string
	code  string
}

func (m *captureMailer) SendOTP(_ context.Context, email, code string) error {
	m.email = email
	m.code = code
	return nil
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_IssuesOTP(t *testing.T) {
	users := new(MockUserRepository)
	mailer := &captureMailer{}
	svc := NewService(users, mailer, logger.New("error"))

	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(nil, repositories.ErrUserNotFound).Once()
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@example.com" && !u.IsVerified && u.Password != "hunter2"
	})).Return(nil).Once()
	users.On("CreateOTP", mock.Anything, mock.MatchedBy(func(o *models.OTP) bool {
		return o.Email == "ada@example.com" && len(o.Code) == otpLength && o.ExpiresAt.After(time.Now())
	})).Return(nil).Once()

	err := svc.Register(context.Background(), "ada@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", mailer.email)
	assert.Len(t, mailer.code, otpLength)
	users.AssertExpectations(t)
}

func TestRegister_ExistingEmailIsSilent(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, &captureMailer{}, logger.New("error"))

	users.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(&models.User{Email: "ada@example.com"}, nil).Once()

	err := svc.Register(context.Background(), "ada@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	users.AssertNotCalled(t, "Create")
}

func TestVerifyOTP(t *testing.T) {
	freshOTP := func() *models.OTP {
		return &models.OTP{
			ID:        "otp-1",
			UserID:    "user-1",
			Email:     "ada@example.com",
			Code:      "123456",
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
	}

	t.Run("valid code verifies the account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		users.On("GetLatestOTP", mock.Anything, "ada@example.com").Return(freshOTP(), nil).Once()
		users.On("GetByID", mock.Anything, "user-1").
			Return(&models.User{ID: "user-1", Email: "ada@example.com"}, nil).Once()
		users.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.IsVerified
		})).Return(nil).Once()
		users.On("MarkOTPUsed", mock.Anything, "otp-1").Return(nil).Once()

		require.NoError(t, svc.VerifyOTP(context.Background(), "ada@example.com", "123456"))
		users.AssertExpectations(t)
	})

	t.Run("wrong code", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		users.On("GetLatestOTP", mock.Anything, "ada@example.com").Return(freshOTP(), nil).Once()

		err := svc.VerifyOTP(context.Background(), "ada@example.com", "000000")
		assert.ErrorIs(t, err, ErrInvalidOTP)
		users.AssertNotCalled(t, "Update")
	})

	t.Run("expired code", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		expired := freshOTP()
		expired.ExpiresAt = time.Now().Add(-time.Minute)
		users.On("GetLatestOTP", mock.Anything, "ada@example.com").Return(expired, nil).Once()

		err := svc.VerifyOTP(context.Background(), "ada@example.com", "123456")
		assert.ErrorIs(t, err, ErrInvalidOTP)
		users.AssertNotCalled(t, "Update")
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	verified := func() *models.User {
		return &models.User{
			ID:         "user-1",
			Email:      "ada@example.com",
			Password:   hashPassword(t, "hunter2"),
			IsVerified: true,
		}
	}

	t.Run("issues token pair", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(verified(), nil).Once()

		user, access, refresh, err := svc.Login(context.Background(), "ada@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(verified(), nil).Once()

		_, _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unverified account", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewService(users, &captureMailer{}, logger.New("error"))

		u := verified()
		u.IsVerified = false
		users.On("GetByEmail", mock.Anything, "ada@example.com").Return(u, nil).Once()

		_, _, _, err := svc.Login(context.Background(), "ada@example.com", "hunter2")
		assert.ErrorIs(t, err, ErrNotVerified)
	})
}
