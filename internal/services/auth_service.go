package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/auth"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/otp"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

var (
	phonePattern       = regexp.MustCompile(`^\d{10}$`)
	placeholderPattern = regexp.MustCompile(`^User\d{4}$`)
)

// LoginResult is returned by a successful code verification
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
	IsNewUser bool         `json:"isNewUser"`
}

// AuthService implements phone number login with one-time codes
type AuthService interface {
	// RequestCode generates a code for phone, stores it and sends it by SMS
	RequestCode(ctx context.Context, phone string) error
	// VerifyCode consumes the pending code and returns a session for the phone's user,
	// creating the user on first login
	VerifyCode(ctx context.Context, phone, code, name string) (*LoginResult, error)
}

type authService struct {
	db       *gorm.DB
	store    otp.Store
	sender   otp.Sender
	sessions *auth.SessionIssuer
	codeTTL  time.Duration
	now      func() time.Time
	genCode  func() (string, error)
}

func NewAuthService(db *gorm.DB, store otp.Store, sender otp.Sender, sessions *auth.SessionIssuer, codeTTL time.Duration) AuthService {
	return &authService{
		db:       db,
		store:    store,
		sender:   sender,
		sessions: sessions,
		codeTTL:  codeTTL,
		now:      time.Now,
		genCode:  generateCode,
	}
}

// generateCode returns a uniformly random code in 1000-9999
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

func normalizePhone(phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return "", fmt.Errorf("%w: Please enter a valid 10-digit phone number", ErrValidation)
	}
	return phone, nil
}

func (s *authService) RequestCode(ctx context.Context, phone string) error {
	phone, err := normalizePhone(phone)
	if err != nil {
		return err
	}

	code, err := s.genCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	rec := otp.Record{Phone: phone, Code: code, ExpiresAt: s.now().Add(s.codeTTL)}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	if err := s.sender.Send(ctx, phone, code); err != nil {
		log.WithError(err).WithField("phone", phone).Error("SMS dispatch failed, discarding code")
		if _, delErr := s.store.Consume(ctx, phone, code); delErr != nil {
			log.WithError(delErr).WithField("phone", phone).Error("Failed to discard undelivered code")
		}
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	log.WithField("phone", phone).Info("OTP issued")
	return nil
}

func (s *authService) VerifyCode(ctx context.Context, phone, code, name string) (*LoginResult, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, fmt.Errorf("%w: Phone and OTP are required", ErrValidation)
	}

	rec, err := s.store.Get(ctx, phone)
	if errors.Is(err, otp.ErrNotFound) {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load code: %w", err)
	}

	if s.now().After(rec.ExpiresAt) {
		if _, err := s.store.Consume(ctx, phone, rec.Code); err != nil {
			log.WithError(err).WithField("phone", phone).Warn("Failed to delete expired code")
		}
		return nil, ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return nil, ErrOTPMismatch
	}

	// Whoever consumes the record owns the login
	deleted, err := s.store.Consume(ctx, phone, rec.Code)
	if err != nil {
		return nil, fmt.Errorf("consume code: %w", err)
	}
	if !deleted {
		return nil, ErrOTPNotFound
	}

	user, err := s.findOrCreateUser(ctx, phone, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: isPlaceholderName(user.Name),
	}, nil
}

func (s *authService) findOrCreateUser(ctx context.Context, phone, name string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if name == "" {
		name = "User" + phone[len(phone)-4:]
	}
	user = models.User{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       phone,
		LoyaltyTier: models.DefaultLoyaltyTier,
	}
	err = s.db.WithContext(ctx).Create(&user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// created by a concurrent first login
		user = models.User{}
		if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
			return nil, fmt.Errorf("find user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.WithFields(logrus.Fields{"user_id": user.ID}).Info("User created on first login")
	return &user, nil
}

// isPlaceholderName reports whether the user never chose a display name
func isPlaceholderName(name string) bool {
	return name == "" || placeholderPattern.MatchString(name)
}
