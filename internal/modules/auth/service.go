package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"beachride/internal/domain"
	"beachride/internal/pkg/validator"

	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	totpIssuer   = "BeachRide"
	resetCodeTTL = 15 * time.Minute
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
	GenerateMFAPendingToken(userID int64, role string) (string, error)
}

type Service struct {
	users         UserRepository
	refreshTokens RefreshTokenRepository
	resetCodes    ResetCodeRepository
	jwt           jwtService
	mailer        Mailer
	refreshPepper string
	refreshTTL    time.Duration
}

func NewService(
	users UserRepository,
	refreshTokens RefreshTokenRepository,
	resetCodes ResetCodeRepository,
	jwt jwtService,
	mailer Mailer,
	refreshPepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:         users,
		refreshTokens: refreshTokens,
		resetCodes:    resetCodes,
		jwt:           jwt,
		mailer:        mailer,
		refreshPepper: refreshPepper,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
	}
	// The gin binding saw the raw payload; check the normalized user so
	// callers that skip the handler get the same rules.
	if errs := validator.Validate(user); errs != nil {
		return nil, ErrValidation
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	// MFA-enabled accounts get a short-lived pending token instead of a
	// session; the session is minted after the TOTP challenge.
	if user.MFAEnabled {
		pending, err := s.jwt.GenerateMFAPendingToken(user.ID, string(user.Role))
		if err != nil {
			return nil, fmt.Errorf("generate pending token: %w", err)
		}
		return &LoginResponse{MFARequired: true, PendingToken: pending}, nil
	}

	return s.issueSession(ctx, user)
}

// CompleteMFAChallenge validates the TOTP code for the user identified by
// a pending token and issues a full session.
func (s *Service) CompleteMFAChallenge(ctx context.Context, userID int64, code string) (*LoginResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.MFAEnabled || user.MFASecret == "" {
		return nil, ErrMFANotEnrolled
	}
	if !totp.Validate(code, user.MFASecret) {
		return nil, ErrInvalidCode
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user *domain.User) (*LoginResponse, error) {
	access, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshRaw, refreshHash, err := generateOpaqueRefreshToken(s.refreshPepper)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: refreshHash,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	user.PasswordHash = ""
	user.MFASecret = ""
	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refreshRaw,
		User:         user,
	}, nil
}

// Refresh rotates the refresh token: the presented token is revoked and a
// new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (*TokenPairResponse, error) {
	hash := hashTokenWithPepper(refreshRaw, s.refreshPepper)
	row, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}
	if row.RevokedAt != nil || time.Now().After(row.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.refreshTokens.Revoke(ctx, row.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	access, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	newRaw, newHash, err := generateOpaqueRefreshToken(s.refreshPepper)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.refreshTokens.Create(ctx, &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: newHash,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPairResponse{AccessToken: access, RefreshToken: newRaw}, nil
}

func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	hash := hashTokenWithPepper(refreshRaw, s.refreshPepper)
	row, err := s.refreshTokens.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already gone, logout is idempotent
		}
		return fmt.Errorf("lookup refresh token: %w", err)
	}
	return s.refreshTokens.Revoke(ctx, row.ID)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.PasswordHash = ""
	user.MFASecret = ""
	return user, nil
}

// --- password reset ---

// RequestPasswordReset always succeeds from the caller's point of view so
// that the endpoint does not leak which emails are registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("get user: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}
	if err := s.resetCodes.Create(ctx, &domain.PasswordResetCode{
		UserID:    user.ID,
		CodeHash:  hashTokenWithPepper(code, s.refreshPepper),
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	if err := s.mailer.SendPasswordResetCode(ctx, user.Email, code); err != nil {
		log.Printf("auth: reset code delivery to %s failed: %v", user.Email, err)
	}
	return nil
}

func (s *Service) ConfirmPasswordReset(ctx context.Context, req ResetConfirmRequest) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("get user: %w", err)
	}

	row, err := s.resetCodes.GetValid(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("lookup reset code: %w", err)
	}
	if row.CodeHash != hashTokenWithPepper(req.Code, s.refreshPepper) {
		return ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if err := s.resetCodes.MarkUsed(ctx, row.ID); err != nil {
		return fmt.Errorf("mark code used: %w", err)
	}
	// Password changed under the user's feet, drop every session.
	if err := s.refreshTokens.RevokeByUser(ctx, user.ID); err != nil {
		log.Printf("auth: revoke sessions for user %d failed: %v", user.ID, err)
	}
	return nil
}

// --- MFA enrollment ---

func (s *Service) EnrollMFA(ctx context.Context, userID int64) (*MFAEnrollResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.MFAEnabled {
		return nil, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	// Secret stored but not active until the first code is verified.
	user.MFASecret = key.Secret()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &MFAEnrollResponse{Secret: key.Secret(), OTPAuthURL: key.URL()}, nil
}

func (s *Service) VerifyMFA(ctx context.Context, userID int64, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if user.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, user.MFASecret) {
		return ErrInvalidCode
	}
	if user.MFAEnabled {
		return nil
	}
	user.MFAEnabled = true
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *Service) UnenrollMFA(ctx context.Context, userID int64, code string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if !user.MFAEnabled || user.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if !totp.Validate(code, user.MFASecret) {
		return ErrInvalidCode
	}
	user.MFAEnabled = false
	user.MFASecret = ""
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// --- token helpers ---

func generateOpaqueRefreshToken(pepper string) (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashTokenWithPepper(raw, pepper), nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
