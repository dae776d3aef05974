package auth

import (
	"context"

	"beachride/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64) error
	RevokeByUser(ctx context.Context, userID int64) error
}

type ResetCodeRepository interface {
	Create(ctx context.Context, c *domain.PasswordResetCode) error
	GetValid(ctx context.Context, userID int64) (*domain.PasswordResetCode, error)
	MarkUsed(ctx context.Context, id int64) error
}

// Mailer delivers password reset codes. The default implementation just
// logs them; SMTP delivery is a deployment concern.
type Mailer interface {
	SendPasswordResetCode(ctx context.Context, email, code string) error
}
