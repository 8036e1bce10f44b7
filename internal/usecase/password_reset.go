package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/voltpoint/charge-station-api/internal/config"
	"github.com/voltpoint/charge-station-api/internal/repository"
	"github.com/voltpoint/charge-station-api/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password for the user holding the reset token.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetMailer dispatches password reset emails.
type ResetMailer interface {
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrEmailNotFound     = errors.New("email not found")
	ErrResetTokenInvalid = errors.New("password reset token is invalid or has expired")
)

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	mailer   ResetMailer
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer ResetMailer,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Contract here is an explicit not-found. An operator worried about
			// email enumeration would return success instead.
			return ErrEmailNotFound
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.cfg.Token.PasswordResetExpires)
	if err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), token, expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/%s", u.cfg.AppPasswordResetURL, token)
	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, user.Name, resetLink, resetLink, u.cfg.Token.PasswordResetExpires)

	return u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	// The lookup only matches a token whose expiry is still in the future, so
	// unknown and expired tokens are indistinguishable here on purpose.
	user, err := u.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrResetTokenInvalid
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.ResetPassword(ctx, user.ID.Hex(), passwordHash); err != nil {
		return err
	}

	return nil
}

// generateResetToken creates a single-use random token.
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
