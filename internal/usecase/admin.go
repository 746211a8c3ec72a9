package usecase

import (
	"log/slog"
	"strings"

	"github.com/polkiloo/vouchermart/internal/config"
	domainErrors "github.com/polkiloo/vouchermart/internal/domain/errors"
	pkgAuth "github.com/polkiloo/vouchermart/internal/pkg/auth"
)

// AdminAuthUseCase checks the single configured admin account and issues tokens.
type AdminAuthUseCase struct {
	login        string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAdminAuthUseCase constructs AdminAuthUseCase. Login is disabled when no
// valid password hash is configured.
func NewAdminAuthUseCase(cfg *config.Config, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, logger *slog.Logger) *AdminAuthUseCase {
	hash := cfg.AdminPasswordHash
	switch {
	case hash == "":
		logger.Warn("ADMIN_PASSWORD_HASH is empty, admin login disabled")
	case hasher.Validate(hash) != nil:
		logger.Error("ADMIN_PASSWORD_HASH is not a bcrypt hash, admin login disabled")
		hash = ""
	}
	return &AdminAuthUseCase{
		login:        strings.TrimSpace(cfg.AdminLogin),
		passwordHash: hash,
		hasher:       hasher,
		tokens:       strategy,
	}
}

// Login validates credentials and returns auth token.
func (u *AdminAuthUseCase) Login(login, password string) (string, error) {
	if u.passwordHash == "" || u.login == "" {
		return "", domainErrors.ErrAdminDisabled
	}
	login = strings.TrimSpace(login)
	if login == "" || password == "" || login != u.login {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(u.login)
}

// ParseToken extracts the admin login from provided token.
func (u *AdminAuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if subject != u.login {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}
