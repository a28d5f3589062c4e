package services

import (
	"fmt"
	"strings"
	"time"

	"marketsafe_backend/internal/auth"
	"marketsafe_backend/internal/config"
	"marketsafe_backend/internal/email"
	"marketsafe_backend/internal/logger"
	"marketsafe_backend/internal/managers"
	"marketsafe_backend/internal/models"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/internal/services/dto"
	"marketsafe_backend/internal/validation"
	"marketsafe_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// allowedEmailDomains is the institutional allow-list. Signup is rejected for
// any address outside these domains regardless of other field validity.
var allowedEmailDomains = []string{"umanitoba.ca", "myumanitoba.ca"}

type AccountService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetAccountByID(db *gorm.DB, id uint) (*models.Account, error)
	GenerateAndStoreVerificationToken(db *gorm.DB, accountID uint) (string, error)
	VerifyEmailToken(db *gorm.DB, rawToken string) (*models.Account, error)
	ResendVerification(db *gorm.DB, accountID uint) (string, error)
}

type AccountServiceImpl struct {
	cfg            *config.Config
	accountManager managers.AccountManager
	tokenRepo      repositories.VerificationTokenRepository
	emailProvider  email.Provider
}

func NewAccountService(
	cfg *config.Config,
	accountManager managers.AccountManager,
	tokenRepo repositories.VerificationTokenRepository,
	emailProvider email.Provider,
) AccountService {
	return &AccountServiceImpl{
		cfg:            cfg,
		accountManager: accountManager,
		tokenRepo:      tokenRepo,
		emailProvider:  emailProvider,
	}
}

// Signup validates the request, creates the account and issues a
// verification token. Email delivery failures are logged but do not fail the
// signup; the link is also returned in the response body.
func (s *AccountServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	normalizedEmail, err := validation.ValidEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if !hasAllowedDomain(normalizedEmail) {
		return nil, apperrors.NewValidationError(
			"Email must belong to an allowed university domain (umanitoba.ca or myumanitoba.ca)")
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	fname, err := validation.RequireString(req.Fname, "fname")
	if err != nil {
		return nil, err
	}
	lname, err := validation.RequireString(req.Lname, "lname")
	if err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	account := &models.Account{
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
		Fname:        fname,
		Lname:        lname,
		Verified:     false,
	}

	created, err := s.accountManager.CreateAccount(db, account)
	if err != nil {
		return nil, mapServiceError(err)
	}

	rawToken, err := s.GenerateAndStoreVerificationToken(db, created.ID)
	if err != nil {
		return nil, mapServiceError(err)
	}

	link := s.verificationLink(rawToken)
	if err := s.emailProvider.SendVerification(created.Email, link); err != nil {
		logger.Warn("failed to send verification email", "email", created.Email, "error", err)
	}

	return &dto.SignupResponse{
		Account:          toAccountResponse(created),
		Message:          "Account created. Please check your email to verify your address.",
		VerificationLink: link,
	}, nil
}

// Login authenticates by email and password. A missing account and a wrong
// password produce the same 401, so login cannot be used to probe which
// emails are registered.
func (s *AccountServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewBadRequestError("Email and password are required")
	}

	account, err := s.accountManager.GetAccountByEmail(db, req.Email)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.CodeValidationError {
			// Malformed email can only mean no such account.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, mapServiceError(err)
	}
	if account == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWT.TTLMinutes) * time.Minute
	accessToken, err := auth.GenerateToken(s.cfg.JWT.Secret, account.ID, ttl)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (s *AccountServiceImpl) GetAccountByID(db *gorm.DB, id uint) (*models.Account, error) {
	account, err := s.accountManager.RequireAccountByID(db, id)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return account, nil
}

// GenerateAndStoreVerificationToken creates a fresh token for the account and
// returns the raw value. Only the hash reaches the store.
func (s *AccountServiceImpl) GenerateAndStoreVerificationToken(db *gorm.DB, accountID uint) (string, error) {
	rawToken, err := auth.GenerateVerificationToken()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	tokenHash, err := auth.HashVerificationToken(rawToken)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	token := &models.VerificationToken{
		AccountID: accountID,
		TokenHash: tokenHash,
		ExpiresAt: auth.VerificationTokenExpiry(),
	}

	if err := s.tokenRepo.Create(db, token); err != nil {
		return "", mapServiceError(err)
	}
	return rawToken, nil
}

// VerifyEmailToken validates a raw token and, when everything checks out,
// flips the account's verified flag and spends the token inside a single
// transaction. Either both rows change or neither does; a failed attempt
// leaves the token usable.
func (s *AccountServiceImpl) VerifyEmailToken(db *gorm.DB, rawToken string) (*models.Account, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, apperrors.ErrEmailVerification("Verification token cannot be empty")
	}

	tokenHash, err := auth.HashVerificationToken(rawToken)
	if err != nil {
		return nil, apperrors.ErrEmailVerification("Verification token cannot be empty")
	}

	token, err := s.tokenRepo.FindByHash(db, tokenHash)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, mapServiceError(err)
	}

	if token.Used {
		return nil, apperrors.ErrTokenAlreadyUsed
	}
	if token.IsExpired() {
		// Expired tokens are never marked used.
		return nil, apperrors.ErrTokenExpired
	}

	var account *models.Account
	err = db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		account, txErr = s.accountManager.RequireAccountByID(tx, token.AccountID)
		if txErr != nil {
			return txErr
		}
		if txErr = s.accountManager.SetVerified(tx, account.ID, true); txErr != nil {
			return txErr
		}
		if txErr = s.tokenRepo.MarkUsed(tx, token.ID, time.Now()); txErr != nil {
			if apperrors.Is(txErr, repositories.ErrTokenNotFound) {
				return apperrors.ErrTokenNotFound
			}
			return txErr
		}
		return nil
	})
	if err != nil {
		return nil, mapServiceError(err)
	}

	account.Verified = true
	return account, nil
}

// ResendVerification discards spent tokens for the account and issues a new
// link. Already-verified accounts are rejected.
func (s *AccountServiceImpl) ResendVerification(db *gorm.DB, accountID uint) (string, error) {
	account, err := s.accountManager.RequireAccountByID(db, accountID)
	if err != nil {
		return "", mapServiceError(err)
	}
	if account.Verified {
		return "", apperrors.ErrEmailVerification("Account email is already verified")
	}

	if _, err := s.tokenRepo.ClearUsed(db, accountID); err != nil {
		return "", mapServiceError(err)
	}

	rawToken, err := s.GenerateAndStoreVerificationToken(db, accountID)
	if err != nil {
		return "", err
	}

	link := s.verificationLink(rawToken)
	if err := s.emailProvider.SendVerification(account.Email, link); err != nil {
		logger.Warn("failed to send verification email", "email", account.Email, "error", err)
	}
	return link, nil
}

func (s *AccountServiceImpl) verificationLink(rawToken string) string {
	return fmt.Sprintf("%s?token=%s", s.cfg.Verification.LinkBaseURL, rawToken)
}

func hasAllowedDomain(normalizedEmail string) bool {
	at := strings.LastIndex(normalizedEmail, "@")
	if at < 0 {
		return false
	}
	domain := normalizedEmail[at+1:]
	for _, allowed := range allowedEmailDomains {
		if domain == allowed {
			return true
		}
	}
	return false
}

func toAccountResponse(account *models.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:       account.ID,
		Email:    account.Email,
		Fname:    account.Fname,
		Lname:    account.Lname,
		Verified: account.Verified,
	}
}

// mapServiceError guarantees that everything leaving the service layer is an
// *AppError; anything unexpected becomes a generic 500.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
