package managers

import (
	"marketsafe_backend/internal/models"
	"marketsafe_backend/internal/repositories"
	"marketsafe_backend/internal/validation"
	"marketsafe_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AccountManager enforces cross-record business rules (email uniqueness,
// existence) on top of the account store. It assumes field-level validation
// already happened in the service layer.
type AccountManager interface {
	CreateAccount(db *gorm.DB, account *models.Account) (*models.Account, error)
	GetAccountByID(db *gorm.DB, id uint) (*models.Account, error)
	GetAccountByEmail(db *gorm.DB, email string) (*models.Account, error)
	RequireAccountByID(db *gorm.DB, id uint) (*models.Account, error)
	ListAccounts(db *gorm.DB) ([]models.Account, error)
	SetVerified(db *gorm.DB, id uint, verified bool) error
	DeleteAccount(db *gorm.DB, id uint) (bool, error)
}

type accountManager struct {
	accountRepo repositories.AccountRepository
}

func NewAccountManager(accountRepo repositories.AccountRepository) AccountManager {
	return &accountManager{accountRepo: accountRepo}
}

// CreateAccount inserts a new account after a read-before-write uniqueness
// check. The check and the insert are not atomic: a concurrent duplicate
// insert surfaces as a unique-constraint violation from the store, which is
// mapped to the same conflict error.
func (m *accountManager) CreateAccount(db *gorm.DB, account *models.Account) (*models.Account, error) {
	existing, err := m.accountRepo.FindByEmail(db, account.Email)
	if err != nil && !apperrors.Is(err, repositories.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrAccountAlreadyExists(account.Email)
	}

	if err := m.accountRepo.Create(db, account); err != nil {
		if apperrors.Is(err, repositories.ErrAccountAlreadyExists) {
			return nil, apperrors.ErrAccountAlreadyExists(account.Email)
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByID returns nil without error when no account matches; a lookup
// miss is a valid outcome, not a failure.
func (m *accountManager) GetAccountByID(db *gorm.DB, id uint) (*models.Account, error) {
	if _, err := validation.RequireID(id, "account_id"); err != nil {
		return nil, err
	}
	account, err := m.accountRepo.FindByID(db, id)
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}

func (m *accountManager) GetAccountByEmail(db *gorm.DB, email string) (*models.Account, error) {
	normalized, err := validation.ValidEmail(email)
	if err != nil {
		return nil, err
	}
	account, err := m.accountRepo.FindByEmail(db, normalized)
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}

// RequireAccountByID is the existence-requiring variant of GetAccountByID.
func (m *accountManager) RequireAccountByID(db *gorm.DB, id uint) (*models.Account, error) {
	account, err := m.GetAccountByID(db, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrAccountNotFound(map[string]uint{"account_id": id})
	}
	return account, nil
}

func (m *accountManager) ListAccounts(db *gorm.DB) ([]models.Account, error) {
	return m.accountRepo.FindAll(db)
}

func (m *accountManager) SetVerified(db *gorm.DB, id uint, verified bool) error {
	if _, err := validation.RequireID(id, "account_id"); err != nil {
		return err
	}
	err := m.accountRepo.SetVerified(db, id, verified)
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return apperrors.ErrAccountNotFound(map[string]uint{"account_id": id})
	}
	return err
}

func (m *accountManager) DeleteAccount(db *gorm.DB, id uint) (bool, error) {
	if _, err := validation.RequireID(id, "account_id"); err != nil {
		return false, err
	}
	return m.accountRepo.Delete(db, id)
}
