package repositories

import (
	"errors"

	"marketsafe_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository performs CRUD against the account table. Lookups return
// ErrAccountNotFound for missing rows; existence-requiring updates return it
// when zero rows are affected. Delete is idempotent and reports a boolean
// instead.
type AccountRepository interface {
	Create(db *gorm.DB, account *models.Account) error
	FindByID(db *gorm.DB, id uint) (*models.Account, error)
	FindByEmail(db *gorm.DB, email string) (*models.Account, error)
	FindAll(db *gorm.DB) ([]models.Account, error)
	SetVerified(db *gorm.DB, id uint, verified bool) error
	Delete(db *gorm.DB, id uint) (bool, error)
}

type accountRepository struct{}

func NewAccountRepository() AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(db *gorm.DB, account *models.Account) error {
	if err := db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAccountAlreadyExists
		}
		return translateDBError(err, "account.create")
	}
	return nil
}

func (r *accountRepository) FindByID(db *gorm.DB, id uint) (*models.Account, error) {
	var account models.Account
	if err := db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, translateDBError(err, "account.find_by_id")
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(db *gorm.DB, email string) (*models.Account, error) {
	var account models.Account
	if err := db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, translateDBError(err, "account.find_by_email")
	}
	return &account, nil
}

func (r *accountRepository) FindAll(db *gorm.DB) ([]models.Account, error) {
	var accounts []models.Account
	if err := db.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, translateDBError(err, "account.find_all")
	}
	return accounts, nil
}

func (r *accountRepository) SetVerified(db *gorm.DB, id uint, verified bool) error {
	result := db.Model(&models.Account{}).Where("id = ?", id).Update("verified", verified)
	if result.Error != nil {
		return translateDBError(result.Error, "account.set_verified")
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Delete removes an account. Exists for test/dev use only; accounts are never
// hard-deleted in the normal flow.
func (r *accountRepository) Delete(db *gorm.DB, id uint) (bool, error) {
	result := db.Delete(&models.Account{}, "id = ?", id)
	if result.Error != nil {
		return false, translateDBError(result.Error, "account.delete")
	}
	return result.RowsAffected > 0, nil
}
