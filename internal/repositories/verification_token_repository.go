package repositories

import (
	"errors"
	"time"

	"marketsafe_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrTokenNotFound = errors.New("verification token not found")
)

// VerificationTokenRepository persists email verification tokens. The store
// only ever sees token hashes; reversing a hash back to a raw token is not a
// supported operation anywhere in this layer.
type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.VerificationToken) error
	FindByHash(db *gorm.DB, tokenHash string) (*models.VerificationToken, error)
	FindLatestByAccount(db *gorm.DB, accountID uint) (*models.VerificationToken, error)
	MarkUsed(db *gorm.DB, id uint, usedAt time.Time) error
	ClearUsed(db *gorm.DB, accountID uint) (int64, error)
}

type verificationTokenRepository struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &verificationTokenRepository{}
}

func (r *verificationTokenRepository) Create(db *gorm.DB, token *models.VerificationToken) error {
	if err := db.Create(token).Error; err != nil {
		return translateDBError(err, "verification_token.create")
	}
	return nil
}

func (r *verificationTokenRepository) FindByHash(db *gorm.DB, tokenHash string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := db.First(&token, "token_hash = ?", tokenHash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, translateDBError(err, "verification_token.find_by_hash")
	}
	return &token, nil
}

func (r *verificationTokenRepository) FindLatestByAccount(db *gorm.DB, accountID uint) (*models.VerificationToken, error) {
	var token models.VerificationToken
	err := db.Where("account_id = ?", accountID).
		Order("created_at DESC").
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, translateDBError(err, "verification_token.find_latest_by_account")
	}
	return &token, nil
}

// MarkUsed flips the one-way used flag and stamps used_at. The flag never
// transitions back.
func (r *verificationTokenRepository) MarkUsed(db *gorm.DB, id uint, usedAt time.Time) error {
	result := db.Model(&models.VerificationToken{}).Where("id = ?", id).Updates(map[string]interface{}{
		"used":    true,
		"used_at": usedAt,
	})
	if result.Error != nil {
		return translateDBError(result.Error, "verification_token.mark_used")
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// ClearUsed deletes all spent tokens for an account and returns how many were
// removed. Idempotent; zero deletions is not an error.
func (r *verificationTokenRepository) ClearUsed(db *gorm.DB, accountID uint) (int64, error) {
	result := db.Where("account_id = ? AND used = ?", accountID, true).Delete(&models.VerificationToken{})
	if result.Error != nil {
		return 0, translateDBError(result.Error, "verification_token.clear_used")
	}
	return result.RowsAffected, nil
}
