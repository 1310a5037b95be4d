package verificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "verify-code-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.VerificationCode) error
	FindValid(email, code string, notBefore int64) (*dbmodels.VerificationCode, error)
	PurgeOlderThan(cutoff int64) (int64, error)
	Ping() error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.VerificationCode) error {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) FindValid(email, code string, notBefore int64) (*dbmodels.VerificationCode, error) {
	rec := dbmodels.VerificationCode{}
	err := i.db.
		Where("email = ?", email).
		Where("code = ?", code).
		Where("created_at > ?", notBefore). // игнорируем просроченные
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) PurgeOlderThan(cutoff int64) (int64, error) {
	res := i.db.
		Where("created_at < ?", cutoff).
		Delete(&dbmodels.VerificationCode{})
	return res.RowsAffected, res.Error
}

func (i impl) Ping() error {
	sqlDB, err := i.db.DB()
	if err != nil {
		return errors.Wrap(err, "ошибка получения соединения с БД")
	}
	return sqlDB.Ping()
}
