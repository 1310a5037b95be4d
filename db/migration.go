package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "verify-code-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.VerificationCode{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры VerificationCode")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
