package cleanupworker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"verify-code-backend/config"
	"verify-code-backend/db"
	baseworker "verify-code-backend/lib/utils/base-worker"
	verificationstore "verify-code-backend/lib/verification/store"
)

const firstRunDelay = 10 * time.Second

// StartWorker запускает периодическую чистку просроченных кодов подтверждения.
// Интервал запуска настраивается отдельно от времени жизни кода.
func StartWorker(ctx context.Context) {
	i := &impl{
		store: verificationstore.NewInstance(db.DB),
		ttl:   time.Duration(config.Conf.Verification.CodeTTLSec) * time.Second,
	}
	runInterval := time.Duration(config.Conf.Verification.CleanupIntervalSec) * time.Second
	worker := baseworker.NewInstance("VerifyCodeCleanup", firstRunDelay, runInterval)
	go worker.Run(ctx, i.handle)
}

type impl struct {
	store verificationstore.Provider
	ttl   time.Duration
}

func (i impl) handle(ctx context.Context) {
	logger := log.WithField("worker_name", "VerifyCodeCleanup")
	cutoff := time.Now().Add(-i.ttl).UnixMilli()
	count, err := i.store.PurgeOlderThan(cutoff)
	if err != nil {
		// ошибка чистки не критична, повторим на следующем запуске
		logger.WithError(err).Error("ошибка удаления просроченных кодов")
		return
	}
	if count > 0 {
		logger.WithField("count", count).Info("просроченные коды удалены")
	}
}
