package initializers

import (
	"context"

	"verify-code-backend/config"
	"verify-code-backend/fiberlog"
	"verify-code-backend/lib/healthcheck"
	verificationhandler "verify-code-backend/lib/verification"
	cleanupworker "verify-code-backend/lib/verification/cleanup-worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	verificationhandler.NewHandler()
	healthcheck.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача чистки просроченных кодов подтверждения
	cleanupworker.StartWorker(ctx)
}
