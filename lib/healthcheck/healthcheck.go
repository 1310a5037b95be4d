package healthcheck

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"verify-code-backend/config"
	"verify-code-backend/db"
	"verify-code-backend/lib/smtp"
	verificationstore "verify-code-backend/lib/verification/store"
)

const (
	StatusOk    = "ok"
	StatusError = "error"
)

type Report struct {
	Status     string
	Components map[string]string
	Timestamp  time.Time
}

func (r Report) Healthy() bool {
	return r.Status == StatusOk
}

var Instance Provider

type Provider interface {
	Check(ctx context.Context) Report
}

type StoragePinger interface {
	Ping() error
}

type SmtpVerifier interface {
	Verify() error
}

func NewHandler() {
	Instance = &impl{
		storage:    verificationstore.NewInstance(db.DB),
		transport:  smtp.Instance,
		retryCount: config.Conf.Health.SmtpRetryCount,
		retryDelay: time.Duration(config.Conf.Health.SmtpRetryDelaySec) * time.Second,
	}
}

type impl struct {
	storage    StoragePinger
	transport  SmtpVerifier
	retryCount int
	retryDelay time.Duration
}

func (i impl) Check(ctx context.Context) Report {
	report := Report{
		Status:     StatusOk,
		Components: map[string]string{},
		Timestamp:  time.Now(),
	}
	// БД локальная и быстрая, одной попытки достаточно
	if err := i.storage.Ping(); err != nil {
		log.WithError(err).Error("БД недоступна")
		report.Components["database"] = StatusError
		report.Status = StatusError
	} else {
		report.Components["database"] = StatusOk
	}
	if err := i.checkSmtp(ctx); err != nil {
		log.WithError(err).Error("smtp сервер недоступен")
		report.Components["smtp"] = StatusError
		report.Status = StatusError
	} else {
		report.Components["smtp"] = StatusOk
	}
	return report
}

// checkSmtp проверяет smtp с ограниченным числом повторов,
// хендшейк почтового провайдера бывает нестабилен на коротких интервалах
func (i impl) checkSmtp(ctx context.Context) (err error) {
	attempts := i.retryCount
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		err = i.transport.Verify()
		if err == nil {
			return nil
		}
		log.
			WithField("attempt", attempt).
			WithError(err).
			Warn("проверка smtp не прошла")
		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(i.retryDelay):
			}
		}
	}
	return err
}
