package verification

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"verify-code-backend/config"
	"verify-code-backend/db"
	"verify-code-backend/lib/smtp"
	verificationstore "verify-code-backend/lib/verification/store"
	dbmodels "verify-code-backend/models/db"
)

// Ошибки с безопасными для клиента сообщениями, детали остаются в логах
var (
	ErrStorage  = errors.New("Internal server error.")
	ErrDelivery = errors.New("Failed to send verification email.")
)

var Instance Provider

type Provider interface {
	SendVerifyCode(company, username, email string) error
	VerifyCode(email, code string) (bool, error)
}

func NewHandler() {
	Instance = &impl{
		store:      verificationstore.NewInstance(db.DB),
		sender:     smtp.Instance,
		emailFrom:  config.Conf.Smtp.EmailFrom,
		ttl:        time.Duration(config.Conf.Verification.CodeTTLSec) * time.Second,
		codeLength: config.Conf.Verification.CodeLength,
	}
}

type impl struct {
	store      verificationstore.Provider
	sender     smtp.Provider
	emailFrom  string
	ttl        time.Duration
	codeLength int
}

func (i impl) SendVerifyCode(company, username, email string) error {
	email = strings.ToLower(email)
	logger := log.
		WithField("company", company).
		WithField("email", email)
	rec := dbmodels.VerificationCode{
		Company:   company,
		Username:  username,
		Email:     email,
		Code:      GenerateCode(i.codeLength),
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := i.store.Create(rec); err != nil {
		logger.WithError(err).Error("ошибка сохранения кода подтверждения")
		return ErrStorage
	}
	message := fmt.Sprintf("Здравствуйте, %s!\r\n Ваш код подтверждения для %s: %s", username, company, rec.Code)
	if err := i.sender.SendEMail(i.emailFrom, email, message, "Код подтверждения"); err != nil {
		// код уже сохранён и остаётся действительным, запись не откатываем
		logger.WithError(err).Error("ошибка отправки письма с кодом подтверждения")
		return ErrDelivery
	}
	return nil
}

func (i impl) VerifyCode(email, code string) (bool, error) {
	email = strings.ToLower(email)
	notBefore := time.Now().Add(-i.ttl).UnixMilli()
	rec, err := i.store.FindValid(email, code, notBefore)
	if err != nil {
		log.
			WithField("email", email).
			WithError(err).
			Error("ошибка поиска кода подтверждения")
		return false, ErrStorage
	}
	return rec != nil, nil
}
