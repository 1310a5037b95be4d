package smtp

import (
	"fmt"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	SendEMail(from, to, message, subject string) error
	Verify() error
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) configured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(from, to, message, subject string) (err error) {
	logger := log.WithField("sender", from)
	if !i.configured() {
		logger.Warn("Письмо с кодом подтверждения не отправлено, тк не настроен smtp клиент")
		return nil
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	mimeHeaders := "MIME-version: 1.0;\nContent-Type: text/plain; charset=\"UTF-8\";\r\n"
	messageID := fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.NewString(), i.host)
	body := strings.NewReader(fmt.Sprintf("Subject: %s\n%s%s\r\n Отправитель: %s\r\n %s\r\n", subject, mimeHeaders, messageID, from, message))

	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, body)
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, body)
	}
	if err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

// Verify выполняет проверку доступности smtp сервера (dial + NOOP), используется только healthcheck
func (i impl) Verify() (err error) {
	if !i.configured() {
		return errors.New("smtp клиент не настроен")
	}
	addr := i.host + ":" + i.port
	var c *smtp.Client
	if i.tlsEnabled {
		c, err = smtp.DialTLS(addr, nil)
	} else {
		c, err = smtp.Dial(addr)
	}
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к smtp серверу")
	}
	defer c.Close()
	if err = c.Noop(); err != nil {
		return errors.Wrap(err, "smtp сервер не отвечает")
	}
	return c.Quit()
}
