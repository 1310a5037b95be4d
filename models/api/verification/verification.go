package verificationapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type RequestCodeRequest struct {
	Company  string `json:"company"`  // Название компании
	Username string `json:"username"` // Отображаемое имя пользователя
	Email    string `json:"email"`    // Почта, на которую надо отправить код
}

func (r RequestCodeRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" {
		return errors.New("company is required")
	}
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r VerifyCodeRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.Code) == "" {
		return errors.New("code is required")
	}
	return nil
}
