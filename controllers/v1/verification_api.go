package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"verify-code-backend/controllers"
	verificationhandler "verify-code-backend/lib/verification"
	apimodels "verify-code-backend/models/api"
	verificationapimodels "verify-code-backend/models/api/verification"
)

type verificationController struct {
	controllers.BaseAPIController
}

func InitVerificationRouters(app *fiber.App) {
	controller := verificationController{}
	app.Post("/request-code", controller.RequestCode) // отправить на почту код подтверждения
	app.Post("/verify-code", controller.VerifyCode)   // проверить код подтверждения
}

// @Summary Отправить письмо с кодом подтверждения на почту
// @Tags Подтверждение_почты
// @Description Генерирует код подтверждения, сохраняет и отправляет на почту
// @Param	body				body		verificationapimodels.RequestCodeRequest	true	"request body"
// @Success 200 {object} apimodels.MessageResponse
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /request-code [post]
func (c *verificationController) RequestCode(ctx *fiber.Ctx) error {
	var payload verificationapimodels.RequestCodeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := verificationhandler.Instance.SendVerifyCode(payload.Company, payload.Username, payload.Email)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.MessageResponse{Message: "Verification code sent."})
}

// @Summary Проверить код подтверждения
// @Tags Подтверждение_почты
// @Description Проверяет пару почта+код, просроченный и неверный код неразличимы
// @Param	body				body		verificationapimodels.VerifyCodeRequest	true	"request body"
// @Success 200 {object} apimodels.VerifyResponse
// @Failure 400 {object} apimodels.VerifyResponse
// @Failure 500 {object} apimodels.Response
// @router /verify-code [post]
func (c *verificationController) VerifyCode(ctx *fiber.Ctx) error {
	var payload verificationapimodels.VerifyCodeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	valid, err := verificationhandler.Instance.VerifyCode(payload.Email, payload.Code)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if !valid {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.VerifyResponse{Valid: false, Message: "Invalid or expired code."})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.VerifyResponse{Valid: true, Message: "Code is valid."})
}
