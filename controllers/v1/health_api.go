package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"verify-code-backend/lib/healthcheck"
	apimodels "verify-code-backend/models/api"
)

type healthController struct{}

func InitHealthRouters(app *fiber.App) {
	controller := healthController{}
	app.Get("/health", controller.Health)
}

// @Summary Проверка состояния сервиса
// @Tags Служебное
// @Description Проверяет доступность БД и smtp сервера
// @Success 200 {object} apimodels.HealthResponse
// @Failure 500 {object} apimodels.HealthResponse
// @router /health [get]
func (c *healthController) Health(ctx *fiber.Ctx) error {
	report := healthcheck.Instance.Check(ctx.UserContext())
	resp := apimodels.HealthResponse{
		Status:     report.Status,
		Components: report.Components,
		Timestamp:  report.Timestamp,
	}
	if !report.Healthy() {
		return ctx.Status(fiber.StatusInternalServerError).JSON(resp)
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}
