package fiberlog

import (
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestRequestLogMiddleware(t *testing.T) {
	newTestLogger := func() (*log.Logger, *logtest.Hook) {
		logger := log.New()
		logger.SetOutput(io.Discard)
		hook := logtest.NewLocal(logger)
		return logger, hook
	}

	t.Run(`tags logged check`, func(t *testing.T) {
		logger, hook := newTestLogger()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagMethod, TagPath, TagStatus, TagLatency}}))
		app.Get("/ping", func(c *fiber.Ctx) error {
			return c.SendString("pong")
		})

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entries := hook.AllEntries()
		require.Equal(t, 1, len(entries))
		require.Equal(t, "GET", entries[0].Data[TagMethod])
		require.Equal(t, "/ping", entries[0].Data[TagPath])
		require.Equal(t, fiber.StatusOK, entries[0].Data[TagStatus])
	})

	t.Run(`latency counted per request check`, func(t *testing.T) {
		logger, hook := newTestLogger()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, Tags: []string{TagPath, TagLatency}}))
		slowDelay := 100 * time.Millisecond
		app.Get("/slow", func(c *fiber.Ctx) error {
			time.Sleep(slowDelay)
			return c.SendString("ok")
		})
		app.Get("/fast", func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})

		// быстрый запрос завершается внутри окна медленного и не должен
		// влиять на его замер
		wg := sync.WaitGroup{}
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = app.Test(httptest.NewRequest(fiber.MethodGet, "/slow", nil))
		}()
		go func() {
			defer wg.Done()
			time.Sleep(slowDelay / 2)
			_, _ = app.Test(httptest.NewRequest(fiber.MethodGet, "/fast", nil))
		}()
		wg.Wait()

		latencies := map[string]time.Duration{}
		for _, entry := range hook.AllEntries() {
			path, ok := entry.Data[TagPath].(string)
			require.Equal(t, true, ok)
			latency, err := time.ParseDuration(entry.Data[TagLatency].(string))
			require.Nil(t, err)
			latencies[path] = latency
		}
		require.Equal(t, 2, len(latencies))
		require.GreaterOrEqual(t, latencies["/slow"], slowDelay)
		require.Less(t, latencies["/fast"], slowDelay)
	})
}
