package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/voxscribe/voxscribe-server/pkg/config"
	redisservice "github.com/voxscribe/voxscribe-server/pkg/services/redis"
)

type HealthCheckController struct {
	app    *config.AppConfig
	rs     *redisservice.RedisService
	logger *logrus.Entry
}

func NewHealthCheckController(app *config.AppConfig, rs *redisservice.RedisService, logger *logrus.Logger) *HealthCheckController {
	return &HealthCheckController{
		app:    app,
		rs:     rs,
		logger: logger.WithField("controller", "health_check"),
	}
}

func (c *HealthCheckController) HandleHealthCheck(ctx *fiber.Ctx) error {
	db, err := c.app.DB.DB()
	if err == nil {
		err = db.PingContext(ctx.Context())
	}
	if err != nil {
		c.logger.WithError(err).Errorln("database ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).SendString("database unreachable")
	}

	if err = c.rs.Ping(ctx.Context()); err != nil {
		c.logger.WithError(err).Errorln("redis ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).SendString("redis unreachable")
	}

	return ctx.Status(fiber.StatusOK).SendString("Healthy")
}
