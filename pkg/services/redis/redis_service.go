package redisservice

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	Prefix                = "voxscribe:"
	transcriptionCacheKey = Prefix + "transcription:"
)

type RedisService struct {
	rc     *redis.Client
	logger *logrus.Entry
}

func New(rc *redis.Client, logger *logrus.Logger) *RedisService {
	return &RedisService{
		rc:     rc,
		logger: logger.WithField("service", "redis"),
	}
}

func (s *RedisService) Ping(ctx context.Context) error {
	return s.rc.Ping(ctx).Err()
}
