package redisservice

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/voxscribe/voxscribe-server/pkg/dbmodels"
)

// CacheTranscription stores a finished transcription so single-record reads
// don't have to touch MySQL.
func (s *RedisService) CacheTranscription(ctx context.Context, info *dbmodels.Transcription, ttl time.Duration) error {
	marshal, err := json.Marshal(info)
	if err != nil {
		return err
	}
	_, err = s.rc.Set(ctx, transcriptionCacheKey+info.TranscriptionId, marshal, ttl).Result()
	return err
}

// GetCachedTranscription returns the cached record or (nil, nil) on a miss.
func (s *RedisService) GetCachedTranscription(ctx context.Context, transcriptionId string) (*dbmodels.Transcription, error) {
	result, err := s.rc.Get(ctx, transcriptionCacheKey+transcriptionId).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, err
	}

	info := new(dbmodels.Transcription)
	err = json.Unmarshal([]byte(result), info)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// DeleteCachedTranscription drops the cached copy, if any.
func (s *RedisService) DeleteCachedTranscription(ctx context.Context, transcriptionId string) error {
	_, err := s.rc.Del(ctx, transcriptionCacheKey+transcriptionId).Result()
	return err
}
