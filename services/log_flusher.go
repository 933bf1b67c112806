package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"srms_go/database"
	"srms_go/models"

	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// LogFlusherService drains the Redis activity-log queue into the database.
// LogActivity caches entries with a 24-hour TTL; the flusher must run well
// inside that window or cached logs expire unrecorded.
type LogFlusherService struct {
	cron *cron.Cron
}

// NewLogFlusherService creates a new service instance
func NewLogFlusherService() *LogFlusherService {
	return &LogFlusherService{cron: cron.New()}
}

// StartScheduler flushes cached logs every hour
func (lfs *LogFlusherService) StartScheduler() {
	if _, err := lfs.cron.AddFunc("@hourly", func() {
		if err := lfs.FlushCachedLogsToDatabase(); err != nil {
			logrus.WithError(err).Warn("Scheduled log flush failed")
		}
	}); err != nil {
		logrus.WithError(err).Error("Failed to schedule log flusher")
		return
	}
	lfs.cron.Start()
}

// Stop halts the flush schedule
func (lfs *LogFlusherService) Stop() {
	lfs.cron.Stop()
}

// FlushCachedLogsToDatabase moves queued logs from the Redis cache to the
// database and removes them from the queue
func (lfs *LogFlusherService) FlushCachedLogsToDatabase() error {
	redisClient := database.GetRedisClient()
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	ctx := context.Background()

	queuedLogs, err := redisClient.ZRangeByScore(ctx, "logs:queue", &redis.ZRangeBy{
		Min: "0",
		Max: fmt.Sprintf("%d", time.Now().Unix()),
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to read log queue: %v", err)
	}

	var processedCount int
	var errorCount int

	for _, logKey := range queuedLogs {
		logData, err := redisClient.Get(ctx, logKey).Result()
		if err != nil {
			if err != redis.Nil {
				logrus.WithError(err).Errorf("Failed to get log data for key: %s", logKey)
				errorCount++
			}
			// Expired entries just leave a stale queue member behind
			redisClient.ZRem(ctx, "logs:queue", logKey)
			continue
		}

		activityLog, err := decodeCachedLog([]byte(logData))
		if err != nil {
			logrus.WithError(err).Errorf("Failed to unmarshal log data for key: %s", logKey)
			errorCount++
			continue
		}

		if err := database.DB.Create(&activityLog).Error; err != nil {
			logrus.WithError(err).Errorf("Failed to save log to database: %v", activityLog)
			errorCount++
			continue
		}

		pipeline := redisClient.Pipeline()
		pipeline.Del(ctx, logKey)
		pipeline.ZRem(ctx, "logs:queue", logKey)
		if _, err := pipeline.Exec(ctx); err != nil {
			logrus.WithError(err).Errorf("Failed to remove log from cache: %s", logKey)
		}

		processedCount++
	}

	if processedCount > 0 || errorCount > 0 {
		logrus.Infof("Flushed %d logs to database, %d errors", processedCount, errorCount)
	}
	return nil
}

// decodeCachedLog parses one cached queue entry back into an ActivityLog
func decodeCachedLog(data []byte) (models.ActivityLog, error) {
	var activityLog models.ActivityLog
	if err := json.Unmarshal(data, &activityLog); err != nil {
		return models.ActivityLog{}, err
	}
	return activityLog, nil
}
