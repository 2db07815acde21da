package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	UserKeyPrefix      = "user:%s"
	JobKeyPrefix       = "job:%s"
	CaseStudyKeyPrefix = "case_study:%s"
)

const (
	UserTTL      = 5 * time.Minute
	JobTTL       = 2 * time.Minute
	CaseStudyTTL = 30 * time.Minute
)

func UserKey(userID uuid.UUID) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func JobKey(jobID uuid.UUID) string {
	return fmt.Sprintf(JobKeyPrefix, jobID)
}

func CaseStudyKey(id uuid.UUID) string {
	return fmt.Sprintf(CaseStudyKeyPrefix, id)
}

// Invalidate deletes key. Failures are counted by the metrics hook and
// otherwise ignored; entries expire on their own.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uuid.UUID) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateJob(ctx context.Context, jobID uuid.UUID) {
	Invalidate(ctx, JobKey(jobID))
}
