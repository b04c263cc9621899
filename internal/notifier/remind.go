package notifier

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hako/durafmt"
	log "github.com/sirupsen/logrus"

	"revisor/internal/models"
	"revisor/internal/repositories"
	rdb "revisor/pkg/db/redis"
)

const reminderSet = "review_reminders"

func reminderDelay() time.Duration {
	hours := 24
	if raw := os.Getenv("REVIEW_REMINDER_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours) * time.Hour
}

// ScheduleReviewReminder registers a deadline after which a still-pending
// version triggers a reminder event.
func ScheduleReviewReminder(versionID string) {
	client := rdb.Client()
	if client == nil {
		return
	}
	due := time.Now().Add(reminderDelay()).Unix()
	if err := client.ZAdd(reminderSet, versionID, float64(due)); err != nil {
		log.Errorf("schedule review reminder: %v", err)
	}
}

// ClearReviewReminder drops a pending reminder once review completes.
func ClearReviewReminder(versionID string) {
	client := rdb.Client()
	if client == nil {
		return
	}
	if err := client.ZRem(reminderSet, versionID); err != nil {
		log.Errorf("clear review reminder: %v", err)
	}
}

// CheckReminders polls for due reminders and emits an event for every record
// still waiting on review. Runs until the context is cancelled.
func CheckReminders(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fireDueReminders()
		}
	}
}

func fireDueReminders() {
	client := rdb.Client()
	if client == nil {
		return
	}

	due, err := client.ZRangeByScoreWithScores(reminderSet, "0", fmt.Sprintf("%d", time.Now().Unix()))
	if err != nil {
		log.Errorf("fetch due reminders: %v", err)
		return
	}

	for _, entry := range due {
		versionID, ok := entry.Member.(string)
		if !ok {
			continue
		}
		if err := client.ZRem(reminderSet, versionID); err != nil {
			log.Errorf("remove reminder %s: %v", versionID, err)
		}

		version, err := repositories.VersionByID(versionID)
		if err != nil {
			log.Errorf("load version %s for reminder: %v", versionID, err)
			continue
		}
		if version.Status != models.StatusPendingReview {
			continue
		}

		age := durafmt.Parse(time.Since(version.CreatedAt)).LimitFirstN(2).String()
		Emit(Event{
			Type:      EventReviewReminder,
			ProjectID: version.ProjectID,
			ActorID:   version.AuthorID,
			EntityID:  version.ID,
			Message:   fmt.Sprintf("version %s has been waiting for review for %s", version.CommitID, age),
		})
	}
}
