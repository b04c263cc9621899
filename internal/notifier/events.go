package notifier

import (
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"

	rdb "revisor/pkg/db/redis"
)

const eventQueue = "revisor_events"

const (
	EventVersionCreated    = "version.created"
	EventVersionApproved   = "version.approved"
	EventVersionRejected   = "version.rejected"
	EventVersionDecision   = "version.decision"
	EventInvitationCreated = "invitation.created"
	EventRollbackCompleted = "rollback.completed"
	EventRollbackFailed    = "rollback.failed"
	EventReviewReminder    = "review.reminder"
)

// Event is the payload handed to the excluded notification layer, which
// renders and delivers it. The core enqueues and moves on; it never blocks
// on delivery success.
type Event struct {
	Type      string    `json:"type"`
	ProjectID string    `json:"projectId"`
	ActorID   string    `json:"actorId"`
	EntityID  string    `json:"entityId,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Emit enqueues an event for the notification collaborator. Without a Redis
// connection the payload is logged only.
func Emit(event Event) {
	event.CreatedAt = time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("marshal event: %v", err)
		return
	}

	client := rdb.Client()
	if client == nil {
		log.Infof("[event:fallback] %s", payload)
		return
	}
	if err := client.LPush(eventQueue, string(payload)); err != nil {
		log.Errorf("enqueue event: %v", err)
	}
}
