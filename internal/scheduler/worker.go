package scheduler

import (
	"context"
	"fmt"

	"salesdesk_backend/internal/events"
	"salesdesk_backend/internal/leads/domain"
	"salesdesk_backend/internal/leads/persist"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes follow-up tasks. It reads the latest store snapshot
// to drop reminders for leads that moved on before the delay elapsed.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	snapshots *persist.Snapshotter
	bus       events.Bus
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, snapshots *persist.Snapshotter, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		snapshots: snapshots,
		bus:       bus,
		log:       log,
	}

	mux.HandleFunc(TaskLeadFollowUp, w.handleLeadFollowUp)

	return w, nil
}

func (w *Worker) handleLeadFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowUpPayload(task)
	if err != nil {
		return err
	}

	if w.snapshots != nil {
		leads, err := w.snapshots.Load(ctx)
		if err != nil {
			return err
		}
		lead := findLead(leads, payload.LeadID)
		if lead == nil {
			w.log.Info("follow-up dropped, lead gone", "lead_id", payload.LeadID)
			return nil
		}
		if string(lead.Status) != payload.Status || lead.Status.Closed() {
			w.log.Info("follow-up dropped, lead moved on",
				"lead_id", payload.LeadID, "scheduled_status", payload.Status, "current_status", string(lead.Status))
			return nil
		}
	}

	if w.bus == nil {
		return nil
	}

	w.log.Info("follow-up due", "lead_id", payload.LeadID, "status", payload.Status)
	w.bus.Publish(ctx, events.FollowUpDue{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    payload.LeadID,
		Status:    payload.Status,
	})

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func findLead(leads []*domain.Lead, id string) *domain.Lead {
	for _, lead := range leads {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}
