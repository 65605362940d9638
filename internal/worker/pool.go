package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"barveredales/internal/infra"
)

const QueueResetEmail = "jobs:reset_email"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ResetEmailPayload is the job envelope for recovery-code mail.
type ResetEmailPayload struct {
	ToEmail string `json:"to_email"`
	Code    string `json:"code"`
}

// Dispatcher enqueues async jobs into Redis lists. The worker pool dequeues
// them via BRPOP. It satisfies service.CodeNotifier, so deployments with
// Redis deliver recovery codes off the request path.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// SendResetCode pushes a recovery-code mail job to Redis.
func (d *Dispatcher) SendResetCode(ctx context.Context, email, code string) error {
	return d.enqueue(ctx, QueueResetEmail, "reset_email", ResetEmailPayload{ToEmail: email, Code: code})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the mail queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, mailer *infra.Mailer, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, mailer, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, mailer *infra.Mailer, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueResetEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, mailer, result[1])
		}
	}
}

func processJob(ctx context.Context, mailer *infra.Mailer, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}

	var payload ResetEmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("reset_email: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("reset_email: empty to_email, skipping")
		return
	}

	if mailer == nil {
		log.Info().Str("to", payload.ToEmail).Str("code", payload.Code).
			Msg("reset_email: no SMTP configured, code logged only")
		return
	}
	if err := mailer.SendResetCode(ctx, payload.ToEmail, payload.Code); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("reset_email: send failed")
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("reset_email: code sent")
}
