package notify

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	fcm "google.golang.org/api/fcm/v1"
	"google.golang.org/api/option"
)

// FCMPusher sends through the Firebase Cloud Messaging HTTP v1 API. Sends
// are rate limited so a large fan-out cannot exhaust the project quota.
type FCMPusher struct {
	service   *fcm.Service
	projectID string
	limiter   *rate.Limiter
}

func NewFCMPusher(ctx context.Context, projectID, credentialsFile string, perSecond float64, burst int) (*FCMPusher, error) {
	service, err := fcm.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(fcm.FirebaseMessagingScope),
	)
	if err != nil {
		return nil, fmt.Errorf("fcm: %w", err)
	}
	return &FCMPusher{
		service:   service,
		projectID: projectID,
		limiter:   rate.NewLimiter(rate.Limit(perSecond), burst),
	}, nil
}

func (p *FCMPusher) Push(ctx context.Context, msg PushMessage) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("fcm rate limit: %w", err)
	}

	req := &fcm.SendMessageRequest{
		Message: &fcm.Message{
			Token: msg.Target,
			Notification: &fcm.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
			Data: msg.Data,
		},
	}
	_, err := p.service.Projects.Messages.Send("projects/"+p.projectID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

// LogPusher stands in when no push provider is configured.
type LogPusher struct {
	logger *slog.Logger
}

func NewLogPusher(logger *slog.Logger) *LogPusher {
	return &LogPusher{logger: logger}
}

func (p *LogPusher) Push(_ context.Context, msg PushMessage) error {
	p.logger.Debug("push skipped, no provider configured", "title", msg.Title)
	return nil
}
