//go:generate go run go.uber.org/mock/mockgen -source=dispatcher.go -destination=../mocks/mock_notify.go -package=mocks
package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/noteduco342/rep-messaging/internal/apperr"
	"github.com/noteduco342/rep-messaging/internal/models"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Category string

const (
	CategoryDirectMessage Category = "direct_message"
	CategoryGroupMessage  Category = "group_message"
	CategoryTeamInvite    Category = "goal_invite"
	// CategoryUpdate carries state-sync events. They are emitted to every
	// recipient regardless of preferences and never pushed.
	CategoryUpdate Category = "update"
)

// Allows reports whether prefs admit a notification of category c.
func Allows(prefs models.NotificationPreferences, c Category) bool {
	if c == CategoryUpdate {
		return true
	}
	if !prefs.PushEnabled {
		return false
	}
	switch c {
	case CategoryDirectMessage:
		return prefs.DirectMessages
	case CategoryGroupMessage:
		return prefs.GroupMessages
	case CategoryTeamInvite:
		return prefs.GoalInvites
	default:
		return true
	}
}

// Recipient is what delivery needs to know about a member.
type Recipient struct {
	Preferences  models.NotificationPreferences
	DeviceTarget string
}

type RecipientDirectory interface {
	Lookup(ctx context.Context, memberID uint) (Recipient, error)
}

// Emitter delivers realtime events to live connections. Both methods return
// how many connections were reached; zero means nobody was listening.
type Emitter interface {
	EmitToMember(memberID uint, event string, payload any) (int, error)
	EmitToRoom(room string, event string, payload any) (int, error)
}

type PushMessage struct {
	Target string
	Title  string
	Body   string
	Data   map[string]string
}

type Pusher interface {
	Push(ctx context.Context, msg PushMessage) error
}

// Notification describes one post-commit fan-out.
type Notification struct {
	Category   Category
	Recipients []uint
	Event      string
	Payload    any

	Title string
	Body  string
	Data  map[string]string

	// Room, when set, also receives RoomEvent once. The conversation view
	// stream is not subject to per-member preferences.
	Room        string
	RoomEvent   string
	RoomPayload any

	// Stream orders notifications: those sharing a stream are delivered in
	// the order they were queued. Empty falls back to Room, then to the
	// first recipient.
	Stream string
}

// PairStream names the stream of a direct conversation between a and b.
func PairStream(a, b uint) string {
	return fmt.Sprintf("pair:%d:%d", min(a, b), max(a, b))
}

// GoalStream names the stream of invite updates for one goal.
func GoalStream(goalID uint) string {
	return fmt.Sprintf("goal:%d", goalID)
}

func (n Notification) streamKey() string {
	switch {
	case n.Stream != "":
		return n.Stream
	case n.Room != "":
		return n.Room
	case len(n.Recipients) > 0:
		return fmt.Sprintf("member:%d", n.Recipients[0])
	default:
		return n.Event
	}
}

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// Report is the per-recipient result of a delivery attempt.
type Report struct {
	MemberID uint
	Emit     Outcome
	Push     Outcome
	Errors   []error
}

// Dispatcher fans notifications out to live connections and push targets.
// Each worker owns one queue and a stream always hashes to the same queue.
// Every failure is logged here and goes no further: callers have already
// committed and must not observe delivery problems.
type Dispatcher struct {
	recipients  RecipientDirectory
	emitter     Emitter
	pusher      Pusher
	pushTimeout time.Duration
	workers     int
	queueSize   int
	queues      []chan Notification
	logger      *slog.Logger
	deliveries  metric.Int64Counter
}

type Option func(*Dispatcher)

func WithPushTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.pushTimeout = d }
}

func WithWorkers(n int) Option {
	return func(dp *Dispatcher) { dp.workers = n }
}

func WithQueueSize(n int) Option {
	return func(dp *Dispatcher) { dp.queueSize = n }
}

func NewDispatcher(recipients RecipientDirectory, emitter Emitter, pusher Pusher, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		recipients:  recipients,
		emitter:     emitter,
		pusher:      pusher,
		pushTimeout: 5 * time.Second,
		workers:     4,
		queueSize:   1024,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.workers = max(d.workers, 1)
	d.queues = make([]chan Notification, d.workers)
	for i := range d.queues {
		d.queues[i] = make(chan Notification, max(d.queueSize/d.workers, 1))
	}

	counter, err := otel.Meter("rep-messaging/notify").Int64Counter(
		"notify.deliveries",
		metric.WithDescription("Notification deliveries by channel and outcome"),
	)
	if err != nil {
		logger.Warn("delivery metrics unavailable", "error", err)
	}
	d.deliveries = counter
	return d
}

// Notify queues n for asynchronous delivery and never blocks. When the queue
// is full the notification is dropped and logged.
func (d *Dispatcher) Notify(n Notification) {
	select {
	case d.shard(n.streamKey()) <- n:
	default:
		d.logger.Warn("notification dropped",
			"code", apperr.CodeDelivery,
			"event", n.Event,
			"category", n.Category,
			"recipients", len(n.Recipients),
			"reason", "queue full",
		)
	}
}

// Run delivers queued notifications until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, queue := range d.queues {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case n := <-queue:
					d.Deliver(ctx, n)
				}
			}
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) shard(key string) chan Notification {
	h := fnv.New32a()
	h.Write([]byte(key))
	return d.queues[h.Sum32()%uint32(len(d.queues))]
}

// Deliver performs the fan-out synchronously and returns one report per
// distinct recipient. Every recipient is emitted to before any push starts.
func (d *Dispatcher) Deliver(ctx context.Context, n Notification) []Report {
	if n.Room != "" && n.RoomEvent != "" {
		if _, err := d.emitter.EmitToRoom(n.Room, n.RoomEvent, n.RoomPayload); err != nil {
			d.logger.Warn("room emit failed", "code", apperr.CodeDelivery, "room", n.Room, "event", n.RoomEvent, "error", err)
		}
	}

	recipients := lo.Uniq(n.Recipients)
	reports := make([]Report, len(recipients))
	targets := make([]string, len(recipients))
	for i, memberID := range recipients {
		reports[i], targets[i] = d.deliverRealtime(ctx, memberID, n)
	}
	for i := range reports {
		if targets[i] != "" {
			reports[i].Push = d.push(ctx, targets[i], n, &reports[i])
			d.record(ctx, "push", reports[i].Push)
		}
	}

	for _, report := range reports {
		for _, err := range report.Errors {
			d.logger.Warn("notification delivery failed",
				"code", apperr.CodeDelivery,
				"member_id", report.MemberID,
				"event", n.Event,
				"category", n.Category,
				"error", err,
			)
		}
	}
	return reports
}

// deliverRealtime gates and emits to one member. It returns the device
// target still owed a push, or "" when none is.
func (d *Dispatcher) deliverRealtime(ctx context.Context, memberID uint, n Notification) (Report, string) {
	report := Report{MemberID: memberID, Emit: OutcomeSkipped, Push: OutcomeSkipped}

	var recipient Recipient
	if n.Category != CategoryUpdate {
		var err error
		recipient, err = d.recipients.Lookup(ctx, memberID)
		if err != nil {
			report.Errors = append(report.Errors, apperr.Delivery("recipient lookup failed", err))
			d.record(ctx, "gate", OutcomeFailed)
			return report, ""
		}
		if !Allows(recipient.Preferences, n.Category) {
			d.logger.Debug("notification suppressed by preferences", "member_id", memberID, "category", n.Category)
			d.record(ctx, "gate", OutcomeSkipped)
			return report, ""
		}
	}

	if n.Event != "" {
		report.Emit = d.emit(memberID, n, &report)
		d.record(ctx, "emit", report.Emit)
	}

	if n.Category == CategoryUpdate || d.pusher == nil {
		return report, ""
	}
	return report, recipient.DeviceTarget
}

func (d *Dispatcher) emit(memberID uint, n Notification, report *Report) Outcome {
	reached, err := d.emitter.EmitToMember(memberID, n.Event, n.Payload)
	if err != nil {
		report.Errors = append(report.Errors, apperr.Delivery("emit failed", err))
		return OutcomeFailed
	}
	if reached == 0 {
		return OutcomeSkipped
	}
	return OutcomeDelivered
}

func (d *Dispatcher) push(ctx context.Context, target string, n Notification, report *Report) Outcome {
	pushCtx, cancel := context.WithTimeout(ctx, d.pushTimeout)
	defer cancel()

	err := d.pusher.Push(pushCtx, PushMessage{
		Target: target,
		Title:  n.Title,
		Body:   n.Body,
		Data:   n.Data,
	})
	if err != nil {
		report.Errors = append(report.Errors, apperr.Delivery("push failed", err))
		return OutcomeFailed
	}
	return OutcomeDelivered
}

func (d *Dispatcher) record(ctx context.Context, channel string, outcome Outcome) {
	if d.deliveries == nil {
		return
	}
	d.deliveries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", channel),
		attribute.String("outcome", string(outcome)),
	))
}
