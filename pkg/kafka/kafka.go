package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coursework_service/pkg/utils"

	"github.com/segmentio/kafka-go"
)

const (
	EventCourseAdded          = "course_added"
	EventCourseRemoved        = "course_removed"
	EventAssignmentsRefreshed = "assignments_refreshed"
	EventAssignmentCompleted  = "assignment_completed"
	EventAssignmentReopened   = "assignment_reopened"
	EventAssignmentDueSoon    = "assignment_due_soon"
)

// AssignmentEvent is the payload published for every change to a user's coursework.
type AssignmentEvent struct {
	EventType     string    `json:"event_type"`
	Username      string    `json:"username"`
	CourseCode    string    `json:"course_code,omitempty"`
	AssignmentKey string    `json:"assignment_key,omitempty"`
	DueDate       string    `json:"due_date,omitempty"`
	Added         int       `json:"added,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type EventSender struct {
	writer     messageWriter
	maxRetries int
	baseDelay  time.Duration
}

func NewEventSender(brokers []string, topic string) *EventSender {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return newEventSender(writer)
}

func newEventSender(writer messageWriter) *EventSender {
	return &EventSender{
		writer:     writer,
		maxRetries: 3,
		baseDelay:  100 * time.Millisecond,
	}
}

func (s *EventSender) Close() error {
	return s.writer.Close()
}

// SendAssignmentEvent publishes event keyed by username so a user's events stay ordered
// within one partition. Temporary broker errors are retried with backoff.
func (s *EventSender) SendAssignmentEvent(ctx context.Context, event AssignmentEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment event: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(event.Username),
		Value: data,
		Time:  event.OccurredAt,
	}

	_, err = utils.RetryWithBackoff(ctx, s.maxRetries, s.baseDelay, func() (struct{}, error) {
		return struct{}{}, s.writer.WriteMessages(ctx, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send assignment event: %w", err)
	}

	return nil
}
