package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"pakora-chat-backend/internal/push/domain"
	"pakora-chat-backend/internal/push/usecase"
)

// DocumentCreatedEvent is the Pub/Sub payload published once per created
// message/note document.
type DocumentCreatedEvent struct {
	Collection string   `json:"collection"`
	DocID      string   `json:"docId"`
	UserID     string   `json:"userId"`
	UserLabel  string   `json:"userLabel"`
	Text       string   `json:"text"`
	Recipients []string `json:"recipients,omitempty"`
}

// Service subscribes to document-created events and invokes the fan-out
// engine once per event. Distinct events may be handled concurrently; the
// engine is stateless per invocation.
type Service struct {
	pubsubClient *pubsub.Client
	pushUsecase  usecase.PushUsecase
	topicName    string
	subName      string
}

func NewService(projectID, topicName string, pushUsecase usecase.PushUsecase, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		pubsubClient: client,
		pushUsecase:  pushUsecase,
		topicName:    topicName,
		subName:      topicName + "-sub", // Convention: topic-sub
	}, nil
}

func (s *Service) Start(ctx context.Context) {
	log.Printf("[PubSub] Starting push event listener with topic: %s, subscription: %s", s.topicName, s.subName)

	// Ensure subscription exists
	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[PubSub] Error checking subscription existence: %v", err)
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			log.Printf("[PubSub] Error checking topic existence: %v", err)
			return
		}
		if !topicExists {
			log.Printf("[PubSub] Topic %s does not exist, cannot create subscription", s.topicName)
			return
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[PubSub] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[PubSub] Created subscription: %s", s.subName)
	}

	log.Printf("[PubSub] Listening for push events on subscription: %s", s.subName)
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.handleMessage(ctx, msg)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[PubSub] Error receiving messages: %v", err)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *pubsub.Message) {
	event, collection, err := parseEvent(msg.Data)
	if err != nil {
		log.Printf("[PubSub] Dropping malformed event payload: %v", err)
		return
	}

	log.Printf("[PubSub] Received event %s/%s from %s", collection, event.ID, event.SenderID)
	s.pushUsecase.HandleEvent(ctx, collection, event, "pubsub")
}

// parseEvent decodes a document-created payload into the engine's input.
func parseEvent(data []byte) (domain.DeliveryEvent, string, error) {
	var payload DocumentCreatedEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.DeliveryEvent{}, "", err
	}
	if payload.Collection == "" || payload.DocID == "" {
		return domain.DeliveryEvent{}, "", fmt.Errorf("event payload missing collection or docId")
	}

	return domain.DeliveryEvent{
		ID:          payload.DocID,
		SenderID:    payload.UserID,
		SenderLabel: payload.UserLabel,
		Text:        payload.Text,
		Recipients:  payload.Recipients,
	}, payload.Collection, nil
}

// Close releases the Pub/Sub client.
func (s *Service) Close() error {
	return s.pubsubClient.Close()
}
