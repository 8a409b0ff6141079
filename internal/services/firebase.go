package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var (
	// FirebaseApp is the Firebase app instance
	FirebaseApp *firebase.App
	// MessagingClient is the Firebase Cloud Messaging client
	MessagingClient *messaging.Client
)

// InitFirebase initializes Firebase Admin SDK
func InitFirebase() error {
	ctx := context.Background()

	// Check if Firebase is configured
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountPath == "" {
		log.Warn("FIREBASE_SERVICE_ACCOUNT_PATH not set. Push notifications will be disabled.")
		return nil
	}

	// Initialize Firebase app
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	// Initialize messaging client
	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting messaging client: %v", err)
	}

	FirebaseApp = app
	MessagingClient = client

	log.Info("Firebase Cloud Messaging initialized")
	return nil
}

// PushPayload represents the notification data sent over FCM.
type PushPayload struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Image string                 `json:"image,omitempty"`
}

// stringifyData converts the payload data map to the string map FCM requires.
func stringifyData(data map[string]interface{}) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		switch v := value.(type) {
		case string:
			out[key] = v
		case int, int64, uint, float64, bool:
			out[key] = fmt.Sprintf("%v", v)
		default:
			jsonData, err := json.Marshal(v)
			if err != nil {
				log.WithError(err).WithField("key", key).Error("Failed to marshal push data")
				continue
			}
			out[key] = string(jsonData)
		}
	}
	return out
}

// SendPushToToken sends a push notification to a specific FCM token. A nil
// messaging client (Firebase not configured) is not an error.
func SendPushToToken(ctx context.Context, token string, payload PushPayload) error {
	if MessagingClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data:  stringifyData(payload.Data),
		Token: token,
	}

	if payload.Image != "" {
		message.Notification.ImageURL = payload.Image
	}

	message.Android = &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Sound:        "default",
			ChannelID:    "estatelink_default",
			DefaultSound: true,
		},
	}

	response, err := MessagingClient.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %v", err)
	}

	log.WithField("response", response).Debug("Push notification sent")
	return nil
}

// SubscribeToTopic subscribes FCM tokens to a topic (e.g. new-listings).
func SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	if MessagingClient == nil || len(tokens) == 0 {
		return nil
	}

	response, err := MessagingClient.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %v", topic, err)
	}

	if response.FailureCount > 0 {
		log.WithFields(log.Fields{
			"topic":    topic,
			"failures": response.FailureCount,
		}).Warn("Some tokens failed to subscribe")
	}
	return nil
}

// SendPushToTopic sends a push notification to everyone on a topic.
func SendPushToTopic(ctx context.Context, topic string, payload PushPayload) error {
	if MessagingClient == nil {
		return nil
	}

	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data:  stringifyData(payload.Data),
		Topic: topic,
	}

	if _, err := MessagingClient.Send(ctx, message); err != nil {
		return fmt.Errorf("error sending topic message: %v", err)
	}
	return nil
}
