package fcm

import (
	"context"
	"fmt"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/sippke/notification-service/config"

	"github.com/sirupsen/logrus"
)

const (
	androidChannelID = "sippke_reports"
	clickAction      = "FLUTTER_NOTIFICATION_CLICK"
)

// Outcome is the immediate accept/reject response of the push provider for
// a single send attempt. Failures are data, never errors.
type Outcome struct {
	Success   bool
	MessageID string
	Error     string
}

type Client struct {
	messaging   *messaging.Client
	sendTimeout time.Duration
}

var (
	initMu      sync.Mutex
	initialized bool
	shared      *Client
)

// InitClient configures the Firebase messaging client exactly once per
// process. Subsequent calls return the already-initialized client.
func InitClient(ctx context.Context, cfg *config.FirebaseConfig) (*Client, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return shared, nil
	}

	var opts []option.ClientOption
	if cfg.ServiceAccountKey != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountKey)))
	} else {
		logrus.Warn("FIREBASE_SERVICE_ACCOUNT_KEY not set, falling back to credentials file")
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}

	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}

	shared = &Client{
		messaging:   msgClient,
		sendTimeout: sendTimeout,
	}
	initialized = true

	logrus.Info("Firebase initialized")
	return shared, nil
}

// Send pushes one message to one device token. All provider failures come
// back in the Outcome so a caller can fold them into per-recipient results.
func (c *Client) Send(ctx context.Context, token, title, body string, data map[string]string) Outcome {
	msgData := make(map[string]string, len(data)+1)
	for k, v := range data {
		msgData[k] = v
	}
	msgData["click_action"] = clickAction

	badge := 1
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: msgData,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:             androidChannelID,
				DefaultSound:          true,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Badge: &badge,
					Sound: "default",
				},
			},
		},
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	messageID, err := c.messaging.Send(sendCtx, msg)
	if err != nil {
		logrus.Errorf("FCM send failed for token %s: %v", token, err)
		return Outcome{Success: false, Error: err.Error()}
	}

	return Outcome{Success: true, MessageID: messageID}
}
