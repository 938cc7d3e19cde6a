package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"mesa-notification-service/internal/models"

	"github.com/sirupsen/logrus"
)

const (
	pushIcon  = "/icons/icon-192.png"
	pushBadge = "/icons/badge-72.png"
)

// pushEnvelope is the JSON document delivered to the service worker.
type pushEnvelope struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Icon  string                 `json:"icon"`
	Badge string                 `json:"badge"`
	Data  map[string]interface{} `json:"data"`
}

// PushNotifier delivers one payload to every stored push subscription of
// payload.Recipient (a professor id).
//
// Fan-out semantics: all subscriptions are attempted concurrently and Send
// returns only after every attempt has settled. One subscription's failure
// never aborts the others. A 410 Gone response means the endpoint is
// permanently invalid, so that subscription is deleted; any other failure is
// ambiguous (could be transient) and leaves stored state untouched.
type PushNotifier struct {
	payload   models.NotificationPayload
	store     SubscriptionStore
	transport PushTransport
	timeout   time.Duration
	logger    *logrus.Logger
}

func (n *PushNotifier) Send(ctx context.Context) error {
	subs, err := n.store.GetSubscriptionsByOwner(ctx, n.payload.Recipient)
	if err != nil {
		n.logger.Errorf("push: failed to load subscriptions for %s: %v", n.payload.Recipient, err)
		return nil
	}
	if len(subs) == 0 {
		return nil
	}

	data := map[string]interface{}{
		"timestamp": time.Now().Unix(),
	}
	for k, v := range n.payload.Metadata {
		data[k] = v
	}
	if _, ok := data["url"]; !ok {
		data["url"] = "/"
	}

	message, err := json.Marshal(pushEnvelope{
		Title: n.payload.Title,
		Body:  n.payload.Body,
		Icon:  pushIcon,
		Badge: pushBadge,
		Data:  data,
	})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			n.deliver(ctx, sub, message)
		}(sub)
	}
	wg.Wait()

	return nil
}

// deliver attempts one subscription and handles its outcome.
func (n *PushNotifier) deliver(ctx context.Context, sub models.PushSubscription, message []byte) {
	sendCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err := n.transport.Send(sendCtx, sub, message)
	if err == nil {
		return
	}

	var pushErr *PushError
	if errors.As(err, &pushErr) && pushErr.StatusCode == http.StatusGone {
		n.logger.Infof("push: endpoint gone for %s, removing subscription %s", n.payload.Recipient, sub.ID)
		if derr := n.store.DeleteSubscriptionByID(ctx, sub.ID); derr != nil {
			n.logger.Errorf("push: failed to remove subscription %s: %v", sub.ID, derr)
		}
		return
	}

	n.logger.Errorf("push: delivery to subscription %s failed: %v", sub.ID, err)
}
