package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa-notification-service/internal/models"
)

type fakeStore struct {
	mu      sync.Mutex
	subs    []models.PushSubscription
	getErr  error
	deleted []uuid.UUID
}

func (s *fakeStore) GetSubscriptionsByOwner(ctx context.Context, ownerID string) ([]models.PushSubscription, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out []models.PushSubscription
	for _, sub := range s.subs {
		if sub.OwnerID == ownerID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *fakeStore) DeleteSubscriptionByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

type pushCall struct {
	sub     models.PushSubscription
	message []byte
}

type fakePushTransport struct {
	mu     sync.Mutex
	calls  []pushCall
	errFor map[string]error // keyed by endpoint
}

func (t *fakePushTransport) Send(ctx context.Context, sub models.PushSubscription, message []byte) error {
	t.mu.Lock()
	t.calls = append(t.calls, pushCall{sub: sub, message: message})
	t.mu.Unlock()
	if err, ok := t.errFor[sub.Endpoint]; ok {
		return err
	}
	return nil
}

func newSub(owner, endpoint string) models.PushSubscription {
	return models.PushSubscription{
		ID:       uuid.New(),
		OwnerID:  owner,
		Endpoint: endpoint,
		P256dh:   "p256dh-" + endpoint,
		Auth:     "auth-" + endpoint,
	}
}

func pushNotifier(store *fakeStore, transport *fakePushTransport, payload models.NotificationPayload) *PushNotifier {
	return &PushNotifier{
		payload:   payload,
		store:     store,
		transport: transport,
		timeout:   time.Second,
		logger:    testLogger(),
	}
}

func TestPushSendNoSubscriptionsIsNoop(t *testing.T) {
	store := &fakeStore{}
	transport := &fakePushTransport{}
	n := pushNotifier(store, transport, models.NotificationPayload{Title: "t", Body: "b", Recipient: "prof-42"})

	require.NoError(t, n.Send(context.Background()))
	assert.Empty(t, transport.calls)
	assert.Empty(t, store.deleted)
}

func TestPushSendFansOutToEverySubscription(t *testing.T) {
	subs := []models.PushSubscription{
		newSub("prof-42", "https://push.example/a"),
		newSub("prof-42", "https://push.example/b"),
		newSub("prof-42", "https://push.example/c"),
		newSub("prof-99", "https://push.example/other"),
	}
	store := &fakeStore{subs: subs}
	transport := &fakePushTransport{}
	n := pushNotifier(store, transport, models.NotificationPayload{
		Title:     "Nueva mesa asignada",
		Body:      "Examen el 10 de julio",
		Recipient: "prof-42",
		Metadata:  map[string]interface{}{"mesaId": "mesa-7", "url": "/mesas/7"},
	})

	require.NoError(t, n.Send(context.Background()))
	require.Len(t, transport.calls, 3)

	seen := map[string]bool{}
	for _, call := range transport.calls {
		seen[call.sub.Endpoint] = true
		assert.Equal(t, "prof-42", call.sub.OwnerID)
		assert.Equal(t, "p256dh-"+call.sub.Endpoint, call.sub.P256dh)
		assert.Equal(t, "auth-"+call.sub.Endpoint, call.sub.Auth)

		var envelope struct {
			Title string                 `json:"title"`
			Body  string                 `json:"body"`
			Icon  string                 `json:"icon"`
			Badge string                 `json:"badge"`
			Data  map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(call.message, &envelope))
		assert.Equal(t, "Nueva mesa asignada", envelope.Title)
		assert.Equal(t, "Examen el 10 de julio", envelope.Body)
		assert.NotEmpty(t, envelope.Icon)
		assert.Equal(t, "mesa-7", envelope.Data["mesaId"])
		assert.Equal(t, "/mesas/7", envelope.Data["url"])
		assert.Contains(t, envelope.Data, "timestamp")
	}
	assert.Len(t, seen, 3, "each subscription delivered exactly once")
	assert.Empty(t, store.deleted)
}

func TestPushSend410DeletesOnlyGoneSubscription(t *testing.T) {
	gone := newSub("prof-42", "https://push.example/gone")
	alive := newSub("prof-42", "https://push.example/alive")
	store := &fakeStore{subs: []models.PushSubscription{gone, alive}}
	transport := &fakePushTransport{errFor: map[string]error{
		gone.Endpoint: &PushError{StatusCode: http.StatusGone, Endpoint: gone.Endpoint},
	}}
	n := pushNotifier(store, transport, models.NotificationPayload{Title: "t", Body: "b", Recipient: "prof-42"})

	require.NoError(t, n.Send(context.Background()))
	assert.Len(t, transport.calls, 2)
	require.Len(t, store.deleted, 1)
	assert.Equal(t, gone.ID, store.deleted[0])
}

func TestPushSendNon410FailureIsSwallowedWithoutDeletion(t *testing.T) {
	sub := newSub("prof-42", "https://push.example/flaky")
	for name, err := range map[string]error{
		"server error":  &PushError{StatusCode: http.StatusInternalServerError, Endpoint: sub.Endpoint},
		"forbidden":     &PushError{StatusCode: http.StatusForbidden, Endpoint: sub.Endpoint},
		"network error": context.DeadlineExceeded,
	} {
		t.Run(name, func(t *testing.T) {
			store := &fakeStore{subs: []models.PushSubscription{sub}}
			transport := &fakePushTransport{errFor: map[string]error{sub.Endpoint: err}}
			n := pushNotifier(store, transport, models.NotificationPayload{Title: "t", Body: "b", Recipient: "prof-42"})

			require.NoError(t, n.Send(context.Background()))
			assert.Len(t, transport.calls, 1)
			assert.Empty(t, store.deleted)
		})
	}
}

func TestPushSendPartialFailureDoesNotAbortOthers(t *testing.T) {
	subs := []models.PushSubscription{
		newSub("prof-42", "https://push.example/1"),
		newSub("prof-42", "https://push.example/2"),
		newSub("prof-42", "https://push.example/3"),
	}
	store := &fakeStore{subs: subs}
	transport := &fakePushTransport{errFor: map[string]error{
		subs[1].Endpoint: &PushError{StatusCode: http.StatusBadGateway, Endpoint: subs[1].Endpoint},
	}}
	n := pushNotifier(store, transport, models.NotificationPayload{Title: "t", Body: "b", Recipient: "prof-42"})

	require.NoError(t, n.Send(context.Background()))
	assert.Len(t, transport.calls, 3, "all deliveries attempted despite one rejection")
	assert.Empty(t, store.deleted)
}

func TestPushSendStoreLookupFailureIsSwallowed(t *testing.T) {
	store := &fakeStore{getErr: context.DeadlineExceeded}
	transport := &fakePushTransport{}
	n := pushNotifier(store, transport, models.NotificationPayload{Title: "t", Body: "b", Recipient: "prof-42"})

	require.NoError(t, n.Send(context.Background()))
	assert.Empty(t, transport.calls)
}
