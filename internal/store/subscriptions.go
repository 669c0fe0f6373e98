package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/CodeGuy93/buffalo-float-site/internal/domain"
)

// subscriptionsKey is the KV namespace holding the subscription collection.
const subscriptionsKey = "alerts:subscriptions"

// SubscriptionStore owns the alert-subscription collection. All mutations
// persist to the KV before returning. Malformed persisted state resets to an
// empty collection rather than failing.
type SubscriptionStore struct {
	kv     KV
	clock  clockwork.Clock
	logger *slog.Logger

	mu   sync.Mutex
	subs []domain.AlertSubscription
}

// SubscriptionPatch carries the fields of a partial update. Nil fields are
// left unchanged.
type SubscriptionPatch struct {
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	GaugeID       *string  `json:"gaugeId,omitempty"`
	MinLevel      *float64 `json:"minLevel,omitempty"`
	MaxLevel      *float64 `json:"maxLevel,omitempty"`
	WeatherAlerts *bool    `json:"weatherAlerts,omitempty"`
	Enabled       *bool    `json:"enabled,omitempty"`
}

// NewSubscriptionStore loads the persisted collection from kv.
func NewSubscriptionStore(kv KV, clock clockwork.Clock, logger *slog.Logger) *SubscriptionStore {
	s := &SubscriptionStore{kv: kv, clock: clock, logger: logger}
	s.load()
	return s
}

func (s *SubscriptionStore) load() {
	raw, ok, err := s.kv.Get(subscriptionsKey)
	if err != nil {
		s.logger.Warn("failed to load alert subscriptions", "error", err)
		return
	}
	if !ok {
		return
	}
	var subs []domain.AlertSubscription
	if err := json.Unmarshal(raw, &subs); err != nil {
		s.logger.Warn("malformed subscription state, starting empty", "error", err)
		return
	}
	s.subs = subs
}

// Create assigns an ID and creation timestamp, appends the subscription, and
// persists. The stored record is returned.
func (s *SubscriptionStore) Create(sub domain.AlertSubscription) (domain.AlertSubscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = uuid.NewString()
	sub.CreatedAt = s.clock.Now()
	s.subs = append(s.subs, sub)

	if err := s.persist(); err != nil {
		return domain.AlertSubscription{}, fmt.Errorf("persist subscription: %w", err)
	}
	return sub, nil
}

// List returns a snapshot copy of the collection; callers may mutate the
// result freely.
func (s *SubscriptionStore) List() []domain.AlertSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AlertSubscription, len(s.subs))
	copy(out, s.subs)
	return out
}

// Update merges non-nil patch fields into the subscription with the given
// id and persists. Returns false without side effects if id is absent.
func (s *SubscriptionStore) Update(id string, patch SubscriptionPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	sub := &s.subs[i]
	if patch.Email != nil {
		sub.Email = *patch.Email
	}
	if patch.Phone != nil {
		sub.Phone = *patch.Phone
	}
	if patch.GaugeID != nil {
		sub.GaugeID = *patch.GaugeID
	}
	if patch.MinLevel != nil {
		sub.MinLevel = *patch.MinLevel
	}
	if patch.MaxLevel != nil {
		sub.MaxLevel = *patch.MaxLevel
	}
	if patch.WeatherAlerts != nil {
		sub.WeatherAlerts = *patch.WeatherAlerts
	}
	if patch.Enabled != nil {
		sub.Enabled = *patch.Enabled
	}

	if err := s.persist(); err != nil {
		s.logger.Warn("failed to persist subscription update", "id", id, "error", err)
	}
	return true
}

// Delete removes the subscription with the given id and persists. Returns
// false if id is absent.
func (s *SubscriptionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.subs = append(s.subs[:i], s.subs[i+1:]...)

	if err := s.persist(); err != nil {
		s.logger.Warn("failed to persist subscription delete", "id", id, "error", err)
	}
	return true
}

// EnabledCount reports how many subscriptions are currently enabled.
func (s *SubscriptionStore) EnabledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sub := range s.subs {
		if sub.Enabled {
			n++
		}
	}
	return n
}

func (s *SubscriptionStore) indexOf(id string) int {
	for i, sub := range s.subs {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

func (s *SubscriptionStore) persist() error {
	raw, err := json.Marshal(s.subs)
	if err != nil {
		return err
	}
	return s.kv.Set(subscriptionsKey, raw)
}
