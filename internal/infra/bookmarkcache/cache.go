package bookmarkcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cabinet-keeper/internal/domain/bookmark"
	"cabinet-keeper/internal/domain/cabinet"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const changedSetKey = "bookmark:changed"

// CachedCabinet is the cabinet snapshot frozen into the cache entry at write
// time. Reads filter on it; the reconciliation job re-validates against the
// live row instead.
type CachedCabinet struct {
	Status  cabinet.Status `json:"status"`
	Payable bool           `json:"payable"`
}

// Entry is the typed cache projection of a bookmark.
type Entry struct {
	UserID    uuid.UUID       `json:"user_id"`
	CabinetID int64           `json:"cabinet_id"`
	Status    bookmark.Status `json:"bookmark_status"`
	Cabinet   CachedCabinet   `json:"cabinet"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ChangedKey identifies a (user, cabinet) pair with a pending cache-to-store delta.
type ChangedKey struct {
	UserID    uuid.UUID
	CabinetID int64
}

func (k ChangedKey) member() string {
	return fmt.Sprintf("%s:%d", k.UserID, k.CabinetID)
}

func parseChangedMember(member string) (ChangedKey, error) {
	rawUser, rawCabinet, found := strings.Cut(member, ":")
	if !found {
		return ChangedKey{}, fmt.Errorf("malformed changed-set member %q", member)
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return ChangedKey{}, fmt.Errorf("malformed changed-set member %q: %w", member, err)
	}
	cabinetID, err := strconv.ParseInt(rawCabinet, 10, 64)
	if err != nil {
		return ChangedKey{}, fmt.Errorf("malformed changed-set member %q: %w", member, err)
	}
	return ChangedKey{UserID: userID, CabinetID: cabinetID}, nil
}

func entryKey(userID uuid.UUID, cabinetID int64) string {
	return fmt.Sprintf("bookmark:%s:%d", userID, cabinetID)
}

// Cache is the fast path for bookmarks: authoritative for reads, flushed into
// the durable store by the reconciliation job via the changed set.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Put writes the entry and records the pair in the durable changed set so the
// next reconciliation run picks up the delta.
func (c *Cache) Put(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entryKey(entry.UserID, entry.CabinetID), payload, c.ttl).Err(); err != nil {
		return err
	}
	member := ChangedKey{UserID: entry.UserID, CabinetID: entry.CabinetID}.member()
	return c.client.SAdd(ctx, changedSetKey, member).Err()
}

func (c *Cache) Get(ctx context.Context, userID uuid.UUID, cabinetID int64) (*Entry, bool, error) {
	data, err := c.client.Get(ctx, entryKey(userID, cabinetID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false, err
	}
	return &entry, true, nil
}

// ListByUser enumerates the user's cache entries by key prefix.
func (c *Cache) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	pattern := fmt.Sprintf("bookmark:%s:*", userID)

	var entries []*Entry
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			data, err := c.client.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				continue // expired between scan and read
			}
			if err != nil {
				return nil, err
			}
			var entry Entry
			if err := json.Unmarshal(data, &entry); err != nil {
				return nil, err
			}
			entries = append(entries, &entry)
		}
		cursor = next
		if cursor == 0 {
			return entries, nil
		}
	}
}

// Changed returns the pending cache-to-store deltas. Malformed members are
// returned separately so the caller can drop them.
func (c *Cache) Changed(ctx context.Context) ([]ChangedKey, []string, error) {
	members, err := c.client.SMembers(ctx, changedSetKey).Result()
	if err != nil {
		return nil, nil, err
	}

	keys := make([]ChangedKey, 0, len(members))
	var malformed []string
	for _, member := range members {
		key, err := parseChangedMember(member)
		if err != nil {
			malformed = append(malformed, member)
			continue
		}
		keys = append(keys, key)
	}
	return keys, malformed, nil
}

// Ack removes a reconciled (or dropped) pair from the changed set.
func (c *Cache) Ack(ctx context.Context, key ChangedKey) error {
	return c.client.SRem(ctx, changedSetKey, key.member()).Err()
}

// AckRaw removes a raw member string, used for malformed entries.
func (c *Cache) AckRaw(ctx context.Context, member string) error {
	return c.client.SRem(ctx, changedSetKey, member).Err()
}

// PendingCount reports the changed-set cardinality, for logging and tests.
func (c *Cache) PendingCount(ctx context.Context) (int64, error) {
	return c.client.SCard(ctx, changedSetKey).Result()
}
