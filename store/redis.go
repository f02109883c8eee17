package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/models"
)

const guestSetKey = "guests"

func guestKey(token string) string { return fmt.Sprintf("guest:%s", token) }
func checkinsKey(token string) string { return fmt.Sprintf("checkins:%s", token) }

// RedisStore keeps each guest as JSON and its check-ins in a hash keyed by day.
type RedisStore struct {
	Redis *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Redis: client}
}

// NewRedisClient parses url (redis:// or host:port) and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{Addr: url}
	}
	opts.PoolSize = 50
	opts.MinIdleConns = 5

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	log.Info("Successfully connected to Redis")
	return client, nil
}

// SaveGuests watches every guest key so a token written concurrently by another
// registration aborts the transaction instead of being overwritten.
func (s *RedisStore) SaveGuests(ctx context.Context, guests []models.Guest) error {
	keys := lo.Map(guests, func(g models.Guest, _ int) string { return guestKey(g.Token) })

	err := s.Redis.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("check token: %w", err)
		}
		if exists > 0 {
			return ErrDuplicateToken
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, g := range guests {
				stored := g
				stored.Zone = ""
				stored.CheckIns = nil
				data, err := json.Marshal(stored)
				if err != nil {
					return err
				}
				pipe.Set(ctx, guestKey(g.Token), data, 0)
				pipe.SAdd(ctx, guestSetKey, g.Token)
			}
			return nil
		})
		return err
	}, keys...)

	switch {
	case errors.Is(err, ErrDuplicateToken), errors.Is(err, redis.TxFailedErr):
		return ErrDuplicateToken
	case err != nil:
		return fmt.Errorf("save guests: %w", err)
	}
	return nil
}

func (s *RedisStore) GuestByToken(ctx context.Context, token string) (models.Guest, error) {
	data, err := s.Redis.Get(ctx, guestKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Guest{}, ErrNotFound
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("get guest: %w", err)
	}

	var g models.Guest
	if err := json.Unmarshal(data, &g); err != nil {
		return models.Guest{}, fmt.Errorf("decode guest %s: %w", token, err)
	}
	if !g.Type.Valid() {
		return models.Guest{}, fmt.Errorf("guest %s: unknown type %q", token, g.Type)
	}

	checkIns, err := s.checkIns(ctx, token)
	if err != nil {
		return models.Guest{}, err
	}
	g.CheckIns = checkIns
	return g, nil
}

// AppendCheckIn writes with HSETNX, so only the first scanner for a day wins.
func (s *RedisStore) AppendCheckIn(ctx context.Context, token string, event models.CheckInEvent) (models.Guest, error) {
	if _, err := s.GuestByToken(ctx, token); err != nil {
		return models.Guest{}, err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return models.Guest{}, err
	}

	added, err := s.Redis.HSetNX(ctx, checkinsKey(token), event.Day, data).Result()
	if err != nil {
		return models.Guest{}, fmt.Errorf("record checkin: %w", err)
	}

	g, err := s.GuestByToken(ctx, token)
	if err != nil {
		return models.Guest{}, err
	}
	if !added {
		return g, ErrAlreadyCheckedIn
	}
	return g, nil
}

func (s *RedisStore) ListGuests(ctx context.Context) ([]models.Guest, error) {
	tokens, err := s.Redis.SMembers(ctx, guestSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	sort.Strings(tokens)

	guests := make([]models.Guest, 0, len(tokens))
	for _, token := range tokens {
		g, err := s.GuestByToken(ctx, token)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}

	sort.SliceStable(guests, func(i, j int) bool {
		return guests[i].RegistrationDate.Before(guests[j].RegistrationDate)
	})
	return guests, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.Redis.Ping(ctx).Err()
}

func (s *RedisStore) checkIns(ctx context.Context, token string) ([]models.CheckInEvent, error) {
	raw, err := s.Redis.HGetAll(ctx, checkinsKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("get checkins: %w", err)
	}

	events := make([]models.CheckInEvent, 0, len(raw))
	for day, v := range raw {
		var ev models.CheckInEvent
		if err := json.Unmarshal([]byte(v), &ev); err != nil {
			return nil, fmt.Errorf("decode checkin %s/%s: %w", token, day, err)
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}
