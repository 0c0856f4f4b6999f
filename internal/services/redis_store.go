package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"nepbet-backend/internal/models"
)

const (
	keyUsers        = "nepbet:users"
	keyTransactions = "nepbet:transactions"
	keyTickets      = "nepbet:tickets"
	keySession      = "nepbet:session"
)

// RedisStore implements the Store port on Redis, one JSON document per
// collection key.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisStore{client: client, ctx: ctx}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Users() ([]*models.User, error) {
	var users []*models.User
	if err := s.get(keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *RedisStore) SaveUsers(users []*models.User) error {
	return s.set(keyUsers, users)
}

func (s *RedisStore) Transactions() ([]*models.Transaction, error) {
	var txs []*models.Transaction
	if err := s.get(keyTransactions, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *RedisStore) SaveTransactions(txs []*models.Transaction) error {
	return s.set(keyTransactions, txs)
}

func (s *RedisStore) Tickets() ([]*models.SupportTicket, error) {
	var tickets []*models.SupportTicket
	if err := s.get(keyTickets, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *RedisStore) SaveTickets(tickets []*models.SupportTicket) error {
	return s.set(keyTickets, tickets)
}

func (s *RedisStore) Session() (*models.User, error) {
	var user *models.User
	if err := s.get(keySession, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RedisStore) SaveSession(user *models.User) error {
	return s.set(keySession, user)
}

func (s *RedisStore) ClearSession() error {
	return s.client.Del(s.ctx, keySession).Err()
}

func (s *RedisStore) get(key string, out interface{}) error {
	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %v", key, err)
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("discarding corrupt store entry")
	}
	return nil
}

func (s *RedisStore) set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", key, err)
	}
	return s.client.Set(s.ctx, key, data, 0).Err()
}
