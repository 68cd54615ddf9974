package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jimlawless/whereami"

	"github.com/bidhaus/auction-backend/internal/cfg"
	"github.com/bidhaus/auction-backend/internal/repository/redis/converter"
	"github.com/bidhaus/auction-backend/internal/usecase"
	"github.com/bidhaus/auction-backend/pkg/clients"
	"github.com/bidhaus/auction-backend/pkg/e"
)

// SessionStore хранит сессии в Redis с TTL. В отличие от кэша карточек,
// ошибки здесь не замалчиваются: без сессии пользователь не авторизован.
type SessionStore struct {
	client *clients.RedisClient
	conv   converter.SessionConverter
	cfg    *cfg.SessionCfg
}

func NewSessionStore(client *clients.RedisClient, conv converter.SessionConverter, cfg *cfg.SessionCfg) *SessionStore {
	return &SessionStore{
		client: client,
		conv:   conv,
		cfg:    cfg,
	}
}

func (s *SessionStore) Save(ctx context.Context, session *usecase.Session) error {
	data, err := json.Marshal(s.conv.ToRedisModel(session))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, s.sessionKey(session.Token), data, s.cfg.TTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*usecase.Session, error) {
	data, err := s.client.Client.Get(ctx, s.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSessionNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.SessionRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToUseCase(&model), nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	deleted, err := s.client.Client.Del(ctx, s.sessionKey(token)).Result()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if deleted == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrSessionNotFound)
	}

	return nil
}

func (s *SessionStore) sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
