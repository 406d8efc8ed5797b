package collections

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/crestviewems/supplyline-backend/pkg/logger"
	"github.com/crestviewems/supplyline-backend/pkg/redis"
)

// RedisFeed implements Feed and Notifier on top of redis pub/sub.
type RedisFeed struct {
	client *redis.Client
	logg   *logger.Logger
}

func NewRedisFeed(client *redis.Client, logg *logger.Logger) *RedisFeed {
	return &RedisFeed{client: client, logg: logg}
}

func (f *RedisFeed) NotifyChanged(ctx context.Context, collection string) error {
	return f.client.PublishChange(ctx, collection)
}

func (f *RedisFeed) Subscribe(ctx context.Context, collection string) (Subscription, error) {
	pubsub, err := f.client.SubscribeChanges(ctx, collection)
	if err != nil {
		return nil, err
	}

	sub := &redisSubscription{
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
		close:   pubsub.Close,
	}

	go func() {
		defer close(sub.signals)
		sub.pump(pubsub.Channel())
	}()

	if f.logg != nil {
		f.logg.Info(f.logg.WithCollection(ctx, collection), "change feed subscribed")
	}
	return sub, nil
}

type redisSubscription struct {
	signals chan struct{}
	done    chan struct{}
	close   func() error

	mu        sync.Mutex
	err       error
	closeOnce sync.Once
}

func (s *redisSubscription) pump(ch <-chan *goredis.Message) {
	for {
		select {
		case <-s.done:
			return
		case _, ok := <-ch:
			if !ok {
				// The pubsub channel also closes on a deliberate Close,
				// and that race must not leave a terminal error behind.
				select {
				case <-s.done:
				default:
					s.setErr(context.Canceled)
				}
				return
			}
			// Coalesce bursts: one pending signal is enough, the
			// consumer re-reads the whole snapshot anyway.
			select {
			case s.signals <- struct{}{}:
			default:
			}
		}
	}
}

func (s *redisSubscription) Signals() <-chan struct{} {
	return s.signals
}

func (s *redisSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *redisSubscription) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *redisSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.close()
	})
	return err
}
