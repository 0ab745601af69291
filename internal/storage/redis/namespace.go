package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"xr_archive/internal/lib/logger/sl"
	"xr_archive/internal/mesh"

	"github.com/redis/go-redis/v9"
)

const namespacePrefix = "mesh:"

var _ mesh.Namespace = (*Namespace)(nil)

// envelope is what travels over the change channel. Data is the wire
// payload; an empty Data is a tombstone.
type envelope struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

// Namespace реализует общее пространство ключей поверх Redis:
// хэш с полем на каждую запись и канал pub/sub с изменениями.
// Удаление записывается пустым значением, а не HDEL, чтобы пиры видели ключ.
type Namespace struct {
	log     *slog.Logger
	Client  *Client
	name    string
	hashKey string
	channel string

	mu   sync.Mutex
	subs map[*redis.PubSub]struct{}
}

func NewNamespace(log *slog.Logger, client *Client, name string) *Namespace {
	return &Namespace{
		log:     log,
		Client:  client,
		name:    name,
		hashKey: namespacePrefix + name,
		channel: namespacePrefix + name + ":changes",
		subs:    make(map[*redis.PubSub]struct{}),
	}
}

// Connect проверяет соединение и создаёт служебное поле пространства
func (n *Namespace) Connect(ctx context.Context) error {
	const op = "storage.redis.Namespace.Connect"

	meta, err := json.Marshal(map[string]string{
		"namespace":  n.name,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := n.Client.HSetNX(ctx, n.hashKey, mesh.MetaKey, string(meta)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// On подписывается на канал изменений, затем отдаёт текущее содержимое
// хэша и далее все изменения по мере поступления.
func (n *Namespace) On(ctx context.Context) (<-chan mesh.Change, error) {
	const op = "storage.redis.Namespace.On"

	log := n.log.With(
		slog.String("op", op),
		slog.String("namespace", n.name),
	)

	pubsub := n.Client.Subscribe(ctx, n.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snapshot, err := n.Client.HGetAll(ctx, n.hashKey).Result()
	if err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	n.mu.Lock()
	n.subs[pubsub] = struct{}{}
	n.mu.Unlock()

	out := make(chan mesh.Change, 64)

	go func() {
		defer close(out)
		defer n.release(pubsub)

		keys := make([]string, 0, len(snapshot))
		for k := range snapshot {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			select {
			case <-ctx.Done():
				return
			case out <- mesh.Change{Key: k, Payload: []byte(snapshot[k])}:
			}
		}

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var env envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					log.Warn("skipping malformed change envelope", sl.Err(err))
					continue
				}

				select {
				case <-ctx.Done():
					return
				case out <- mesh.Change{Key: env.Key, Payload: []byte(env.Data)}:
				}
			}
		}
	}()

	return out, nil
}

func (n *Namespace) release(pubsub *redis.PubSub) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.subs[pubsub]; ok {
		delete(n.subs, pubsub)
		_ = pubsub.Close()
	}
}

// Once читает пространство целиком один раз, служебное поле включено
func (n *Namespace) Once(ctx context.Context) (map[string][]byte, error) {
	const op = "storage.redis.Namespace.Once"

	snapshot, err := n.Client.HGetAll(ctx, n.hashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[string][]byte, len(snapshot))
	for k, v := range snapshot {
		out[k] = []byte(v)
	}

	return out, nil
}

// Put записывает значение и публикует изменение в одной транзакции,
// чтобы порядок сообщений совпадал с порядком записей в хэше.
func (n *Namespace) Put(ctx context.Context, key string, payload []byte) error {
	const op = "storage.redis.Namespace.Put"

	msg, err := json.Marshal(envelope{Key: key, Data: string(payload)})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = n.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, n.hashKey, key, string(payload))
		pipe.Publish(ctx, n.channel, string(msg))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close отписывает все активные подписки. Клиент Redis остаётся открытым.
func (n *Namespace) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for pubsub := range n.subs {
		_ = pubsub.Close()
		delete(n.subs, pubsub)
	}

	return nil
}
