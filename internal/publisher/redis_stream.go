package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// StandoutStream receives one entry per qualifying player
	StandoutStream = "players.standout.basketball_nba"

	// streamMaxLen caps the stream; trimming is approximate
	streamMaxLen = 10000
)

// RedisPublisher publishes events to Redis streams
type RedisPublisher struct {
	client *redis.Client
	stream string
	now    func() time.Time
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: StandoutStream,
		now:    time.Now,
	}
}

// NewRedisPublisher connects to redisURL and verifies the connection
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisStreamPublisher(client), nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// HealthCheck pings Redis to verify connection
func (rp *RedisPublisher) HealthCheck(ctx context.Context) error {
	return rp.client.Ping(ctx).Err()
}

// PublishStandout appends a qualifying player to the standout stream
func (rp *RedisPublisher) PublishStandout(ctx context.Context, playerID string, record any) error {
	values, err := streamValues(playerID, record, rp.now())
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: rp.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: values,
	}).Err()
}

func streamValues(playerID string, record any, at time.Time) (map[string]interface{}, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding standout %s: %w", playerID, err)
	}

	return map[string]interface{}{
		"player_id": playerID,
		"data":      string(data),
		"timestamp": at.Unix(),
	}, nil
}
