package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"innovation_showcase/internal/metrics"
	"innovation_showcase/internal/models"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	approvedKey   = "showcase:projects:approved"
	generationKey = "showcase:projects:approved:gen"
	pingTimeout = 5 * time.Second
)

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			metrics.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			metrics.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// NewClient builds a client from "host:port" or a redis:// URL and pings it.
func NewClient(addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Redis stores the approved listing as one JSON value with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Projects = (*Redis)(nil)

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) GetApproved(ctx context.Context) ([]models.Project, Generation, bool, error) {
	vals, err := r.client.MGet(ctx, approvedKey, generationKey).Result()
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, 0, false, fmt.Errorf("get approved projects: %w", err)
	}
	gen, err := parseGeneration(vals[1])
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, 0, false, err
	}
	raw, ok := vals[0].(string)
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, gen, false, nil
	}
	var projects []models.Project
	if err := json.Unmarshal([]byte(raw), &projects); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, gen, false, fmt.Errorf("decode cached projects: %w", err)
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return projects, gen, true, nil
}

// SetApproved stores the listing only while the generation key still holds
// gen. A concurrent InvalidateApproved either changes the value first or
// aborts the transaction through WATCH; both drop the write.
func (r *Redis) SetApproved(ctx context.Context, gen Generation, projects []models.Project) error {
	b, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encode approved projects: %w", err)
	}
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		var raw interface{}
		v, err := tx.Get(ctx, generationKey).Result()
		switch {
		case err == nil:
			raw = v
		case !errors.Is(err, redis.Nil):
			return err
		}
		current, err := parseGeneration(raw)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, approvedKey, b, r.ttl)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("set approved projects: %w", err)
	}
	return nil
}

func (r *Redis) InvalidateApproved(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, approvedKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate approved projects: %w", err)
	}
	return nil
}

var errStaleGeneration = errors.New("approved listing generation changed")

func parseGeneration(v interface{}) (Generation, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cache generation %q: %w", s, err)
	}
	return Generation(n), nil
}
