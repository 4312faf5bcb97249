package testutil

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisLog records the commands a FakeRedis client was asked to run.
type RedisLog struct {
	mu       sync.Mutex
	commands []string
}

// Commands returns the recorded commands as "name key", in call order.
func (l *RedisLog) Commands() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.commands...)
}

// Count returns how many times the named command ran.
func (l *RedisLog) Count(name string) int {
	n := 0
	for _, command := range l.Commands() {
		if strings.HasPrefix(command, name+" ") {
			n++
		}
	}
	return n
}

func (l *RedisLog) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, redis.ErrClosed
	}
}

// ProcessHook never reaches a server: GET is always a miss and every other
// command succeeds with an empty reply.
func (l *RedisLog) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		l.mu.Lock()
		key := ""
		if args := cmd.Args(); len(args) > 1 {
			if s, ok := args[1].(string); ok {
				key = s
			}
		}
		l.commands = append(l.commands, cmd.Name()+" "+key)
		l.mu.Unlock()

		if cmd.Name() == "get" {
			cmd.SetErr(redis.Nil)
			return redis.Nil
		}
		return nil
	}
}

func (l *RedisLog) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if err := l.ProcessHook(nil)(ctx, cmd); err != nil && err != redis.Nil {
				return err
			}
		}
		return nil
	}
}

// FakeRedis returns a client that records commands instead of sending them.
func FakeRedis() (*redis.Client, *RedisLog) {
	log := &RedisLog{}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(log)
	return client, log
}
