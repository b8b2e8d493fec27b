package realtime

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconnectDelay = 2 * time.Second

// PostgresFeed uses LISTEN/NOTIFY on the application database.
type PostgresFeed struct {
	dsn  string
	pool *pgxpool.Pool
}

func NewPostgresFeed(ctx context.Context, dsn string) (*PostgresFeed, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres feed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres feed: %w", err)
	}
	log.Println("[realtime] listening through postgres")
	return &PostgresFeed{dsn: dsn, pool: pool}, nil
}

func (f *PostgresFeed) Publish(ctx context.Context, channel, payload string) error {
	_, err := f.pool.Exec(ctx, "SELECT pg_notify($1, $2)", channel, payload)
	return err
}

// Subscribe holds one dedicated connection for LISTEN and reconnects when it
// drops.
func (f *PostgresFeed) Subscribe(ctx context.Context, channels ...string) (<-chan Notification, error) {
	conn, err := f.listen(ctx, channels)
	if err != nil {
		return nil, err
	}
	out := make(chan Notification, subscriberBuffer)
	go func() {
		defer close(out)
		for {
			err := f.forward(ctx, conn, out)
			conn.Close(context.Background())
			if ctx.Err() != nil {
				return
			}
			log.Printf("[realtime] postgres listener lost: %v", err)
			for {
				select {
				case <-ctx.Done():
					return
				case <-time.After(reconnectDelay):
				}
				conn, err = f.listen(ctx, channels)
				if err == nil {
					log.Println("[realtime] postgres listener reconnected")
					break
				}
				log.Printf("[realtime] postgres reconnect failed: %v", err)
			}
		}
	}()
	return out, nil
}

func (f *PostgresFeed) listen(ctx context.Context, channels []string) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, f.dsn)
	if err != nil {
		return nil, fmt.Errorf("connect listener: %w", err)
	}
	for _, ch := range channels {
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			conn.Close(context.Background())
			return nil, fmt.Errorf("listen %s: %w", ch, err)
		}
	}
	return conn, nil
}

func (f *PostgresFeed) forward(ctx context.Context, conn *pgx.Conn, out chan<- Notification) error {
	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		select {
		case out <- Notification{Channel: n.Channel, Payload: n.Payload}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *PostgresFeed) Close() error {
	if f.pool == nil {
		return errors.New("postgres feed not open")
	}
	f.pool.Close()
	return nil
}
