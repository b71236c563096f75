// Package broker forwards ledger changes to a RabbitMQ topic exchange so
// other server processes can refresh their live queries.
package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/metrics"
)

// Circuit breaker states.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures    = 5
	openTimeout    = 30 * time.Second
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
	maxReconnects  = 3
	outboxSize     = 256
)

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrOutboxFull  = errors.New("broker outbox is full")
)

// Ensure Client implements live.Notifier
var _ live.Notifier = (*Client)(nil)

// Client publishes and consumes change messages. Notify only queues;
// PublishLoop does the network work.
type Client struct {
	url          string
	exchangeName string
	origin       string
	outbox       chan *ChangeMessage

	// subscribe opens a fresh consumer. Replaced in tests.
	subscribe func(ctx context.Context) (<-chan amqp091.Delivery, error)
	backoff   func(attempt int) time.Duration

	reconnectMu sync.Mutex
	mu          sync.Mutex
	conn        *amqp091.Connection
	channel     *amqp091.Channel

	failureCount int64
	state        int32
	lastFailure  time.Time
}

// NewClient dials url and declares a durable topic exchange.
func NewClient(url, exchangeName string) (*Client, error) {
	c := newClient(url, exchangeName)
	if err := c.connect(); err != nil {
		return nil, err
	}
	return c, nil
}

func newClient(url, exchangeName string) *Client {
	c := &Client{
		url:          url,
		exchangeName: exchangeName,
		origin:       uuid.New().String(),
		outbox:       make(chan *ChangeMessage, outboxSize),
		backoff:      exponentialBackoff,
	}
	c.subscribe = c.openConsumer
	return c
}

// Origin is the id stamped on every message this client publishes.
func (c *Client) Origin() string {
	return c.origin
}

func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		c.exchangeName, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.mu.Unlock()
	return nil
}

func (c *Client) current() (*amqp091.Connection, *amqp091.Channel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn, c.channel
}

// reconnect replaces stale with a new connection. If another caller has
// already replaced it, the new connection is kept.
func (c *Client) reconnect(ctx context.Context, stale *amqp091.Connection) error {
	c.reconnectMu.Lock()
	defer c.reconnectMu.Unlock()

	if conn, _ := c.current(); conn != nil && conn != stale && !conn.IsClosed() {
		return nil
	}

	c.closeConn()
	var err error
	for attempt := 0; attempt < maxReconnects; attempt++ {
		if err = c.connect(); err == nil {
			slog.Info("Reconnected to AMQP broker", "attempt", attempt+1)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}
	return fmt.Errorf("reconnect after %d attempts: %w", maxReconnects, err)
}

// Notify queues change for publishing and returns at once. When the
// outbox is full the change is dropped.
func (c *Client) Notify(ctx context.Context, change live.Change) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c.isCircuitOpen() {
		metrics.BrokerPublishes.WithLabelValues("circuit_open").Inc()
		return ErrCircuitOpen
	}

	select {
	case c.outbox <- NewChangeMessage(c.origin, change):
		return nil
	default:
		metrics.BrokerPublishes.WithLabelValues("dropped").Inc()
		return ErrOutboxFull
	}
}

// PublishLoop sends queued changes until ctx is done.
func (c *Client) PublishLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-c.outbox:
			if err := c.send(ctx, msg); err != nil {
				slog.Warn("Failed to publish change",
					"collection", msg.Collection,
					"op", msg.Op,
					"error", err)
			}
		}
	}
}

func (c *Client) send(ctx context.Context, msg *ChangeMessage) error {
	if c.isCircuitOpen() {
		metrics.BrokerPublishes.WithLabelValues("circuit_open").Inc()
		return ErrCircuitOpen
	}

	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	conn, err := c.publish(ctx, msg.RoutingKey(), body)
	if err != nil && isConnectionError(err) {
		if rerr := c.reconnect(ctx, conn); rerr == nil {
			_, err = c.publish(ctx, msg.RoutingKey(), body)
		}
	}
	if err != nil {
		c.recordFailure()
		metrics.BrokerPublishes.WithLabelValues("error").Inc()
		return fmt.Errorf("publish message: %w", err)
	}

	c.recordSuccess()
	metrics.BrokerPublishes.WithLabelValues("ok").Inc()
	slog.Debug("Published change",
		"collection", msg.Collection,
		"op", msg.Op,
		"sheet_id", msg.SheetID,
		"exchange", c.exchangeName)
	return nil
}

// publish returns the connection it used so a failed caller can tell
// whether someone else already reconnected.
func (c *Client) publish(ctx context.Context, routingKey string, body []byte) (*amqp091.Connection, error) {
	conn, channel := c.current()
	if channel == nil {
		return conn, amqp091.ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return conn, channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}

// Consume calls handler for changes published by other processes. When
// the consumer channel closes (broker restart, reconnect) it subscribes
// again. It blocks until ctx is done.
func (c *Client) Consume(ctx context.Context, handler func(live.Change)) error {
	attempt := 0
	for {
		msgs, err := c.subscribe(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("Change consumer unavailable", "attempt", attempt+1, "error", err)
		} else {
			attempt = 0
			if err := c.drain(ctx, msgs, handler); err != nil {
				return err
			}
			slog.Warn("Change consumer channel closed, resubscribing", "exchange", c.exchangeName)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
		if err != nil {
			attempt++
		}
	}
}

// drain returns nil when msgs closes and ctx.Err() when ctx is done.
func (c *Client) drain(ctx context.Context, msgs <-chan amqp091.Delivery, handler func(live.Change)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return nil
			}
			msg, err := ChangeMessageFromJSON(delivery.Body)
			if err != nil {
				slog.Error("Failed to unmarshal change message", "error", err)
				continue
			}
			if msg.Origin == c.origin {
				continue
			}
			handler(msg.Change())
		}
	}
}

// openConsumer binds an exclusive queue to every change on a channel of
// its own, so publish-side channel errors do not stop consumption.
func (c *Client) openConsumer(ctx context.Context) (<-chan amqp091.Delivery, error) {
	conn, _ := c.current()
	if conn == nil || conn.IsClosed() {
		if err := c.reconnect(ctx, conn); err != nil {
			return nil, err
		}
		if conn, _ = c.current(); conn == nil {
			return nil, amqp091.ErrClosed
		}
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open consumer channel: %w", err)
	}

	queue, err := channel.QueueDeclare(
		"",    // name, server generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	if err := channel.QueueBind(queue.Name, "#", c.exchangeName, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	msgs, err := channel.Consume(
		queue.Name, // queue
		"",         // consumer
		true,       // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		channel.Close()
		return nil, fmt.Errorf("start consuming: %w", err)
	}

	slog.Info("Consuming change messages", "queue", queue.Name, "exchange", c.exchangeName)
	return msgs, nil
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) Close() error {
	c.closeConn()
	return nil
}

func (c *Client) isCircuitOpen() bool {
	if atomic.LoadInt32(&c.state) != StateOpen {
		return false
	}
	c.mu.Lock()
	last := c.lastFailure
	c.mu.Unlock()
	if time.Since(last) > openTimeout {
		atomic.StoreInt32(&c.state, StateHalfOpen)
		return false
	}
	return true
}

func (c *Client) recordSuccess() {
	atomic.StoreInt64(&c.failureCount, 0)
	atomic.StoreInt32(&c.state, StateClosed)
}

func (c *Client) recordFailure() {
	c.mu.Lock()
	c.lastFailure = time.Now()
	c.mu.Unlock()
	if atomic.AddInt64(&c.failureCount, 1) >= maxFailures || atomic.LoadInt32(&c.state) == StateHalfOpen {
		atomic.StoreInt32(&c.state, StateOpen)
	}
}

func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"connection", "eof", "broken pipe", "channel/connection is not open"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
