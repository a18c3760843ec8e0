package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/logger"

	"github.com/streadway/amqp"
)

// RabbitMQPublisher 基于 topic exchange 的订单事件发布器
type RabbitMQPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher 根据配置创建发布器，未启用时返回 NopPublisher
func NewPublisher(cfg *config.EventsConfig) (Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return NopPublisher{}, nil
	}
	return NewRabbitMQPublisher(cfg.URL, cfg.Exchange)
}

// NewRabbitMQPublisher 连接 RabbitMQ 并声明 exchange
func NewRabbitMQPublisher(url, exchange string) (*RabbitMQPublisher, error) {
	exchange = strings.TrimSpace(exchange)
	if exchange == "" {
		return nil, errors.New("events exchange is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s failed: %w", exchange, err)
	}
	logger.Infow("events_rabbitmq_connected", "exchange", exchange)
	return &RabbitMQPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// PublishOrderEvent 发布订单事件（持久化消息）
func (p *RabbitMQPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := event.Encode()
	if err != nil {
		return fmt.Errorf("encode order event failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return errors.New("rabbitmq channel is closed")
	}
	err = p.channel.Publish(p.exchange, event.RoutingKey(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    fmt.Sprintf("%d:%s", event.OrderID, event.ToStatus),
		Timestamp:    event.OccurredAt,
		Type:         event.Type,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish order event failed: %w", err)
	}
	return nil
}

// Close 关闭通道与连接
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}
