// Package mq publishes order lifecycle events to RabbitMQ. Events are
// advisory: publish failures are logged and never fail the request that
// produced them.
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/keyy-tech/multi-restaurant-alx-captsone/entity"
)

const exchange = "orders"

type Publisher struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
}

// NewPublisher dials the broker and declares the orders topic exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

type orderEvent struct {
	OrderID     uint      `json:"orderId"`
	UserID      uint      `json:"userId"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount,omitempty"`
	At          time.Time `json:"at"`
}

func (p *Publisher) publish(routingKey string, ev orderEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: marshal event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Printf("mq: publish %s: %v", routingKey, err)
	}
}

// OrderCreated implements services.OrderEvents.
func (p *Publisher) OrderCreated(o *entity.Order) {
	p.publish("order.created", orderEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		At:          time.Now(),
	})
}

// OrderStatusChanged implements services.OrderEvents.
func (p *Publisher) OrderStatusChanged(orderID, userID uint, status string) {
	p.publish("order.status", orderEvent{
		OrderID: orderID,
		UserID:  userID,
		Status:  status,
		At:      time.Now(),
	})
}

func (p *Publisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
