package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"dalil/pkg/config"
	"dalil/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	CampaignQueueName  = "campaign_delivery_queue"
	CampaignExchange   = "newsletter"
	CampaignRoutingKey = "send_campaign"
)

// CampaignTask asks the newsletter consumer to deliver a campaign that has
// already been moved to "sending".
type CampaignTask struct {
	CampaignID  string    `json:"campaign_id"`
	RequestedBy string    `json:"requested_by"`
	RequestedAt time.Time `json:"requested_at"`
}

// Publisher is what use cases depend on.
type Publisher interface {
	PublishCampaignTask(task CampaignTask) error
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	if cfg.RabbitMQHost == "" {
		return nil, fmt.Errorf("RABBITMQ_HOST is not set")
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		CampaignExchange, // name
		"direct",         // type
		true,             // durable
		false,            // auto-deleted
		false,            // internal
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		CampaignQueueName, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		CampaignQueueName,
		CampaignRoutingKey,
		CampaignExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	// one campaign at a time per consumer
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) PublishCampaignTask(task CampaignTask) error {
	if task.RequestedAt.IsZero() {
		task.RequestedAt = time.Now()
	}

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		CampaignExchange,   // exchange
		CampaignRoutingKey, // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    task.RequestedAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish campaign task %s: %v", task.CampaignID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published campaign task: campaign_id=%s", task.CampaignID)
	return nil
}

// ConsumeCampaignTasks runs handler for every task in a background goroutine.
// Malformed messages are dropped. Failed tasks are dropped too: the campaign
// row already records the outcome and sends are never retried.
func (c *Client) ConsumeCampaignTasks(handler func(task CampaignTask) error) error {
	msgs, err := c.channel.Consume(
		CampaignQueueName, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", CampaignQueueName)

	go func() {
		for msg := range msgs {
			var task CampaignTask
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal campaign task: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("[RABBITMQ] Campaign task %s failed: %v", task.CampaignID, err)
				msg.Nack(false, false)
				continue
			}

			msg.Ack(false)
		}
		c.logger.Info("[RABBITMQ] Consumer for %s stopped", CampaignQueueName)
	}()

	return nil
}
