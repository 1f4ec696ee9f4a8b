// Package mqtt publishes optimization results for dashboard consumers.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/aridgrid/solsite/core/model"
	"github.com/aridgrid/solsite/infra/logger"
)

// Config defines the connection parameters for the result publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retained bool   `json:"retained"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "solsite"
	}
	if c.Topic == "" {
		c.Topic = "solsite/results"
	}
}

// pahoClient is the subset of the paho client used by the publisher.
type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher sends solution tables to an MQTT broker.
type Publisher struct {
	cli pahoClient
	cfg Config
	log logger.Logger
}

// resultMessage is the published payload.
type resultMessage struct {
	RunID string                `json:"run_id"`
	Time  time.Time             `json:"time"`
	Sites []model.SiteSelection `json:"sites"`
}

// NewPublisher connects to the broker.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{cli: c, cfg: cfg, log: logger.New("mqtt-publisher")}, nil
}

// PublishSelection publishes the solution table as a JSON message.
func (p *Publisher) PublishSelection(runID string, sites []model.SiteSelection) error {
	payload, err := json.Marshal(resultMessage{RunID: runID, Time: time.Now(), Sites: sites})
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if token := p.cli.Publish(p.cfg.Topic, p.cfg.QoS, p.cfg.Retained, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish result: %w", token.Error())
	}
	p.log.Infof("published %d sites to %s", len(sites), p.cfg.Topic)
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
