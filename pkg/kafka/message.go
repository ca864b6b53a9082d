// Package kafka connects the pipeline to the scraping layer: a consumer
// for scraped roster rows and a producer for run summary events.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/Ramsey-B/clover/pkg/models"
)

// IncomingMessage wraps a raw Kafka message with its parsed roster payload.
type IncomingMessage struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Partition int
	Offset    int64
	Timestamp time.Time
	Topic     string

	// Roster is set by ParseRoster.
	Roster *models.RosterMessage
}

// ParseRoster decodes the payload as a scraped roster message.
func (m *IncomingMessage) ParseRoster() error {
	var roster models.RosterMessage
	if err := json.Unmarshal(m.Value, &roster); err != nil {
		return err
	}
	m.Roster = &roster
	return nil
}
