package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/fireems-testdata/internal/config"
	"github.com/couchcryptid/fireems-testdata/internal/domain"
	"github.com/couchcryptid/fireems-testdata/internal/observability"
	"github.com/couchcryptid/fireems-testdata/internal/testdata"
)

// batchSize caps the messages sent in one WriteMessages call.
const batchSize = 500

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher replays fixture incidents onto a Kafka topic in received order.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured replay topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newPublisher(w, logger, metrics)
}

func newPublisher(w messageWriter, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// PublishFixture publishes every incident in f and returns how many were
// written.
func (p *Publisher) PublishFixture(ctx context.Context, f *testdata.Fixture) (int, error) {
	n, err := p.PublishIncidents(ctx, f.Incidents())
	if err != nil {
		return n, fmt.Errorf("publish fixture %s: %w", f.Name, err)
	}
	p.logger.Info("fixture published", "fixture", f.Name, "incidents", n)
	return n, nil
}

// PublishIncidents sorts incidents by received time and writes them in
// batches. Messages are keyed by incident id so replays of the same fixture
// land on the same partitions. It returns how many were written before any
// error.
func (p *Publisher) PublishIncidents(ctx context.Context, incidents []domain.Incident) (int, error) {
	ordered := slices.Clone(incidents)
	slices.SortStableFunc(ordered, func(a, b domain.Incident) int {
		return a.Times.Received.Compare(b.Times.Received)
	})

	written := 0
	for chunk := range slices.Chunk(ordered, batchSize) {
		msgs := make([]kafkago.Message, len(chunk))
		for i := range chunk {
			msg, err := serializeToMessage(chunk[i])
			if err != nil {
				return written, err
			}
			msgs[i] = msg
		}
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			return written, fmt.Errorf("write incidents: %w", err)
		}
		written += len(msgs)
		p.metrics.IncidentsPublished.Add(float64(len(msgs)))
	}
	return written, nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an Incident into a Kafka message.
func serializeToMessage(incident domain.Incident) (kafkago.Message, error) {
	data, err := json.Marshal(incident)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize incident: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(incident.ID),
		Value: data,
		Time:  incident.Times.Received,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(incident.Category)},
			{Key: "priority", Value: []byte(strconv.Itoa(incident.Priority))},
			{Key: "department_id", Value: []byte(incident.DepartmentID)},
		},
	}, nil
}
