//go:build integration

package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"underwriter/internal/events"
	"underwriter/pkg/platform/tx"
	"underwriter/pkg/testutil/containers"
)

type OutboxIntegrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	redpanda *containers.RedpandaContainer
	outbox   *events.PostgresOutbox
}

func TestOutboxIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxIntegrationSuite))
}

func (s *OutboxIntegrationSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.redpanda = mgr.GetRedpanda(s.T())
	s.outbox = events.NewPostgresOutbox(s.postgres.DB)
}

func (s *OutboxIntegrationSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox"))
}

func (s *OutboxIntegrationSuite) newEvent(quoteID string) events.Event {
	e, err := events.New(events.AggregateQuote, quoteID, events.TypeQuoteCompleted,
		events.QuoteCompleted{QuoteID: quoteID, Price: "120.00", Currency: "NOK"}, time.Now().UTC())
	s.Require().NoError(err)
	return e
}

func (s *OutboxIntegrationSuite) TestRolledBackTransactionLeavesNoEvent() {
	ctx := context.Background()
	runner := tx.NewSQLRunner(s.postgres.DB)

	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.outbox.Append(ctx, s.newEvent("rolled-back")); err != nil {
			return err
		}
		return context.Canceled
	})
	s.Require().ErrorIs(err, context.Canceled)

	pending, err := s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *OutboxIntegrationSuite) TestRelayDeliversToKafka() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	topic := "underwriter.quotes.test"
	publisher, err := events.NewKafkaPublisher(s.redpanda.Brokers, topic)
	s.Require().NoError(err)
	defer publisher.Close()
	s.Require().NoError(publisher.EnsureTopic(ctx, 1, 1))
	// A second call must tolerate the existing topic.
	s.Require().NoError(publisher.EnsureTopic(ctx, 1, 1))

	s.Require().NoError(s.outbox.Append(ctx, s.newEvent("q-1"), s.newEvent("q-2")))

	relay := events.NewRelay(s.outbox, publisher)
	n, err := relay.Flush(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)

	pending, err := s.outbox.Pending(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var keys []string
	for len(keys) < 2 {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err())
		fetches.EachRecord(func(r *kgo.Record) {
			keys = append(keys, string(r.Key))
		})
	}
	s.ElementsMatch([]string{"q-1", "q-2"}, keys)
}
