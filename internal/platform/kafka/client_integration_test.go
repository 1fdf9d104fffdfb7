//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"custody/internal/platform/config"
	"custody/pkg/platform/audit"
	kafkastore "custody/pkg/platform/audit/store/kafka"
	"custody/pkg/testutil/containers"
)

func TestClientAgainstRedpanda(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)
	ctx := context.Background()
	cfg := config.KafkaConfig{
		Brokers:          []string{rp.Broker},
		AuditTopic:       "custody.audit.test",
		TopicPartitions:  1,
		TopicReplication: 1,
	}

	client, err := New(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(client.Close)

	t.Run("topic exists and ensuring it again is a no-op", func(t *testing.T) {
		admin := kadm.NewClient(client)
		require.NoError(t, EnsureTopic(ctx, admin, cfg.AuditTopic, 1, 1))

		topics, err := admin.ListTopics(ctx, cfg.AuditTopic)
		require.NoError(t, err)
		assert.True(t, topics.Has(cfg.AuditTopic))
	})

	t.Run("audit events round trip through the topic", func(t *testing.T) {
		store := kafkastore.New(client, cfg.AuditTopic)
		event := audit.Event{
			Timestamp: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			Resource:  "bags",
			Action:    audit.ActionRecordCreated,
			EntityID:  "000000003132333435363738",
		}
		require.NoError(t, store.Append(ctx, event))

		consumer, err := kgo.NewClient(
			kgo.SeedBrokers(rp.Broker),
			kgo.ConsumeTopics(cfg.AuditTopic),
			kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		)
		require.NoError(t, err)
		defer consumer.Close()

		pollCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()
		fetches := consumer.PollFetches(pollCtx)
		require.NoError(t, fetches.Err())
		records := fetches.Records()
		require.NotEmpty(t, records)

		assert.Equal(t, event.EntityID, string(records[0].Key))
		var got audit.Event
		require.NoError(t, json.Unmarshal(records[0].Value, &got))
		assert.Equal(t, event.Action, got.Action)
		assert.True(t, event.Timestamp.Equal(got.Timestamp))
	})
}

func TestNewWithoutBrokers(t *testing.T) {
	client, err := New(context.Background(), config.KafkaConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
