package cmd_test

import (
	"log/slog"
	"testing"

	"orderflow/cmd"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "orders")

	config, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, cmd.StoreDriverPostgres, config.StoreDriver)
	assert.Equal(t, cmd.NotifyDriverLog, config.NotifyDriver)
	assert.Equal(t, "* * * * * *", config.RelaySchedule)
	assert.Equal(t, 100, config.RelayBatchSize)
	assert.Equal(t, int64(10000), config.RedisStreamMaxLen)
	assert.Equal(t, "localhost:9092", config.KafkaBrokers)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=orders sslmode=disable", config.DSN())

	level, err := config.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NOTIFY_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("RELAY_BATCH_SIZE", "25")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, cmd.StoreDriverMemory, config.StoreDriver)
	assert.Equal(t, cmd.NotifyDriverRedis, config.NotifyDriver)
	assert.Equal(t, "redis://cache:6379/2", config.RedisURL)
	assert.Equal(t, 25, config.RelayBatchSize)

	level, err := config.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_KafkaDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("NOTIFY_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "kafka-0:9092,kafka-1:9092")

	config, err := cmd.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, cmd.NotifyDriverKafka, config.NotifyDriver)
	assert.Equal(t, "kafka-0:9092,kafka-1:9092", config.KafkaBrokers)
	assert.Equal(t, "notifications.", config.KafkaTopicPrefix)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unparsable number", func(t *testing.T) {
		t.Setenv("RELAY_BATCH_SIZE", "many")

		_, err := cmd.LoadConfig()
		require.ErrorContains(t, err, "parse env")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "mongo")
		t.Setenv("NOTIFY_DRIVER", "fcm")
		t.Setenv("RELAY_BATCH_SIZE", "0")
		t.Setenv("LOG_LEVEL", "loud")

		_, err := cmd.LoadConfig()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.ErrorContains(t, err, "STORE_DRIVER")
		assert.ErrorContains(t, err, "NOTIFY_DRIVER")
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})

	t.Run("postgres needs a database name", func(t *testing.T) {
		_, err := cmd.LoadConfig()
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
