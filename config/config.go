package config

import "time"

type Config struct {
	AppName            string `env:"APP_NAME" env-default:"clover-loader"`
	LogLevel           string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs         bool   `env:"PRETTY_LOGS" env-default:"false"`
	StartupMaxAttempts int    `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// PostgreSQL (Staging Database)
	DatabaseDriver                string        `env:"DB_DRIVER" env-default:"postgres"`
	DatabaseHost                  string        `env:"DB_HOST" env-default:""`
	DatabasePort                  string        `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"clover"`
	DatabaseSSLMode               string        `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion      int           `env:"DB_MIGRATION_VERSION" env-default:"0"`
	DatabaseMigrationForce        int           `env:"DB_MIGRATION_FORCE" env-default:"0"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Graph Database (Neo4j / Memgraph over Bolt)
	GraphDBHost     string `env:"GRAPH_DB_HOST" env-default:"localhost"`
	GraphDBPort     int    `env:"GRAPH_DB_PORT" env-default:"7687"`
	GraphDBUser     string `env:"GRAPH_DB_USER" env-default:""`
	GraphDBPassword string `env:"GRAPH_DB_PASSWORD" env-default:""`

	// Kafka Consumer (scraper output - ingestion)
	KafkaBrokers         []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaInputTopic      string   `env:"KAFKA_INPUT_TOPIC" env-default:"scraped-rosters"`
	KafkaConsumerGroup   string   `env:"KAFKA_CONSUMER_GROUP" env-default:"clover-ingest"`
	KafkaConsumerEnabled bool     `env:"KAFKA_CONSUMER_ENABLED" env-default:"true"`

	// Kafka Producer (pipeline run events)
	KafkaOutputTopic  string `env:"KAFKA_OUTPUT_TOPIC" env-default:"roster-run-events"`
	KafkaBatchSize    int    `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int    `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int    `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Pipeline
	SourceMode       string  `env:"SOURCE_MODE" env-default:"csv"` // csv | staging
	CSVDataDir       string  `env:"CSV_DATA_DIR" env-default:"data"`
	FullRefresh      bool    `env:"FULL_REFRESH" env-default:"false"`
	MatchScoreCutoff float64 `env:"MATCH_SCORE_CUTOFF" env-default:"70"`
	GraphBatchSize   int     `env:"GRAPH_BATCH_SIZE" env-default:"500"`
}
