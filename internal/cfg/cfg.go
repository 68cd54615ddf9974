package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bidhaus/auction-backend/pkg/e"
	"github.com/bidhaus/auction-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Db      *PGDBCfg
	Redis   *RedisCfg
	Kafka   *KafkaCfg
	Minio   *MinIOCfg
	Rules   *RulesCfg
	Session *SessionCfg
	Sweep   *SweepCfg
}

// RulesCfg — пороги бизнес-правил площадки. Всё инжектируется из окружения,
// в коде правил нет зашитых констант.
type RulesCfg struct {
	LastNScores                 int     // размер скользящего окна оценок
	MinimumScore                float64 // порог репутации, ниже которого продавец банится
	BannedDays                  int     // длительность бана в днях
	MaxActivePerUser            int     // лимит активных лотов на пользователя
	MaxActivePerUserPerCategory int     // лимит активных лотов на пользователя в категории
	BidStep                     float64 // допустимый шаг ставки относительно текущей цены (0.10 = +10%)
	ScoreGraceDays              int     // дней после закрытия, в течение которых победитель может оценить лот
	DefaultScore                float64 // стартовая репутация нового пользователя
	SellerScopedScores          bool    // считать окно только по лотам продавца, а не по всем оценённым
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	SummaryTTL  time.Duration // TTL кэша карточек лотов
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	UploadPhotosLimit int // лимит одновременных загрузок фото в S3
}

type SessionCfg struct {
	TTL time.Duration
}

type SweepCfg struct {
	Interval time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	rules, err := loadRulesCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	sweep, err := loadSweepCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Grpc:    loadGRPCConfig(),
		Db:      db,
		Redis:   redis,
		Kafka:   kafka,
		Minio:   minio,
		Rules:   rules,
		Session: session,
		Sweep:   sweep,
	}, nil
}

func loadRulesCfg() (*RulesCfg, error) {
	const (
		defaultLastNScores       = 4
		defaultBannedDays        = 7
		defaultMaxActive         = 5
		defaultMaxActiveCategory = 2
		defaultGraceDays         = 3
	)

	lastN, err := parseIntEnv("RULES_LAST_N_SCORES", defaultLastNScores)
	if err != nil {
		return nil, e.Wrap("RULES_LAST_N_SCORES", err)
	}

	minScore, err := parseFloatEnv("RULES_MINIMUM_SCORE", 5.0)
	if err != nil {
		return nil, e.Wrap("RULES_MINIMUM_SCORE", err)
	}

	bannedDays, err := parseIntEnv("RULES_BANNED_DAYS", defaultBannedDays)
	if err != nil {
		return nil, e.Wrap("RULES_BANNED_DAYS", err)
	}

	maxActive, err := parseIntEnv("RULES_MAX_ACTIVE_PER_USER", defaultMaxActive)
	if err != nil {
		return nil, e.Wrap("RULES_MAX_ACTIVE_PER_USER", err)
	}

	maxActiveCategory, err := parseIntEnv("RULES_MAX_ACTIVE_PER_USER_PER_CATEGORY", defaultMaxActiveCategory)
	if err != nil {
		return nil, e.Wrap("RULES_MAX_ACTIVE_PER_USER_PER_CATEGORY", err)
	}

	bidStep, err := parseFloatEnv("RULES_BID_STEP", 0.10)
	if err != nil {
		return nil, e.Wrap("RULES_BID_STEP", err)
	}

	graceDays, err := parseIntEnv("RULES_SCORE_GRACE_DAYS", defaultGraceDays)
	if err != nil {
		return nil, e.Wrap("RULES_SCORE_GRACE_DAYS", err)
	}

	defaultScore, err := parseFloatEnv("RULES_DEFAULT_SCORE", 5.0)
	if err != nil {
		return nil, e.Wrap("RULES_DEFAULT_SCORE", err)
	}

	// Наблюдаемое поведение исходной системы: окно оценок глобальное,
	// по всем оценённым лотам площадки. Флаг позволяет сузить его до
	// лотов конкретного продавца.
	sellerScoped, err := strconv.ParseBool(getEnvOrDefault("RULES_SELLER_SCOPED_SCORES", "false"))
	if err != nil {
		return nil, e.Wrap("RULES_SELLER_SCOPED_SCORES", e.ErrIncorrectEnvVariable)
	}

	return &RulesCfg{
		LastNScores:                 lastN,
		MinimumScore:                minScore,
		BannedDays:                  bannedDays,
		MaxActivePerUser:            maxActive,
		MaxActivePerUserPerCategory: maxActiveCategory,
		BidStep:                     bidStep,
		ScoreGraceDays:              graceDays,
		DefaultScore:                defaultScore,
		SellerScopedScores:          sellerScoped,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		UploadPhotosLimit: 10,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultSummaryTTL   = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	summaryTTL, err := parseDurationEnv("SUMMARY_TTL", defaultSummaryTTL)
	if err != nil {
		log.Errorf(err, "invalid SUMMARY_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		SummaryTTL:  summaryTTL,
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const defaultTTL = 24 * time.Hour

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	return &SessionCfg{TTL: ttl}, nil
}

func loadSweepCfg(log logger.Logger) (*SweepCfg, error) {
	const defaultInterval = time.Minute

	interval, err := parseDurationEnv("SWEEP_INTERVAL", defaultInterval)
	if err != nil {
		log.Errorf(err, "invalid SWEEP_INTERVAL")
		return nil, err
	}

	return &SweepCfg{Interval: interval}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	floatValue, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return floatValue, nil
}
