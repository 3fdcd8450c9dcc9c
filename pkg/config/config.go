package config

import (
	"errors"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var appCnf *AppConfig

type AppConfig struct {
	RDS    *redis.Client
	DB     *gorm.DB
	Logger *logrus.Logger

	RootWorkingDir string
	Client         ClientInfo          `yaml:"client"`
	LogSettings    LogSettings         `yaml:"log_settings"`
	DatabaseInfo   DatabaseInfo        `yaml:"database_info"`
	RedisInfo      RedisInfo           `yaml:"redis_info"`
	AzureSpeech    AzureSpeechInfo     `yaml:"azure_speech"`
	Transcription  TranscriptionConfig `yaml:"transcription"`
}

type ClientInfo struct {
	Port           int            `yaml:"port"`
	Debug          bool           `yaml:"debug"`
	ProxyHeader    string         `yaml:"proxy_header"`
	PrometheusConf PrometheusConf `yaml:"prometheus"`
}

type PrometheusConf struct {
	Enable      bool   `yaml:"enable"`
	MetricsPath string `yaml:"metrics_path"`
}

type LogSettings struct {
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
	LogLevel   *string `yaml:"log_level"`
}

type DatabaseInfo struct {
	Host            string          `yaml:"host"`
	Port            int32           `yaml:"port"`
	Username        string          `yaml:"username"`
	Password        string          `yaml:"password"`
	DBName          string          `yaml:"db"`
	Prefix          string          `yaml:"prefix"`
	Charset         *string         `yaml:"charset"`
	Loc             *string         `yaml:"loc"`
	ConnMaxLifetime *time.Duration  `yaml:"conn_max_lifetime"`
	MaxOpenConns    *int            `yaml:"max_open_conns"`
	Replicas        []ReplicaDBInfo `yaml:"replicas"`
}

// ReplicaDBInfo holds connection details for a read replica database.
type ReplicaDBInfo struct {
	Host     string `yaml:"host"`
	Port     int32  `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisInfo struct {
	Host              string   `yaml:"host"`
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	DBName            int      `yaml:"db"`
	UseTLS            bool     `yaml:"use_tls"`
	MasterName        string   `yaml:"sentinel_master_name"`
	SentinelUsername  string   `yaml:"sentinel_username"`
	SentinelPassword  string   `yaml:"sentinel_password"`
	SentinelAddresses []string `yaml:"sentinel_addresses"`
}

// AzureSpeechInfo carries the Azure Cognitive Services Speech credential.
// It is read once at startup and never mutated afterwards; whether the key
// is usable decides mock vs real mode for the whole process lifetime.
type AzureSpeechInfo struct {
	SubscriptionKey string `yaml:"subscription_key"`
	ServiceRegion   string `yaml:"service_region"`
}

type TranscriptionConfig struct {
	// ScratchDir is where fetched audio files are written before decoding.
	ScratchDir string `yaml:"scratch_dir"`
	// CacheTTL controls how long finished transcripts stay in redis.
	CacheTTL *time.Duration `yaml:"cache_ttl"`
}

func New(cnf *AppConfig) *AppConfig {
	// env always wins over the yaml file for the credential,
	// so containerized deployments don't need to template the config
	if key := os.Getenv("AZURE_SPEECH_KEY"); key != "" {
		cnf.AzureSpeech.SubscriptionKey = key
	}
	if region := os.Getenv("AZURE_SPEECH_REGION"); region != "" {
		cnf.AzureSpeech.ServiceRegion = region
	}
	if cnf.AzureSpeech.ServiceRegion == "" {
		cnf.AzureSpeech.ServiceRegion = DefaultAzureRegion
	}

	if cnf.Transcription.ScratchDir == "" {
		cnf.Transcription.ScratchDir = os.TempDir()
	}
	if cnf.Transcription.CacheTTL == nil || *cnf.Transcription.CacheTTL <= 0 {
		ttl := DefaultTranscriptionCacheTTL
		cnf.Transcription.CacheTTL = &ttl
	}

	setDBTablePrefix(cnf.DatabaseInfo.Prefix)

	appCnf = cnf
	return appCnf
}

func GetConfig() *AppConfig {
	return appCnf
}

// Validate fails fast on settings the server cannot run without. The Azure
// credential is deliberately not checked here; its absence selects mock mode.
func (a *AppConfig) Validate() error {
	if a.Client.Port == 0 {
		return errors.New("client.port is required")
	}
	if a.DatabaseInfo.Host == "" || a.DatabaseInfo.DBName == "" {
		return errors.New("database_info.host and database_info.db are required")
	}
	if a.RedisInfo.Host == "" && len(a.RedisInfo.SentinelAddresses) == 0 {
		return errors.New("redis_info.host or redis_info.sentinel_addresses is required")
	}
	return nil
}

// AzureCredentialUsable reports whether the configured credential can drive a
// real recognition session. A missing or too-short key routes every request
// to the mock transcriber.
func (a *AppConfig) AzureCredentialUsable() bool {
	return len(a.AzureSpeech.SubscriptionKey) >= MinAzureKeyLength && a.AzureSpeech.ServiceRegion != ""
}

var dbTablePrefix string

func setDBTablePrefix(prefix string) {
	dbTablePrefix = prefix
}

func FormatDBTable(table string) string {
	return dbTablePrefix + table
}
