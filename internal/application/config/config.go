package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pion/webrtc/v4"
)

const (
	ControlPolicyStrict     = "strict"
	ControlPolicyPermissive = "permissive"

	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite3"
	StoreDriverNone     = "none"
)

var (
	ErrUnknownControlPolicy = errors.New("unknown control policy")
	ErrUnknownStoreDriver   = errors.New("unknown store driver")
)

type Config struct {
	Debug      bool   `env:"DEBUG" envDefault:"false"`
	Port       string `env:"PORT" envDefault:"3000"`
	MetricPort string `env:"METRIC_PORT" envDefault:"9090"`
	Domain     string `env:"DOMAIN" envDefault:"http://localhost:3000"`

	// JWTSecret - если задан, личность участника берётся из токена, а не из join
	JWTSecret string `env:"JWT_SECRET"`

	ControlPolicy string `env:"CONTROL_POLICY" envDefault:"strict"`

	EventBuffer   int `env:"EVENT_BUFFER" envDefault:"1024"`
	ChatMaxLength int `env:"CHAT_MAX_LENGTH" envDefault:"2000"`

	StunURL string `env:"STUN_URL" envDefault:"stun:stun.l.google.com:19302"`

	StunServer    webrtc.ICEServer
	TurnUDPServer webrtc.ICEServer
	TurnTCPServer webrtc.ICEServer

	WebSocket    WebSocketConfig
	CoturnServer CoturnConfig
	Store        StoreConfig
	Postgres     PostgresConfig
}

type WebSocketConfig struct {
	PingPeriod     time.Duration `env:"WS_PING_PERIOD" envDefault:"30s"`
	PongWait       time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WriteWait      time.Duration `env:"WS_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"65536"`
	SendBuffer     int           `env:"WS_SEND_BUFFER" envDefault:"256"`
}

type StoreConfig struct {
	Driver       string        `env:"STORE_DRIVER" envDefault:"postgres"`
	AutoMigrate  bool          `env:"STORE_AUTO_MIGRATE" envDefault:"false"`
	WriteTimeout time.Duration `env:"STORE_WRITE_TIMEOUT" envDefault:"5s"`
	SQLitePath   string        `env:"SQLITE_PATH" envDefault:"roomsync.db"`
}

type PostgresConfig struct {
	URL string `env:"POSTGRES_URL"`

	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	Name     string `env:"POSTGRES_NAME" envDefault:"roomsync"`
	SSL      string `env:"POSTGRES_SSL" envDefault:"disable"`
}

func (p *PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSL,
	)
}

type CoturnConfig struct {
	Host string `env:"COTURN_HOST"`

	// Secret - static-auth-secret coturn, нужен для генерации временных кредов для фронта
	Secret string `env:"COTURN_SECRET"`
}

func (c *CoturnConfig) Enabled() bool {
	return c.Host != "" && c.Secret != ""
}

// DriverName возвращает имя database/sql драйвера и DSN для выбранного хранилища
func (c *Config) DriverName() (string, string) {
	switch c.Store.Driver {
	case StoreDriverSQLite:
		return "sqlite3", "file:" + c.Store.SQLitePath + "?_busy_timeout=5000"
	default:
		return "pgx", c.Postgres.DSN()
	}
}

func New() (*Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch c.ControlPolicy {
	case ControlPolicyStrict, ControlPolicyPermissive:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownControlPolicy, c.ControlPolicy)
	}

	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite, StoreDriverNone:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoreDriver, c.Store.Driver)
	}

	c.StunServer = webrtc.ICEServer{URLs: []string{c.StunURL}}

	if c.CoturnServer.Enabled() {
		c.TurnUDPServer = webrtc.ICEServer{
			URLs: []string{fmt.Sprintf("turn:%s?transport=udp", c.CoturnServer.Host)},
		}

		c.TurnTCPServer = webrtc.ICEServer{
			URLs: []string{fmt.Sprintf("turn:%s?transport=tcp", c.CoturnServer.Host)},
		}
	}

	return &c, nil
}
