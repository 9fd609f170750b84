package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string     `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis      `yaml:"redis"`
	Sink       Sink       `yaml:"sink"`
	Simulation Simulation `yaml:"simulation"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Sink struct {
	BaseURL   string `yaml:"base-url" env:"SINK_BASE_URL" env-default:"http://localhost:9090"`
	TimeoutMS int    `yaml:"timeout-ms" env-default:"5000"`
}

type Simulation struct {
	MoveIntervalMS  int `yaml:"move-interval-ms" env-default:"200"`
	MinIntervalMS   int `yaml:"min-interval-ms" env-default:"50"`
	MaxIntervalMS   int `yaml:"max-interval-ms" env-default:"1000"`
	TerminalDelayMS int `yaml:"terminal-delay-ms" env-default:"1500"`
	FlushThreshold  int `yaml:"flush-threshold" env-default:"10"`
	HistoryPollS    int `yaml:"history-poll-s" env-default:"30"`
	HistoryPageSize int `yaml:"history-page-size" env-default:"50"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Sink) GetTimeout() time.Duration {
	return time.Duration(that.TimeoutMS) * time.Millisecond
}

func (that *Simulation) GetMoveInterval() time.Duration {
	return time.Duration(that.MoveIntervalMS) * time.Millisecond
}

func (that *Simulation) GetMinInterval() time.Duration {
	return time.Duration(that.MinIntervalMS) * time.Millisecond
}

func (that *Simulation) GetMaxInterval() time.Duration {
	return time.Duration(that.MaxIntervalMS) * time.Millisecond
}

func (that *Simulation) GetTerminalDelay() time.Duration {
	return time.Duration(that.TerminalDelayMS) * time.Millisecond
}

func (that *Simulation) GetHistoryPoll() time.Duration {
	return time.Duration(that.HistoryPollS) * time.Second
}
