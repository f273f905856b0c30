package internal

import (
	"fmt"
	"time"
)

type Config struct {
	BufferSize           int           `env:"BUFFER_SIZE,required=true" validate:"gt=0"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true" validate:"gt=0"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,required=true"`
	LimitTransitions     *int          `env:"LIMIT_TRANSITIONS"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true" validate:"gt=0"`
	LatencyThreshold     time.Duration `env:"LATENCY_THRESHOLD,required=true" validate:"gt=0"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=30s" validate:"gt=0"`
	HistorySize          int           `env:"HISTORY_SIZE,default=50" validate:"gt=0"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true" validate:"required"`
	LogLevel             string        `env:"LOG_LEVEL,required=true" validate:"required"`
	LowCapacityThreshold int           `env:"LOW_CAPACITY_THRESHOLD,required=true" validate:"gte=0,lte=100"`
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081" validate:"gt=0,lte=65535"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
