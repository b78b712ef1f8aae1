package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// Prompt shown by the interactive shell.
	Prompt string `toml:"prompt" json:"prompt"`
	// HistoryFile keeps the interactive shell's line history. Empty disables history.
	HistoryFile string `toml:"history-file" json:"history-file"`
	// StatusAddr is the listen address of the status endpoint. Empty disables it.
	StatusAddr string `toml:"status-addr" json:"status-addr"`
	// Echo prints every line read from a script before its result.
	Echo bool `toml:"echo" json:"echo"`

	Log log.Config `toml:"log" json:"log"`

	logger   *zap.Logger
	logProps *log.ZapProperties
}

const (
	defaultPrompt      = "> "
	defaultHistoryFile = "/tmp/txnshell.history"
	// Results share stdout with the log, so only problems are logged by default.
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

func getLogLevel() (logLevel string) {
	logLevel = defaultLogLevel
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		logLevel = l
	}
	return
}

func NewDefaultConfig() *Config {
	c := &Config{
		Prompt:      defaultPrompt,
		HistoryFile: defaultHistoryFile,
	}
	c.Log.Level = getLogLevel()
	c.Log.Format = defaultLogFormat
	return c
}

func NewTestConfig() *Config {
	c := &Config{
		Prompt: defaultPrompt,
	}
	c.Log.Level = "fatal"
	c.Log.Format = defaultLogFormat
	return c
}

func adjustString(v *string, defValue string) {
	if len(*v) == 0 {
		*v = defValue
	}
}

// FromFile loads path on top of the current values. Keys the config does not know about are rejected.
func (c *Config) FromFile(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Annotatef(err, "decode config file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		errInfo := "config contains undefined item: "
		for i, key := range undecoded {
			if i > 0 {
				errInfo += ", "
			}
			errInfo += key.String()
		}
		return errors.New(errInfo)
	}
	return nil
}

// Adjust fills in defaults for values left empty.
func (c *Config) Adjust() {
	adjustString(&c.Prompt, defaultPrompt)
	adjustString(&c.Log.Level, getLogLevel())
	adjustString(&c.Log.Format, defaultLogFormat)
}

func (c *Config) Validate() error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errors.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.HistoryFile != "" && c.HistoryFile == c.Log.File.Filename {
		return errors.New("history file and log file must differ")
	}
	return nil
}

// SetupLogger builds the zap logger described by the log section.
func (c *Config) SetupLogger() error {
	lg, p, err := log.InitLogger(&c.Log, zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return errors.Trace(err)
	}
	c.logger = lg
	c.logProps = p
	return nil
}

// GetZapLogger gets the created zap logger.
func (c *Config) GetZapLogger() *zap.Logger {
	return c.logger
}

// GetZapLogProperties gets properties of the zap logger.
func (c *Config) GetZapLogProperties() *log.ZapProperties {
	return c.logProps
}
