package application

import (
	"fmt"
	"os"
	"strings"

	"github.com/lk2023060901/openapi-serializer-go/pkg/encoding"
	zlog "github.com/lk2023060901/openapi-serializer-go/pkg/log"
	"github.com/lk2023060901/openapi-serializer-go/pkg/metrics"
	"github.com/lk2023060901/openapi-serializer-go/pkg/serializer"
	"github.com/lk2023060901/openapi-serializer-go/pkg/util/merr"
	zviper "github.com/lk2023060901/openapi-serializer-go/pkg/util/viper"
)

// compressMinSize is the smallest encoded body worth compressing.
const compressMinSize = 1024

// Application is the main runtime container for a Zeus service.
// It owns configuration and manages common dependencies.
type Application struct {
	cfg        *zviper.Config
	loggers    map[string]*zlog.MLogger
	serializer *serializer.Serializer
	encoder    encoding.Encoder
}

// rootConfig mirrors the sections of config.yaml consumed by the application.
type rootConfig struct {
	Logging    map[string]zlog.Config `mapstructure:"logging"`
	Serializer serializer.Config      `mapstructure:"serializer"`
}

// New creates a new Application instance.
func New() *Application {
	return &Application{}
}

// Run is the entry of Zeus application.
// It parses command-line arguments (os.Args) and loads configuration file
// using the following priority:
//  1. Default: ./config.yaml
//  2. Env: ZEUS_CONFIG_FILE_PATH
//  3. CLI: --config <path> or --config=<path>
func (a *Application) Run() error {
	return a.RunWithArgs(os.Args[1:])
}

// RunWithArgs is Run with explicit command-line arguments.
func (a *Application) RunWithArgs(args []string) error {
	cfg, err := a.loadConfig(args)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var root rootConfig
	if err := a.cfg.Unmarshal(&root); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := a.initLogging(root.Logging); err != nil {
		return err
	}

	return a.initSerializer(root.Serializer)
}

// Config returns the loaded configuration, if any.
func (a *Application) Config() *zviper.Config {
	return a.cfg
}

// Logger returns a named logger created from configuration.
// If the name is unknown, it falls back to the global logger.
func (a *Application) Logger(name string) *zlog.MLogger {
	if a.loggers == nil {
		return &zlog.MLogger{Logger: zlog.L()}
	}
	if lg, ok := a.loggers[name]; ok && lg != nil {
		return lg
	}
	return &zlog.MLogger{Logger: zlog.L()}
}

// Serializer returns the serializer built from the "serializer" section.
func (a *Application) Serializer() *serializer.Serializer {
	return a.serializer
}

// Encoder returns the configured output encoder.
func (a *Application) Encoder() encoding.Encoder {
	return a.encoder
}

// Render serializes resource with ctx and encodes the result with the configured encoder.
// contentEncoding is the encoding actually applied to body, empty when the body
// was left uncompressed.
func (a *Application) Render(resource any, ctx serializer.Context) (body []byte, contentEncoding string, err error) {
	if a.serializer == nil || a.encoder == nil {
		return nil, "", fmt.Errorf("application is not running")
	}
	out, err := a.serializer.Serialize(resource, ctx)
	if err != nil {
		return nil, "", err
	}
	return encoding.EncodeContent(a.encoder, out)
}

// Close releases resources held by the application.
func (a *Application) Close() {
	if a.serializer != nil {
		a.serializer.Close()
	}
	if c, ok := a.encoder.(interface{ Close() }); ok {
		c.Close()
	}
	_ = zlog.Sync()
}

// loadConfig resolves config file path and loads it via viper wrapper.
func (a *Application) loadConfig(args []string) (*zviper.Config, error) {
	configPath := "./config.yaml"

	if envPath := os.Getenv("ZEUS_CONFIG_FILE_PATH"); envPath != "" {
		configPath = envPath
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("missing value after --config")
			}
			configPath = args[i+1]
			i++
			continue
		}
		if strings.HasPrefix(arg, "--config=") {
			val := strings.TrimPrefix(arg, "--config=")
			if val != "" {
				configPath = val
			}
			continue
		}
	}

	cfg := zviper.New()
	defaults := serializer.DefaultConfig()
	cfg.SetDefault("serializer.max-depth", defaults.MaxDepth)
	cfg.SetDefault("serializer.encoder", defaults.Encoder)
	cfg.SetDefault("serializer.compression", defaults.Compression)
	cfg.SetDefault("serializer.batch-workers", defaults.BatchWorkers)
	cfg.SetDefault("serializer.batch-nonblocking", defaults.BatchNonBlocking)
	cfg.SetDefault("serializer.batch-prealloc", defaults.BatchPreAlloc)
	cfg.SetDefault("serializer.batch-expiry", defaults.BatchExpiry)
	cfg.SetDefault("serializer.batch-disable-purge", defaults.BatchDisablePurge)
	if err := cfg.LoadFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", configPath, err)
	}

	return cfg, nil
}

// initLogging initializes global and module-level loggers.
func (a *Application) initLogging(modules map[string]zlog.Config) error {
	if err := a.initGlobalLoggerFromEnv(); err != nil {
		return err
	}
	if err := a.initModuleLoggers(modules); err != nil {
		return err
	}
	return nil
}

// initGlobalLoggerFromEnv configures the process-wide logger based on ZEUS_LOG_* env vars.
//
// Priority:
//   - ZEUS_LOG_ENABLE: "1"/"true" to enable outputs; others treated as disabled.
//   - ZEUS_LOG_LEVEL: log level (default "info").
//   - ZEUS_LOG_STDOUT: whether to log to stdout (default false).
//   - ZEUS_LOG_FILE_DIR: log directory.
//   - ZEUS_LOG_FILE: log file name (empty means no file).
//   - ZEUS_LOG_FORMAT: log format ("text" or "json", default "text").
func (a *Application) initGlobalLoggerFromEnv() error {
	enabled := getenvBool("ZEUS_LOG_ENABLE", false)

	cfg := &zlog.Config{
		Level:             getenvDefault("ZEUS_LOG_LEVEL", "info"),
		Format:            getenvDefault("ZEUS_LOG_FORMAT", "text"),
		DisableTimestamp:  false,
		Stdout:            getenvBool("ZEUS_LOG_STDOUT", false),
		DisableCaller:     false,
		DisableStacktrace: false,
		File: zlog.FileLogConfig{
			RootPath: getenvDefault("ZEUS_LOG_FILE_DIR", ""),
			Filename: getenvDefault("ZEUS_LOG_FILE", ""),
		},
	}

	// When not enabled, direct all outputs to a discarded sink.
	if !enabled {
		cfg.Stdout = false
		cfg.File.Filename = ""
	}

	logger, props, err := zlog.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("init global logger from env: %w", err)
	}
	zlog.ReplaceGlobals(logger, props)
	return nil
}

// initModuleLoggers creates named loggers from the "logging" section.
//
// Example:
//
//	logging:
//	  serializer:
//	    level: debug
//	    stdout: true
//	    file:
//	      rootpath: ./logs
//	      filename: serializer.log
func (a *Application) initModuleLoggers(modules map[string]zlog.Config) error {
	if len(modules) == 0 {
		return nil
	}

	a.loggers = make(map[string]*zlog.MLogger, len(modules))
	for name, lc := range modules {
		cfgCopy := lc
		logger, _, err := zlog.InitLogger(&cfgCopy)
		if err != nil {
			return fmt.Errorf("init module logger %q: %w", name, err)
		}
		a.loggers[name] = &zlog.MLogger{Logger: logger}
	}

	return nil
}

// initSerializer builds the serializer and resolves its output encoder.
func (a *Application) initSerializer(cfg serializer.Config) error {
	enc, err := encoding.Get(cfg.Encoder)
	if err != nil {
		return err
	}
	switch cfg.Compression {
	case "", "none":
	case "zstd":
		if enc, err = encoding.NewZstd(enc, 0, compressMinSize); err != nil {
			return err
		}
	default:
		return merr.WrapErrParameterInvalidMsg("unknown compression %q", cfg.Compression)
	}
	a.encoder = enc

	metrics.Register(metrics.GetRegisterer())

	opts := append(cfg.Options(), serializer.WithLogger(a.Logger("serializer").With(zlog.FieldModule("serializer"))))
	a.serializer = serializer.New(opts...)
	return nil
}

func getenvDefault(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func getenvBool(key string, def bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
