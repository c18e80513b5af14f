package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/broadcast"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix    = "PRN"
	KeyDelimiter = "_"
)

var viperInstance = viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))

// RegisterServerFlags adds the server flags to fs and binds them, and the matching PRN_*
// environment variables, to the configuration.
func RegisterServerFlags(fs *flag.FlagSet) {
	registerEnv()
	registerCommonFlags(fs)

	fs.String(ConfigPathKey, "", "Path to an optional YAML configuration file.")
	fs.String(
		LogLevelKey,
		DefLogLevel,
		"The desired verbosity level for logging messages. "+
			"Available options, in order of severity from highest to lowest, are: error, warn, info and debug.",
	)
	fs.String(
		LogPathKey,
		"",
		"The path to output log messages to. If empty, log messages are output to stderr.",
	)
	fs.Int(
		ProcessLiveBufferKey,
		broadcast.DefaultCapacity,
		"The number of output lines a live log subscriber may lag behind before old lines are dropped.",
	)
	fs.Int(
		ProcessMaxLineBytesKey,
		runner.DefaultMaxLineBytes,
		"The longest output line recorded. A longer line stops output collection for that process.",
	)
	fs.Bool(
		ProcessMergeStderrKey,
		false,
		"Record the stderr of started processes together with their stdout.",
	)
	fs.String(
		ProcessWorkDirKey,
		"",
		"The working directory of started processes. Defaults to the server's own.",
	)
	fs.Duration(
		ShutdownTimeoutKey,
		DefShutdownTimeout,
		"How long to wait for listeners and processes to stop on shutdown.",
	)

	bindFlags(fs)
}

// RegisterClientFlags adds the CLI flags to fs and binds them to the configuration.
func RegisterClientFlags(fs *flag.FlagSet) {
	registerEnv()
	registerCommonFlags(fs)

	fs.String(APIKey, DefAPI, "The API used to reach the server: http or grpc.")
	fs.Duration(RequestTimeoutKey, DefRequestTimeout, "The timeout of a single request.")

	bindFlags(fs)
}

func registerCommonFlags(fs *flag.FlagSet) {
	fs.SetNormalizeFunc(normalizeFunc)

	fs.String(HTTPAddressKey, DefHTTPAddress, "The host:port of the HTTP API.")
	fs.String(AddressKey, DefAddress, "The host:port of the gRPC API.")
	fs.String(TLSCertKey, "", "PEM encoded certificate used for mutual TLS.")
	fs.String(TLSKeyKey, "", "PEM encoded private key used for mutual TLS.")
	fs.String(CATLSCertKey, "", "PEM encoded CA certificate used to verify the peer.")
}

func registerEnv() {
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viperInstance.AutomaticEnv()
}

func bindFlags(fs *flag.FlagSet) {
	fs.VisitAll(func(flag *flag.Flag) {
		if err := viperInstance.BindPFlag(strings.ReplaceAll(flag.Name, "-", "_"), fs.Lookup(flag.Name)); err != nil {
			slog.Warn("Error occurred binding flag", "flag", flag.Name, "error", err)
		}
	})
}

// normalizeFunc lets flags be given as --http-address or --http_address.
func normalizeFunc(f *flag.FlagSet, name string) flag.NormalizedName {
	return flag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// RegisterConfigFile merges the YAML file named by the config key, if any.
func RegisterConfigFile() error {
	configPath := viperInstance.GetString(ConfigPathKey)
	if configPath == "" {
		return nil
	}

	if err := loadPropertiesFromFile(configPath); err != nil {
		return err
	}

	slog.Debug("Configuration file loaded", "config_path", configPath)

	return nil
}

func loadPropertiesFromFile(cfg string) error {
	viperInstance.SetConfigFile(cfg)
	viperInstance.SetConfigType("yaml")
	err := viperInstance.MergeInConfig()
	if err != nil {
		return fmt.Errorf("error loading config file %s: %w", cfg, err)
	}

	return nil
}

func ResolveConfig() (*Config, error) {
	// Collect all validation errors so the user sees every issue at once.
	var err error

	tls := resolveTLS()
	err = errors.Join(err, tls.Validate())

	server := &Server{
		HTTPAddress: strings.TrimSpace(viperInstance.GetString(HTTPAddressKey)),
		GRPCAddress: strings.TrimSpace(viperInstance.GetString(AddressKey)),
	}
	if server.HTTPAddress == "" && server.GRPCAddress == "" {
		err = errors.Join(err, errors.New("at least one of http_address and address must be set"))
	}

	process := resolveProcess()
	if process.LiveBuffer <= 0 {
		err = errors.Join(err, fmt.Errorf("%s must be positive, got %d", ProcessLiveBufferKey, process.LiveBuffer))
	}
	if process.MaxLineBytes <= 0 {
		err = errors.Join(err, fmt.Errorf("%s must be positive, got %d", ProcessMaxLineBytesKey, process.MaxLineBytes))
	}

	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Config{
		Log:             resolveLog(),
		Server:          server,
		TLS:             tls,
		Process:         process,
		ShutdownTimeout: viperInstance.GetDuration(ShutdownTimeoutKey),
	}, nil
}

func ResolveClientConfig() (*ClientConfig, error) {
	var err error

	tls := resolveTLS()
	err = errors.Join(err, tls.Validate())

	api := strings.ToLower(strings.TrimSpace(viperInstance.GetString(APIKey)))
	if api != APIHTTP && api != APIGRPC {
		err = errors.Join(err, fmt.Errorf("unknown api %q, expected %s or %s", api, APIHTTP, APIGRPC))
	}

	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &ClientConfig{
		API:            api,
		HTTPAddress:    strings.TrimSpace(viperInstance.GetString(HTTPAddressKey)),
		GRPCAddress:    strings.TrimSpace(viperInstance.GetString(AddressKey)),
		TLS:            tls,
		RequestTimeout: viperInstance.GetDuration(RequestTimeoutKey),
	}, nil
}

// RunnerSettings converts the process section into runner settings.
func (p *Process) RunnerSettings() runner.Settings {
	return runner.Settings{
		LiveBufferSize: p.LiveBuffer,
		MaxLineBytes:   p.MaxLineBytes,
		MergeStderr:    p.MergeStderr,
		WorkDir:        p.WorkDir,
	}
}

func resolveLog() *Log {
	return &Log{
		Level: viperInstance.GetString(LogLevelKey),
		Path:  viperInstance.GetString(LogPathKey),
	}
}

func resolveTLS() *TLS {
	return &TLS{
		Cert:   viperInstance.GetString(TLSCertKey),
		Key:    viperInstance.GetString(TLSKeyKey),
		CACert: viperInstance.GetString(CATLSCertKey),
	}
}

func resolveProcess() *Process {
	return &Process{
		LiveBuffer:   viperInstance.GetInt(ProcessLiveBufferKey),
		MaxLineBytes: viperInstance.GetInt(ProcessMaxLineBytesKey),
		MergeStderr:  viperInstance.GetBool(ProcessMergeStderrKey),
		WorkDir:      viperInstance.GetString(ProcessWorkDirKey),
	}
}
