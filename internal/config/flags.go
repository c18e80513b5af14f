package config

import "time"

const (
	ConfigPathKey = "config"
	LogLevelKey   = "log_level"
	LogPathKey    = "log_path"

	HTTPAddressKey = "http_address"
	AddressKey     = "address"
	APIKey         = "api"

	TLSCertKey   = "tls_cert"
	TLSKeyKey    = "tls_key"
	CATLSCertKey = "ca_tls_cert"

	ProcessLiveBufferKey   = "process_live_buffer"
	ProcessMaxLineBytesKey = "process_max_line_bytes"
	ProcessMergeStderrKey  = "process_merge_stderr"
	ProcessWorkDirKey      = "process_work_dir"

	ShutdownTimeoutKey = "shutdown_timeout"
	RequestTimeoutKey  = "request_timeout"
)

const (
	DefLogLevel        = "info"
	DefHTTPAddress     = "127.0.0.1:8080"
	DefAddress         = "localhost:50051"
	DefAPI             = APIHTTP
	DefShutdownTimeout = 10 * time.Second
	DefRequestTimeout  = 15 * time.Second

	APIHTTP = "http"
	APIGRPC = "grpc"
)
