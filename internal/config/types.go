package config

import "time"

type (
	Config struct {
		Log             *Log
		Server          *Server
		TLS             *TLS
		Process         *Process
		ShutdownTimeout time.Duration
	}

	Log struct {
		Level string
		Path  string
	}

	// Server holds listen addresses. An empty address disables that listener.
	Server struct {
		HTTPAddress string
		GRPCAddress string
	}

	// TLS holds PEM contents, not file paths. All three must be set to enable mutual TLS.
	TLS struct {
		Cert   string
		Key    string
		CACert string
	}

	Process struct {
		LiveBuffer   int
		MaxLineBytes int
		MergeStderr  bool
		WorkDir      string
	}

	ClientConfig struct {
		API            string
		HTTPAddress    string
		GRPCAddress    string
		TLS            *TLS
		RequestTimeout time.Duration
	}
)
