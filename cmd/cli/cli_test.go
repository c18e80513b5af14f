package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/grpcapi"
	"github.com/SanjoDeundiak/process-supervisor/internal/httpapi"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startServers serves one runner over both APIs and returns the flags pointing the CLI at them.
func startServers(t *testing.T) map[string][]string {
	t.Helper()

	r := runner.NewRunner(nil, runner.DefaultSettings())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, r.Shutdown(ctx))
	})

	ts := httptest.NewServer(httpapi.NewServer(httpapi.Parameters{Runner: r}).Handler())
	t.Cleanup(ts.Close)

	lis, err := grpcapi.Listen("127.0.0.1:0")
	require.NoError(t, err)
	srv := grpcapi.NewGRPCServer(lis, grpcapi.NewProcessRunnerServiceServer(r, nil), nil, nil)
	go func() {
		_ = srv.Serve()
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	return map[string][]string{
		"http": {"--api", "http", "--http-address", strings.TrimPrefix(ts.URL, "http://")},
		"grpc": {"--api", "grpc", "--address", srv.Addr().String()},
	}
}

func run(t *testing.T, flags []string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(append([]string{}, flags...), args...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestCLI(t *testing.T) {
	servers := startServers(t)

	for _, api := range []string{"http", "grpc"} {
		t.Run(api, func(tt *testing.T) {
			flags := servers[api]

			out, _, err := run(tt, flags, "start", "--", "sh", "-c", "echo one; echo two")
			require.NoError(tt, err)
			id := strings.TrimSpace(out)
			require.NotEmpty(tt, id)

			out, _, err = run(tt, flags, "wait", id)
			require.NoError(tt, err)
			assert.Equal(tt, "done 0\n", out)

			out, _, err = run(tt, flags, "logs", id)
			require.NoError(tt, err)
			assert.Equal(tt, "one\ntwo\n", out)

			out, _, err = run(tt, flags, "status", id)
			require.NoError(tt, err)
			assert.Contains(tt, out, id)
			assert.Contains(tt, out, "done 0")

			out, _, err = run(tt, flags, "list")
			require.NoError(tt, err)
			assert.Contains(tt, out, id)

			out, _, err = run(tt, flags, "stop", id)
			require.NoError(tt, err)
			assert.Equal(tt, id+"\n", out)

			_, _, err = run(tt, flags, "status", id)
			assert.Error(tt, err)
		})
	}
}

func TestCLI_StartSingleArgumentIsSplit(t *testing.T) {
	flags := startServers(t)["http"]

	out, _, err := run(t, flags, "start", "echo hello")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	_, _, err = run(t, flags, "wait", id)
	require.NoError(t, err)

	out, _, err = run(t, flags, "logs", id)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestCLI_LogsFollow(t *testing.T) {
	flags := startServers(t)["grpc"]

	out, _, err := run(t, flags, "start", "--", "sh", "-c", "sleep 0.3; echo late")
	require.NoError(t, err)
	id := strings.TrimSpace(out)

	out, _, err = run(t, flags, "logs", "--follow", id)
	require.NoError(t, err)
	assert.Equal(t, "late\n", out)
}

func TestCLI_Errors(t *testing.T) {
	flags := startServers(t)["http"]

	_, _, err := run(t, flags, "start")
	assert.Error(t, err)

	_, _, err = run(t, flags, "status")
	assert.Error(t, err)

	_, _, err = run(t, []string{"--api", "carrier-pigeon"}, "list")
	assert.Error(t, err)
}

func TestPrintProcessTable(t *testing.T) {
	var buf bytes.Buffer
	printProcessTable(&buf, []v1.Process{
		{UUID: "a", Status: "running", Pid: 42, Cmd: "sleep 10"},
		{UUID: "b", Status: "done 0", Cmd: "echo hello"},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "ID")
	assert.Contains(t, lines[1], "COMMAND")
	assert.Contains(t, lines[3], "running")
	assert.Contains(t, lines[3], "42")
	assert.Contains(t, lines[4], "echo hello")
	for _, line := range lines {
		assert.Equal(t, len(lines[0]), len(line))
	}

	buf.Reset()
	printProcessTable(&buf, nil)
	assert.Len(t, strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), 3)
}
