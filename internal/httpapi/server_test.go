package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/internal/config"
	"github.com/SanjoDeundiak/process-supervisor/internal/testcert"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

func newTestRunner(t *testing.T) *runner.Runner {
	t.Helper()

	r := runner.NewRunner(nil, runner.DefaultSettings())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, r.Shutdown(ctx))
	})

	return r
}

func newTestServer(t *testing.T) string {
	t.Helper()

	server := NewServer(Parameters{Runner: newTestRunner(t)})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return ts.URL
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = strings.NewReader(raw)
		} else {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusMultipleChoices {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func createProcess(t *testing.T, client *http.Client, base, cmd string) v1.Process {
	t.Helper()

	var process v1.Process
	code := doJSON(t, client, http.MethodPost, base+"/api/v1/processes", v1.CreateProcessRequest{Cmd: cmd}, &process)
	require.Equal(t, http.StatusCreated, code)

	return process
}

func waitForDone(t *testing.T, base, id string) v1.Process {
	t.Helper()

	deadline := time.Now().Add(waitFor)
	for time.Now().Before(deadline) {
		var process v1.Process
		code := doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes/"+id, nil, &process)
		require.Equal(t, http.StatusOK, code)
		if process.Status != "running" {
			return process
		}
		time.Sleep(tick)
	}
	t.Fatalf("process %s did not finish in time", id)

	return v1.Process{}
}

func TestHealth(t *testing.T) {
	base := newTestServer(t)

	var body map[string]string
	code := doJSON(t, http.DefaultClient, http.MethodGet, base+HealthPath, nil, &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateProcess_EchoHello(t *testing.T) {
	base := newTestServer(t)

	created := createProcess(t, http.DefaultClient, base, "echo hello")
	assert.NotEmpty(t, created.UUID)
	assert.Equal(t, "echo hello", created.Cmd)
	assert.Equal(t, "running", created.Status)
	assert.Empty(t, created.Log)

	process := waitForDone(t, base, created.UUID)
	assert.Equal(t, "done 0", process.Status)
	assert.Equal(t, "hello\n", process.Log)
	assert.NotNil(t, process.EndedAt)
}

func TestCreateProcess_ExplicitArgs(t *testing.T) {
	base := newTestServer(t)

	var created v1.Process
	code := doJSON(t, http.DefaultClient, http.MethodPost, base+"/api/v1/processes",
		v1.CreateProcessRequest{Cmd: "sh", Args: []string{"-c", "echo a b; exit 2"}}, &created)
	require.Equal(t, http.StatusCreated, code)

	process := waitForDone(t, base, created.UUID)
	assert.Equal(t, "done 2", process.Status)
	assert.Equal(t, "a b\n", process.Log)
}

func TestCreateProcess_BadRequest(t *testing.T) {
	base := newTestServer(t)

	for _, body := range []string{`not json`, `{}`, `{"cmd":""}`, `{"cmd":"   "}`, `{"cmd":"echo 'unterminated"}`} {
		code := doJSON(t, http.DefaultClient, http.MethodPost, base+"/api/v1/processes", body, nil)
		assert.Equal(t, http.StatusBadRequest, code, "body %s", body)
	}

	var list []v1.Process
	doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes", nil, &list)
	assert.Empty(t, list)
}

func TestCreateProcess_SpawnFailure(t *testing.T) {
	base := newTestServer(t)

	code := doJSON(t, http.DefaultClient, http.MethodPost, base+"/api/v1/processes", v1.CreateProcessRequest{Cmd: "/definitely/not/a/binary"}, nil)
	assert.Equal(t, http.StatusInternalServerError, code)

	var list []v1.Process
	doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes", nil, &list)
	assert.Empty(t, list)
}

func TestListProcesses(t *testing.T) {
	base := newTestServer(t)

	var list []v1.Process
	code := doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes", nil, &list)
	require.Equal(t, http.StatusOK, code)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first := createProcess(t, http.DefaultClient, base, "sleep 10")
	second := createProcess(t, http.DefaultClient, base, "echo hello")
	waitForDone(t, base, second.UUID)

	code = doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes", nil, &list)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, list, 2)

	statuses := map[string]string{}
	for _, process := range list {
		assert.Empty(t, process.Log)
		statuses[process.UUID] = process.Status
	}
	assert.Equal(t, "running", statuses[first.UUID])
	assert.Equal(t, "done 0", statuses[second.UUID])
}

func TestNotFound(t *testing.T) {
	base := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes/missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.DefaultClient, http.MethodDelete, base+"/api/v1/processes/missing", nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes/missing/live_log", nil, nil))
}

func TestDeleteProcess(t *testing.T) {
	base := newTestServer(t)

	created := createProcess(t, http.DefaultClient, base, "sleep 100")

	code := doJSON(t, http.DefaultClient, http.MethodDelete, base+"/api/v1/processes/"+created.UUID, nil, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code = doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes/"+created.UUID, nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLiveLog(t *testing.T) {
	base := newTestServer(t)

	created := createProcess(t, http.DefaultClient, base, "sh -c 'sleep 0.3; echo 1; echo 2; echo 3'")

	resp, err := http.Get(base + "/api/v1/processes/" + created.UUID + "/live_log")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", string(body))
}

func TestLiveLog_FinishedProcessEndsImmediately(t *testing.T) {
	base := newTestServer(t)

	created := createProcess(t, http.DefaultClient, base, "echo hello")
	waitForDone(t, base, created.UUID)

	resp, err := http.Get(base + "/api/v1/processes/" + created.UUID + "/live_log")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
}

func TestLiveLog_ClientCancel(t *testing.T) {
	base := newTestServer(t)

	created := createProcess(t, http.DefaultClient, base, "sh -c 'while true; do echo tick; sleep 0.05; done'")

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/v1/processes/"+created.UUID+"/live_log", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, len("tick\n"))
	_, err = io.ReadFull(resp.Body, buf)
	require.NoError(t, err)
	assert.Equal(t, "tick\n", string(buf))

	cancel()

	// the process keeps running after its viewer leaves
	var process v1.Process
	require.Equal(t, http.StatusOK, doJSON(t, http.DefaultClient, http.MethodGet, base+"/api/v1/processes/"+created.UUID, nil, &process))
	assert.Equal(t, "running", process.Status)
}

func mtlsClient(t *testing.T, bundle *testcert.Bundle, spiffeID string) *http.Client {
	t.Helper()

	certPEM, keyPEM := bundle.Client(t, spiffeID)
	tlsConfig, err := (&config.TLS{Cert: certPEM, Key: keyPEM, CACert: bundle.CACert}).ClientConfig()
	require.NoError(t, err)

	return &http.Client{Transport: &http.Transport{TLSClientConfig: tlsConfig}}
}

func TestMutualTLS_Ownership(t *testing.T) {
	bundle := testcert.New(t)

	serverTLS, err := (&config.TLS{Cert: bundle.ServerCert, Key: bundle.ServerKey, CACert: bundle.CACert}).ServerConfig()
	require.NoError(t, err)

	server := NewServer(Parameters{Runner: newTestRunner(t), RequireClientIdentity: true})
	ts := httptest.NewUnstartedServer(server.Handler())
	ts.TLS = serverTLS
	ts.StartTLS()
	t.Cleanup(ts.Close)
	base := ts.URL

	client1 := mtlsClient(t, bundle, "client1")
	client2 := mtlsClient(t, bundle, "client2")
	anonymous := mtlsClient(t, bundle, "")

	created := createProcess(t, client1, base, "sleep 10")
	assert.Equal(t, "client1", created.Owner)

	var list []v1.Process
	require.Equal(t, http.StatusOK, doJSON(t, client2, http.MethodGet, base+"/api/v1/processes", nil, &list))
	assert.Empty(t, list)
	require.Equal(t, http.StatusOK, doJSON(t, client1, http.MethodGet, base+"/api/v1/processes", nil, &list))
	assert.Len(t, list, 1)

	url := base + "/api/v1/processes/" + created.UUID
	assert.Equal(t, http.StatusForbidden, doJSON(t, client2, http.MethodGet, url, nil, nil))
	assert.Equal(t, http.StatusForbidden, doJSON(t, client2, http.MethodDelete, url, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, doJSON(t, anonymous, http.MethodGet, url, nil, nil))
	assert.Equal(t, http.StatusOK, doJSON(t, anonymous, http.MethodGet, base+HealthPath, nil, nil))

	assert.Equal(t, http.StatusOK, doJSON(t, client1, http.MethodGet, url, nil, nil))
	assert.Equal(t, http.StatusNoContent, doJSON(t, client1, http.MethodDelete, url, nil, nil))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, statusCode(runner.ErrClosed))
	assert.Equal(t, http.StatusInternalServerError, statusCode(io.EOF))
}
