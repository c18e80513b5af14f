package client

import (
	"bufio"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net/http"
	"strings"

	v1 "github.com/SanjoDeundiak/process-supervisor/api/v1"
	"github.com/SanjoDeundiak/process-supervisor/pkg/lib"
	"github.com/go-resty/resty/v2"
)

const processesPath = "/api/v1/processes"

type httpClient struct {
	client *resty.Client
}

// NewHTTPClient returns a Client for the HTTP API at address (host:port or a full URL).
// A non-nil tlsConfig switches to https with the given client certificate.
func NewHTTPClient(address string, tlsConfig *tls.Config) Client {
	baseURL := address
	if !strings.Contains(address, "://") {
		scheme := "http://"
		if tlsConfig != nil {
			scheme = "https://"
		}
		baseURL = scheme + address
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if tlsConfig != nil {
		client.SetTLSClientConfig(tlsConfig)
	}

	return &httpClient{client: client}
}

func (c *httpClient) List(ctx context.Context) ([]v1.Process, error) {
	var processes []v1.Process

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&processes).
		SetError(&v1.ErrorResponse{}).
		Get(processesPath)
	if err := responseError(resp, err); err != nil {
		return nil, err
	}

	return processes, nil
}

func (c *httpClient) Create(ctx context.Context, cmd string, args []string) (*v1.Process, error) {
	process := &v1.Process{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(v1.CreateProcessRequest{Cmd: cmd, Args: args}).
		SetResult(process).
		SetError(&v1.ErrorResponse{}).
		Post(processesPath)
	if err := responseError(resp, err); err != nil {
		return nil, err
	}

	return process, nil
}

func (c *httpClient) Get(ctx context.Context, id string) (*v1.Process, error) {
	process := &v1.Process{}

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(process).
		SetError(&v1.ErrorResponse{}).
		Get(processesPath + "/{id}")
	if err := responseError(resp, err); err != nil {
		return nil, err
	}

	return process, nil
}

func (c *httpClient) LiveLog(ctx context.Context, id string, fn func(line string) error) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetHeader("Accept", "text/plain").
		SetDoNotParseResponse(true).
		Get(processesPath + "/{id}/live_log")
	if err != nil {
		return err
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		data, _ := io.ReadAll(body)
		return statusError(resp.StatusCode(), errorMessage(data))
	}

	reader := bufio.NewReader(body)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if err := fn(line); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

func (c *httpClient) Delete(ctx context.Context, id string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetError(&v1.ErrorResponse{}).
		Delete(processesPath + "/{id}")

	return responseError(resp, err)
}

func (c *httpClient) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

func responseError(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	message := ""
	if e, ok := resp.Error().(*v1.ErrorResponse); ok && e != nil {
		message = e.Message
	}
	if message == "" {
		message = errorMessage(resp.Body())
	}

	return statusError(resp.StatusCode(), message)
}

func errorMessage(body []byte) string {
	return strings.TrimSpace(string(body))
}

func statusError(code int, message string) error {
	var kind error
	switch code {
	case http.StatusNotFound:
		kind = lib.ErrNotFound
	case http.StatusBadRequest:
		kind = lib.ErrInvalidCommand
	case http.StatusForbidden:
		kind = lib.ErrPermissionDenied
	}

	return &ResponseError{Status: http.StatusText(code), Message: message, kind: kind}
}
