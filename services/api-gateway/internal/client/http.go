package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

type remoteError struct {
	Error string `json:"error"`
}

// ErrRemote — отказ внутреннего сервиса с его собственным сообщением.
type ErrRemote struct {
	Status  int
	Message string
}

func (e *ErrRemote) Error() string {
	return fmt.Sprintf("remote status %d: %s", e.Status, e.Message)
}

// doJSON — общий JSON-обмен с внутренними сервисами.
func doJSON(ctx context.Context, hc *http.Client, method, url string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var rerr remoteError
		if json.NewDecoder(resp.Body).Decode(&rerr) == nil && rerr.Error != "" {
			return &ErrRemote{Status: resp.StatusCode, Message: rerr.Error}
		}
		return &ErrRemote{Status: resp.StatusCode, Message: "internal service error"}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
