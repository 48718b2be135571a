package actions

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const KindWebhook = "webhook"

// responses are kept in the step log, so cap what we read back
const maxWebhookResponse = 2048

/**
 * webhook calls an arbitrary outbound HTTP endpoint with a
 * templated body. Config: url (template), method (default POST),
 * body (template), content_type (default application/json).
 * The client timeout bounds the whole call; a hung endpoint fails
 * the step instead of blocking the worker indefinitely.
 */
type webhook struct {
	client *http.Client
}

func newWebhook(timeout time.Duration) *webhook {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &webhook{client: &http.Client{Timeout: timeout}}
}

func (w *webhook) Kind() string {
	return KindWebhook
}

func (w *webhook) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	urlTpl, _ := config.GetString("url")
	method, _ := config.GetString("method")
	bodyTpl, _ := config.GetString("body")
	contentType, _ := config.GetString("content_type")

	if method == "" {
		method = http.MethodPost
	}
	if contentType == "" {
		contentType = "application/json"
	}

	url := utils.Interpolate(urlTpl, runCtx)
	body := utils.Interpolate(bodyTpl, runCtx)

	if url == "" || utils.Unresolved(url) {
		return nil, errors.BadRequestf("webhook url not resolved: %q", urlTpl)
	}

	if testRun {
		return types.Data{
			"skipped": true,
			"action":  KindWebhook,
			"url":     url,
			"method":  method,
			"body":    body,
		}, nil
	}

	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	if err != nil {
		return nil, errors.Annotatef(err, "build webhook request for %s", url)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errors.Annotatef(err, "call webhook %s", url)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxWebhookResponse))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("webhook %s returned status %d: %s", url, resp.StatusCode, string(respBody))
	}

	return types.Data{
		"url":         url,
		"status_code": resp.StatusCode,
		"response":    string(respBody),
	}, nil
}
