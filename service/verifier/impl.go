package verifier

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	bCtx "github.com/x-xyz/checkout/base/ctx"
	"github.com/x-xyz/checkout/base/log"
	"github.com/x-xyz/checkout/base/metrics"
	"github.com/x-xyz/checkout/domain/purchase"
)

const defaultTimeout = 10 * time.Second

var met = metrics.New("verifier")

func NewClient(cfg *ClientCfg) purchase.Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &client{
		client:   cfg.HttpClient,
		timeout:  timeout,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.ApiKey,
	}
}

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apiKey   string
}

func (c *client) Submit(ctx bCtx.Ctx, a purchase.Attestation) error {
	defer met.BumpTime("submit.time").End()

	if len(c.endpoint) == 0 {
		return ErrMissingEndpoint
	}

	body, err := json.Marshal(a)
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	status, err := c.post(ctx, c.endpoint, body)
	if err != nil {
		met.BumpSum("submit.failed", 1)
		return err
	}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	case http.StatusConflict:
		// the authority already holds this attestation
		ctx.WithField("sessionId", a.SessionId).Warn("attestation already known")
		return nil
	}

	met.BumpSum("submit.failed", 1, "status", http.StatusText(status))
	ctx.WithFields(log.Fields{
		"url":        c.endpoint,
		"statusCode": status,
		"sessionId":  a.SessionId,
	}).Error("unexpected status code")
	return ErrStatusCodeNotOk
}

func (c *client) post(ctx bCtx.Ctx, url string, body []byte) (int, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if len(c.apiKey) > 0 {
		req.Header.Set(HeaderApiKey, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return 0, err
	}
	defer resp.Body.Close()
	// drain for connection reuse
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
