package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-manager-form/internal/infrastructure/metrics"
)

const (
	maxLogBodySize  = 1 << 12 // 4 KB
	HeaderRequestID = "X-Request-ID"
)

// sensitive body keys replaced in logs; the wire payload is never touched
var maskedKeys = []string{"password"}

type loggingTransport struct {
	next     http.RoundTripper
	logger   *zap.Logger
	mCounter *prometheus.CounterVec
}

// NewHTTPClient returns a client that logs and counts every request. A zero
// timeout keeps the transport default.
func NewHTTPClient(logger *zap.Logger, mCounter *prometheus.CounterVec, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: NewLoggingTransport(http.DefaultTransport, logger, mCounter),
		Timeout:   timeout,
	}
}

func NewLoggingTransport(next http.RoundTripper, logger *zap.Logger, mCounter *prometheus.CounterVec) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger, mCounter: mCounter}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	body := requestBody(req)

	resp, err := t.next.RoundTrip(req)

	if t.mCounter != nil {
		t.mCounter.WithLabelValues(metrics.APIRequests).Inc()
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(HeaderRequestID)),
		zap.Duration("duration", time.Since(start)),
		zap.String("body", body),
	}
	if err != nil {
		t.logger.Warn("HTTP request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	t.logger.Info("HTTP request", append(fields, zap.Int("status", resp.StatusCode))...)

	return resp, nil
}

func requestBody(req *http.Request) string {
	if req.Body == nil || req.GetBody == nil {
		return ""
	}
	rc, err := req.GetBody()
	if err != nil {
		return ""
	}
	defer rc.Close()

	b, _ := io.ReadAll(io.LimitReader(rc, maxLogBodySize))

	return maskBody(b)
}

func maskBody(b []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return string(b)
	}

	masked := false
	for _, k := range maskedKeys {
		if _, ok := obj[k]; ok {
			obj[k] = "***"
			masked = true
		}
	}
	if !masked {
		return string(b)
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return string(b)
	}
	return string(out)
}
