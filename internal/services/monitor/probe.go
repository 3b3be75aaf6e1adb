package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
)

const maxBodyBytes = 10 << 20

// Result of one probe. Err is nil for an Ok outcome.
type Result struct {
	Err        error
	Latency    time.Duration
	FinishedAt time.Time
}

func (r Result) Status() history.Status {
	if r.Err != nil {
		return history.StatusError
	}
	return history.StatusOk
}

func (r Result) Details() *string {
	if r.Err == nil {
		return nil
	}
	s := r.Err.Error()
	return &s
}

// HTTPProber makes exactly one request per Probe call and never retries.
type HTTPProber struct {
	Client    *http.Client
	UserAgent string
	Clock     Clock
}

func (p *HTTPProber) Probe(ctx context.Context, c *check.Check) Result {
	start := p.Clock.Now()
	var err error
	switch c.Method {
	case check.MethodHEAD:
		err = p.head(ctx, c.URL)
	case check.MethodGET:
		err = p.get(ctx, c)
	default:
		err = fmt.Errorf("unsupported method %q", c.Method)
	}
	end := p.Clock.Now()
	return Result{Err: err, Latency: end.Sub(start), FinishedAt: end}
}

func (p *HTTPProber) do(ctx context.Context, method check.Method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, string(method), url, nil)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		drain(resp)
		return nil, &StatusCodeError{Code: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func (p *HTTPProber) head(ctx context.Context, url string) error {
	resp, err := p.do(ctx, check.MethodHEAD, url)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// get ignores the response body unless an expected body is configured.
func (p *HTTPProber) get(ctx context.Context, c *check.Check) error {
	resp, err := p.do(ctx, check.MethodGET, c.URL)
	if err != nil {
		return err
	}
	if !c.HasExpectedBody() {
		drain(resp)
		return nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return &DecodeError{URL: c.URL, Err: err}
	}
	if len(raw) > maxBodyBytes {
		return &DecodeError{URL: c.URL, Err: fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)}
	}
	got, err := decodeJSON(raw)
	if err != nil {
		return &DecodeError{URL: c.URL, Err: err}
	}
	want, err := decodeJSON(c.ExpectedBody)
	if err != nil {
		return fmt.Errorf("stored expected_body is not valid JSON: %w", err)
	}
	if reflect.DeepEqual(normalize(got), normalize(want)) {
		return nil
	}
	return &MismatchError{Got: compact(got), Expected: compact(want)}
}

// decodeJSON reads exactly one JSON value and keeps numbers as json.Number.
func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return v, nil
}

type exactInt string

// normalize makes integers compare exactly and other numbers by float value.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case json.Number:
		if n, ok := new(big.Int).SetString(t.String(), 10); ok {
			return exactInt(n.String())
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}

func compact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
