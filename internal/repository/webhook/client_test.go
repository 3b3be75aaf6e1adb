package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/NordCoder/uptime-monitor/internal/domain/notification"
)

func payload() notification.WebhookPayload {
	details := "Endpoint returned error status code: '503 Service Unavailable'"
	return notification.WebhookPayload{
		Check: &check.Check{
			ID:        uuid.New(),
			Frequency: check.Hourly,
			URL:       "https://example.com",
			Method:    check.MethodGET,
		},
		Status:  history.StatusError,
		Details: &details,
	}
}

func TestPostWebhookOK(t *testing.T) {
	var got map[string]any
	var contentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := New(time.Second, "uptime-monitor/test")
	p := payload()
	require.NoError(t, c.PostWebhook(context.Background(), ts.URL, p))

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "Error", got["status"])
	assert.Equal(t, *p.Details, got["details"])
	chk, ok := got["check"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, p.Check.ID.String(), chk["id"])
}

func TestPostWebhookNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	err := New(time.Second, "").PostWebhook(context.Background(), ts.URL, payload())
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, http.StatusInternalServerError, de.StatusCode)
}

func TestPostWebhookUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := New(time.Second, "").PostWebhook(context.Background(), url, payload())
	var de *DeliveryError
	require.True(t, errors.As(err, &de))
	assert.Zero(t, de.StatusCode)
	assert.Error(t, de.Err)
}
