package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/NordCoder/uptime-monitor/internal/domain/check"
	"github.com/NordCoder/uptime-monitor/internal/domain/history"
	"github.com/NordCoder/uptime-monitor/internal/repository/memory"
)

type testEnv struct {
	srv   *httptest.Server
	store *memory.Store
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	uc := NewUsecase(store, store, store, 100, func() time.Time { return now })
	s := NewServer(zap.NewNop(), uc, "1.2", nil)
	srv := httptest.NewServer(s.Router([]string{"*"}))
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: store}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, e.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (e *testEnv) create(t *testing.T, body string) check.Check {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/checks", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[check.Check](t, resp)
}

func TestCreateAndReadCheck(t *testing.T) {
	e := newEnv(t)

	c := e.create(t, `{"frequency":"Hourly","url":"https://example.com/status","method":"GET","expected_body":{"ok":true}}`)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, check.Hourly, c.Frequency)
	assert.JSONEq(t, `{"ok":true}`, string(c.ExpectedBody))
	assert.Nil(t, c.Hook)

	resp := e.do(t, http.MethodGet, "/checks/"+c.ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[check.Check](t, resp)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.URL, got.URL)

	resp = e.do(t, http.MethodGet, "/checks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]check.Check](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCreateRejectsBadInput(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{
			name:   "head with expected body",
			body:   `{"frequency":"Daily","url":"https://example.com","method":"HEAD","expected_body":{"a":1}}`,
			detail: "Expected body parameter is only allowed with GET requests.",
		},
		{name: "unknown frequency", body: `{"frequency":"Monthly","url":"https://example.com","method":"GET"}`},
		{name: "missing url", body: `{"frequency":"Daily","method":"GET"}`, detail: "url is required"},
		{name: "bad json", body: `{"frequency":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := e.do(t, http.MethodPost, "/checks", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[Error](t, resp)
			assert.Equal(t, http.StatusBadRequest, body.Status)
			if tc.detail != "" {
				assert.Equal(t, tc.detail, body.Detail)
			}
		})
	}

	resp := e.do(t, http.MethodGet, "/checks", "")
	assert.Empty(t, decode[[]check.Check](t, resp))
}

func TestUnknownCheckIs404(t *testing.T) {
	e := newEnv(t)
	id := uuid.New()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/checks/" + id.String(), ""},
		{http.MethodPut, "/checks/" + id.String(), `{"url":"https://example.org"}`},
		{http.MethodDelete, "/checks/" + id.String(), ""},
		{http.MethodGet, "/checks/" + id.String() + "/history", ""},
		{http.MethodDelete, "/checks/" + id.String() + "/history", ""},
	} {
		resp := e.do(t, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusNotFound, resp.StatusCode, tc.method+" "+tc.path)
		body := decode[Error](t, resp)
		assert.Equal(t, "Check not found with id '"+id.String()+"'", body.Detail)
	}

	resp := e.do(t, http.MethodGet, "/checks/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateIsTriState(t *testing.T) {
	e := newEnv(t)
	c := e.create(t, `{"frequency":"Hourly","url":"https://example.com","method":"GET","expected_body":[1,2],"hook":"https://hooks.example.com/x"}`)
	path := "/checks/" + c.ID.String()

	// Absent keys are kept.
	resp := e.do(t, http.MethodPut, path, `{"frequency":"Weekly"}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	got, err := e.store.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, check.Weekly, got.Frequency)
	assert.JSONEq(t, `[1,2]`, string(got.ExpectedBody))
	require.NotNil(t, got.Hook)

	// Explicit null clears.
	resp = e.do(t, http.MethodPut, path, `{"hook":null,"expected_body":null}`)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	got, err = e.store.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Hook)
	assert.Nil(t, got.ExpectedBody)
	assert.Equal(t, check.Weekly, got.Frequency)
}

func TestUpdateRejectsHeadWithStoredBody(t *testing.T) {
	e := newEnv(t)
	c := e.create(t, `{"frequency":"Hourly","url":"https://example.com","method":"GET","expected_body":{"x":1}}`)

	resp := e.do(t, http.MethodPut, "/checks/"+c.ID.String(), `{"method":"HEAD"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Expected body parameter is only allowed with GET requests.", decode[Error](t, resp).Detail)

	got, err := e.store.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, check.MethodGET, got.Method)
}

func TestHistoryEndpoints(t *testing.T) {
	e := newEnv(t)
	c := e.create(t, `{"frequency":"Hourly","url":"https://example.com","method":"HEAD"}`)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	msg := "Endpoint returned error status code: '503 Service Unavailable'"
	require.NoError(t, e.store.Append(ctx, history.New(c.ID, history.StatusOk, nil, base)))
	require.NoError(t, e.store.Append(ctx, history.New(c.ID, history.StatusError, &msg, base.Add(time.Hour))))

	path := "/checks/" + c.ID.String() + "/history"
	resp := e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decode[[]history.History](t, resp)
	require.Len(t, rows, 2)
	assert.Equal(t, history.StatusError, rows[0].Status)
	require.NotNil(t, rows[0].Details)
	assert.Equal(t, msg, *rows[0].Details)
	assert.Equal(t, history.StatusOk, rows[1].Status)
	assert.Nil(t, rows[1].Details)

	resp = e.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]history.History](t, resp))

	resp = e.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCheckDropsHistory(t *testing.T) {
	e := newEnv(t)
	c := e.create(t, `{"frequency":"Daily","url":"https://example.com","method":"GET"}`)
	require.NoError(t, e.store.Append(context.Background(), history.New(c.ID, history.StatusOk, nil, time.Now())))

	resp := e.do(t, http.MethodDelete, "/checks/"+c.ID.String(), "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	rows, err := e.store.ListByCheck(context.Background(), c.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestVersionAndHealth(t *testing.T) {
	e := newEnv(t)

	resp := e.do(t, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"version": "1.2"}, decode[map[string]string](t, resp))

	resp = e.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
