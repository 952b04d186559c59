package mcp_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/localrivet/gomcp/client"
	"github.com/localrivet/gomcp/transport/embedded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcp "github.com/siteflow-tools/siteflow-mcp"
	"github.com/siteflow-tools/siteflow-mcp/internal/config"
	"github.com/siteflow-tools/siteflow-mcp/internal/siteflow"
)

// stubSiteflow is a minimal stateful stand-in for the remote API: it
// issues tokens and remembers flows created through bulk-create
type stubSiteflow struct {
	mu       sync.Mutex
	flows    []map[string]any
	requests atomic.Int32
}

func (s *stubSiteflow) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/ext/api/2.0/authenticate":
			_, _ = io.WriteString(w, `{"accessToken":"tok-1"}`)
		case r.URL.Path == "/ext/api/2.0/flows" &&
			r.Method == http.MethodGet:
			s.mu.Lock()
			defer s.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": s.flows,
			})
		case r.URL.Path == "/ext/api/2.0/flows/bulk-create":
			var env struct {
				Data []struct {
					FlowProperties map[string]any `json:"flowProperties"`
				} `json:"data"`
			}
			_ = json.NewDecoder(r.Body).Decode(&env)

			s.mu.Lock()
			created := make([]map[string]any, 0, len(env.Data))
			for _, d := range env.Data {
				flow := map[string]any{
					"identifier": "flow-" + strconv.Itoa(len(s.flows)+1),
					"name":       d.FlowProperties["name"],
					"type":       d.FlowProperties["type"],
				}
				s.flows = append(s.flows, flow)
				created = append(created, flow)
			}
			s.mu.Unlock()

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": created,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"not found"}`)
		}
	})
}

func newToolClient(t *testing.T, handler http.Handler) (
	client.Client, *httptest.Server,
) {
	t.Helper()

	httpStub := httptest.NewServer(handler)
	t.Cleanup(httpStub.Close)

	cfg := config.NewDefaultConfig()
	cfg.ServerURL = httpStub.URL
	cfg.ClientID = "client-1"
	cfg.ClientSecret = "secret-1"
	cfg.ProjectID = "proj-1"
	cfg.MaxAttempts = 1
	require.NoError(t, cfg.Validate())

	s, err := mcp.NewServer(siteflow.New(cfg, nil), nil)
	require.NoError(t, err)

	serverTransport, clientTransport := embedded.NewTransportPair()
	srv := s.MCPServer().AsEmbedded(serverTransport)
	go func() {
		_ = srv.Run()
	}()

	c, err := client.NewClient(
		"embedded://", client.WithEmbedded(clientTransport),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, httpStub
}

func callToolText(t *testing.T, c client.Client, name string,
	args map[string]any,
) string {
	t.Helper()

	result, err := c.CallTool(name, args)
	require.NoError(t, err)

	resultMap, ok := result.(map[string]any)
	require.True(t, ok)

	content, ok := resultMap["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)

	item, ok := content[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "text", item["type"])

	text, ok := item["text"].(string)
	require.True(t, ok)
	return text
}

func TestCreateFlowThenListIncludesFlow(t *testing.T) {
	stub := &stubSiteflow{}
	c, _ := newToolClient(t, stub.handler())

	created := callToolText(t, c, "create_flow", map[string]any{
		"flow_name":  "X",
		"project_id": "P",
	})
	assert.Contains(t, created, `"name":"X"`)

	listing := callToolText(t, c, "get_flows", map[string]any{})

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(listing), &payload))
	flows, ok := payload["data"].([]any)
	require.True(t, ok)
	require.Len(t, flows, 1)
	flow, ok := flows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "X", flow["name"])
	assert.Equal(t, "GENERIC", flow["type"])
}

func TestUpdateStepTextPassthrough(t *testing.T) {
	var gotBody []byte
	var updates atomic.Int32
	c, _ := newToolClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/ext/api/2.0/authenticate" {
				_, _ = io.WriteString(w, `{"accessToken":"tok-1"}`)
				return
			}
			require.Equal(t,
				"/ext/api/2.0/steps/S/update-text-block", r.URL.Path)
			updates.Add(1)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			gotBody = body
			_, _ = io.WriteString(w, `{"echo":true}`)
		},
	))

	text := callToolText(t, c, "update_step_text", map[string]any{
		"step_id":      "S",
		"text_content": "<p>hi</p>",
	})

	assert.Equal(t, int32(1), updates.Load())
	assert.JSONEq(t, `{"data":"<p>hi</p>"}`, string(gotBody))
	assert.JSONEq(t, `{"echo":true}`, text)
}

func TestMissingArgumentFailsBeforeNetwork(t *testing.T) {
	stub := &stubSiteflow{}
	c, _ := newToolClient(t, stub.handler())

	tests := []struct {
		tool    string
		args    map[string]any
		missing string
	}{
		{"get_flow_phases", map[string]any{}, "flow_id"},
		{"create_flow",
			map[string]any{"flow_name": "X"}, "project_id"},
		{"create_flow",
			map[string]any{"project_id": "P"}, "flow_name"},
		{"add_phase_to_flow",
			map[string]any{"flow_id": "F"}, "phase_name"},
		{"add_step_to_phase",
			map[string]any{"phase_id": "PH"}, "step_name"},
		{"update_step_text",
			map[string]any{"step_id": "S"}, "text_content"},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"_missing_"+tt.missing, func(t *testing.T) {
			_, err := c.CallTool(tt.tool, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}

	assert.Equal(t, int32(0), stub.requests.Load(),
		"validation failures must not reach the network")
}

func TestAuthenticateTool(t *testing.T) {
	stub := &stubSiteflow{}
	c, _ := newToolClient(t, stub.handler())

	text := callToolText(t, c, "authenticate", map[string]any{})
	assert.JSONEq(t,
		`{"authenticated":true,"projectId":"proj-1"}`, text)
	assert.Equal(t, int32(1), stub.requests.Load())
}

func TestTokenReuseAcrossTools(t *testing.T) {
	var authCalls atomic.Int32
	c, _ := newToolClient(t, http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Path == "/ext/api/2.0/authenticate" {
				authCalls.Add(1)
				_, _ = io.WriteString(w, `{"accessToken":"tok-1"}`)
				return
			}
			_, _ = io.WriteString(w, `{"data":[]}`)
		},
	))

	callToolText(t, c, "authenticate", map[string]any{})
	callToolText(t, c, "get_flows", map[string]any{})
	callToolText(t, c, "get_flow_phases",
		map[string]any{"flow_id": "F"})

	assert.Equal(t, int32(1), authCalls.Load())
}

func TestUnknownToolRejected(t *testing.T) {
	stub := &stubSiteflow{}
	c, _ := newToolClient(t, stub.handler())

	_, err := c.CallTool("delete_flow", map[string]any{"flow_id": "F"})
	require.Error(t, err)
	assert.Equal(t, int32(0), stub.requests.Load())
}

func TestAPISpecTool(t *testing.T) {
	stub := &stubSiteflow{}
	c, _ := newToolClient(t, stub.handler())

	text := callToolText(t, c, "api_spec", map[string]any{})
	assert.Contains(t, text, "Siteflow External API")
	assert.Contains(t, text, "/flows/bulk-create")
	assert.Equal(t, int32(0), stub.requests.Load(),
		"the spec is embedded, not fetched")
}
