package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(nil, server.URL, 0)
	require.NoError(t, err)
	return client
}

func TestChatQuery(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/tools/chat.query": `{"content":"Revisa la válvula IAC."}`,
	})
	chat := NewChatClient(newTestClient(t, server))

	content, err := chat.Query(context.Background(), ChatRequest{Prompt: "ralentí inestable"})
	require.NoError(t, err)
	assert.Equal(t, "Revisa la válvula IAC.", content)
}

func TestChatQueryErrorEnvelope(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/tools/chat.query": `{"error":"model overloaded"}`,
	})
	chat := NewChatClient(newTestClient(t, server))

	_, err := chat.Query(context.Background(), ChatRequest{Prompt: "hola"})
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "chat.query", toolErr.Tool)
	assert.Contains(t, toolErr.Message, "model overloaded")
}

func TestChatQueryRequiresPrompt(t *testing.T) {
	server := newTestServer(t, nil)
	chat := NewChatClient(newTestClient(t, server))

	_, err := chat.Query(context.Background(), ChatRequest{})
	require.Error(t, err)
}

func TestDiagnosticsSimulateDTC(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/tools/diagnostics.simulate": `{"status":"success","data":{"codes":{"P0505":"Mal funcionamiento del sistema de control de ralentí"}}}`,
	})
	diag := NewDiagnosticsClient(newTestClient(t, server))

	data, err := diag.Simulate(context.Background(), ScanDTC)
	require.NoError(t, err)
	require.Len(t, data.Codes, 1)
	assert.Contains(t, data.Codes, "P0505")
}

func TestMonitorReportsAlerts(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/tools/resources.monitor": `{"status":"success","metrics":{"cpu_percent":93.5,"memory_percent":41},"alerts":["CPU alta: 93.5%"]}`,
	})
	resources := NewResourcesClient(newTestClient(t, server))

	report, err := resources.Monitor(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 93.5, report.Metrics.CPUPercent, 0.01)
	require.Len(t, report.Alerts, 1)
}

func TestMalformedResponseIsToolError(t *testing.T) {
	server := newTestServer(t, map[string]string{
		"/v1/tools/memory.save": `this is not json`,
	})
	notes := NewNotesClient(newTestClient(t, server))

	err := notes.Save(context.Background(), "nota", "telegram_note")
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "memory.save", toolErr.Tool)
}

func TestRequestBodyCarriesArguments(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success","results":[]}`))
	}))
	t.Cleanup(server.Close)

	search := NewSearchClient(newTestClient(t, server))
	_, err := search.Parts(context.Background(), "sensor map", "ve")
	require.NoError(t, err)
	assert.Equal(t, "sensor map", got["part"])
	assert.Equal(t, "ve", got["region"])
}
