package tools

import "context"

// ScanKind selects which simulated value a scan returns.
type ScanKind string

const (
	ScanDTC  ScanKind = "dtc"
	ScanRPM  ScanKind = "rpm"
	ScanTemp ScanKind = "temp"
)

// ScanData is the simulated OBD-II payload. Codes is populated for dtc
// scans, RPM for rpm scans, CoolantTemp for temp scans.
type ScanData struct {
	Codes       map[string]string `json:"codes"`
	RPM         int               `json:"rpm"`
	CoolantTemp float64           `json:"coolant_temp"`
}

// DiagnosticsClient drives the vehicle scan simulator.
type DiagnosticsClient struct {
	client *Client
}

// NewDiagnosticsClient wraps a tool client for diagnostics calls.
func NewDiagnosticsClient(client *Client) *DiagnosticsClient {
	return &DiagnosticsClient{client: client}
}

// Simulate runs one simulated scan of the requested kind.
func (c *DiagnosticsClient) Simulate(ctx context.Context, kind ScanKind) (ScanData, error) {
	req := struct {
		Query string `json:"query"`
	}{Query: string(kind)}

	var resp struct {
		envelope
		Data ScanData `json:"data"`
	}
	if err := c.client.call(ctx, "diagnostics.simulate", req, &resp); err != nil {
		return ScanData{}, err
	}
	return resp.Data, nil
}

// ExecResult holds the captured output of a sandbox run.
type ExecResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// SandboxClient executes arbitrary code in an isolated environment.
type SandboxClient struct {
	client *Client
}

// NewSandboxClient wraps a tool client for sandbox calls.
func NewSandboxClient(client *Client) *SandboxClient {
	return &SandboxClient{client: client}
}

// Execute runs code in the sandbox and returns its captured output.
func (c *SandboxClient) Execute(ctx context.Context, code string) (ExecResult, error) {
	req := struct {
		Code string `json:"code"`
	}{Code: code}

	var resp struct {
		envelope
		ExecResult
	}
	if err := c.client.call(ctx, "sandbox.execute", req, &resp); err != nil {
		return ExecResult{}, err
	}
	return resp.ExecResult, nil
}

// Metrics is a system resource snapshot.
type Metrics struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedGB  float64 `json:"memory_used_gb"`
	MemoryTotalGB float64 `json:"memory_total_gb"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskFreeGB    float64 `json:"disk_free_gb"`
}

// ResourceReport is the monitor's snapshot plus any active alerts.
type ResourceReport struct {
	Metrics Metrics  `json:"metrics"`
	Alerts  []string `json:"alerts"`
}

// ResourcesClient queries system metrics for the health monitor and the
// /status command.
type ResourcesClient struct {
	client *Client
}

// NewResourcesClient wraps a tool client for resource-monitor calls.
func NewResourcesClient(client *Client) *ResourcesClient {
	return &ResourcesClient{client: client}
}

// Monitor returns the current metrics snapshot and alert list.
func (c *ResourcesClient) Monitor(ctx context.Context) (ResourceReport, error) {
	var resp struct {
		envelope
		ResourceReport
	}
	if err := c.client.call(ctx, "resources.monitor", struct{}{}, &resp); err != nil {
		return ResourceReport{}, err
	}
	return resp.ResourceReport, nil
}
