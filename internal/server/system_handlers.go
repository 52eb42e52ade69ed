package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/retail-agents/internal/di"
	"github.com/aristath/retail-agents/internal/scheduler"
	"github.com/aristath/retail-agents/internal/utils"
)

// SystemHandlers serves host and service status
type SystemHandlers struct {
	log         zerolog.Logger
	startupTime time.Time
	container   *di.Container

	// overridable in tests
	cpuPercent    func(ctx context.Context) (float64, error)
	memoryPercent func(ctx context.Context) (float64, error)
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, container *di.Container) *SystemHandlers {
	return &SystemHandlers{
		log:           log.With().Str("component", "system_handlers").Logger(),
		startupTime:   time.Now(),
		container:     container,
		cpuPercent:    hostCPUPercent,
		memoryPercent: hostMemoryPercent,
	}
}

// SystemStatusResponse is the body of GET /api/system/status
type SystemStatusResponse struct {
	Status          string             `json:"status"`
	UptimeSeconds   float64            `json:"uptime_seconds"`
	CPUPercent      float64            `json:"cpu_percent"`
	MemoryPercent   float64            `json:"memory_percent"`
	Goroutines      int                `json:"goroutines"`
	GoVersion       string             `json:"go_version"`
	DataSource      string             `json:"data_source"`
	ForecastMode    string             `json:"forecast_mode"`
	ParallelPricing bool               `json:"parallel_pricing"`
	ReportSchedule  string             `json:"report_schedule,omitempty"`
	LastReport      *scheduler.LastRun `json:"last_report,omitempty"`
	LastChecked     string             `json:"last_checked"`
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPct, err := h.cpuPercent(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	}
	memPct, err := h.memoryPercent(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
	}

	response := SystemStatusResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startupTime).Seconds(),
		CPUPercent:    cpuPct,
		MemoryPercent: memPct,
		Goroutines:    runtime.NumGoroutine(),
		GoVersion:     runtime.Version(),
		LastChecked:   time.Now().Format(time.RFC3339),
	}

	if cfg := h.container.Config; cfg != nil {
		response.DataSource = cfg.DataSource
		response.ForecastMode = cfg.ForecastMode
		response.ParallelPricing = cfg.ParallelPricing
		response.ReportSchedule = cfg.ReportSchedule
	}
	if job := h.container.ReportJob; job != nil {
		if last, ok := job.Last(); ok {
			response.LastReport = &last
		}
	}

	utils.WriteResponse(w, r, http.StatusOK, response, h.log)
}

// hostCPUPercent samples CPU usage over 100ms to keep the endpoint fast.
func hostCPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 100*time.Millisecond, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

func hostMemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}
