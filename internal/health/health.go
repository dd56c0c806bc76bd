package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

// HealthChecker reports on the service's own dependencies. db and redisPing
// may be nil when those backends are not configured.
type HealthChecker struct {
	db        *pgxpool.Pool
	redisPing func() bool
	started   time.Time
}

type HealthStatus struct {
	Status   string           `json:"status"`
	Database ComponentHealth  `json:"database"`
	Redis    *ComponentHealth `json:"redis,omitempty"`
	Host     *HostStats       `json:"host,omitempty"`
	Uptime   string           `json:"uptime,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

type HostStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used_bytes"`
	MemoryTotal   uint64  `json:"memory_total_bytes"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskUsed      uint64  `json:"disk_used_bytes"`
	DiskTotal     uint64  `json:"disk_total_bytes"`
}

func NewHealthChecker(db *pgxpool.Pool, redisPing func() bool) *HealthChecker {
	return &HealthChecker{db: db, redisPing: redisPing, started: time.Now()}
}

// CheckBasic only looks at the database; a service without one is healthy
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := StatusHealthy
	if dbHealth.Status == StatusUnhealthy {
		status = StatusUnhealthy
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
	}
}

// CheckDetailed adds redis and host resource usage. Redis being down degrades
// caching only, so it never makes the service unhealthy.
func (h *HealthChecker) CheckDetailed() HealthStatus {
	status := h.CheckBasic()

	redisHealth := ComponentHealth{Status: StatusDisabled}
	if h.redisPing != nil {
		start := time.Now()
		ok := h.redisPing()
		redisHealth.ResponseTime = time.Since(start).Milliseconds()
		redisHealth.Status = StatusUnhealthy
		if ok {
			redisHealth.Status = StatusHealthy
		}
	}
	status.Redis = &redisHealth
	status.Host = collectHostStats()
	status.Uptime = time.Since(h.started).Round(time.Second).String()
	return status
}

func (h *HealthChecker) checkDatabase() ComponentHealth {
	if h.db == nil {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       StatusUnhealthy,
			ResponseTime: responseTime,
		}
	}

	return ComponentHealth{
		Status:       StatusHealthy,
		ResponseTime: responseTime,
	}
}

func collectHostStats() *HostStats {
	stats := &HostStats{}
	if percents, err := cpu.Percent(200*time.Millisecond, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsed = vm.Used
		stats.MemoryTotal = vm.Total
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
		stats.DiskUsed = du.Used
		stats.DiskTotal = du.Total
	}
	return stats
}
