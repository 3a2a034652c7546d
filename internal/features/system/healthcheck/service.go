package system_healthcheck

import (
	"fmt"

	"clienttrack/internal/storage"
	cache_utils "clienttrack/internal/util/cache"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type HealthcheckService struct{}

type HealthStatus struct {
	Status            string  `json:"status"`
	DiskUsedPercent   float64 `json:"diskUsedPercent"`
	DiskFreeBytes     uint64  `json:"diskFreeBytes"`
	MemoryUsedPercent float64 `json:"memoryUsedPercent"`
	MemoryFreeBytes   uint64  `json:"memoryFreeBytes"`
}

// IsAvailable probes every dependency the request path needs.
func (s *HealthcheckService) IsAvailable() error {
	if err := storage.GetDb().Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if err := s.testCacheConnection(); err != nil {
		return fmt.Errorf("cache check failed: %w", err)
	}

	return nil
}

func (s *HealthcheckService) GetHealthStatus() (*HealthStatus, error) {
	if err := s.IsAvailable(); err != nil {
		return nil, err
	}

	status := &HealthStatus{Status: "ok"}

	diskUsage, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}

	status.DiskUsedPercent = diskUsage.UsedPercent
	status.DiskFreeBytes = diskUsage.Free

	memoryUsage, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}

	status.MemoryUsedPercent = memoryUsage.UsedPercent
	status.MemoryFreeBytes = memoryUsage.Available

	return status, nil
}

func (s *HealthcheckService) testCacheConnection() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache connection test panicked: %v", r)
		}
	}()

	cache_utils.TestCacheConnection()
	return nil
}
