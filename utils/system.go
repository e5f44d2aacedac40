package utils

import (
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v3/cpu"
)

// OptimalWorkerCount determines how many browser sessions to run based on
// config and system resources.
func OptimalWorkerCount(configValue string) int {
	// Manual override takes precedence.
	if manualWorkers, err := strconv.Atoi(configValue); err == nil && manualWorkers > 0 {
		return manualWorkers
	}

	if configValue != "auto" {
		log.Warnf("Invalid workers value '%s'. Defaulting to 'auto' mode.", configValue)
	}

	// Logical cores: scraping is mostly I/O bound, so hyper-threading helps.
	cpuCores, err := cpu.Counts(true)
	if err != nil {
		log.Warn("Could not detect CPU cores. Falling back to 1 worker.")
		return 1
	}

	// Each worker owns a full browser session, which is memory heavy.
	// Half the cores, capped, keeps the machine responsive.
	optimalCount := cpuCores / 2
	if optimalCount < 1 {
		optimalCount = 1
	}
	if optimalCount > 8 {
		optimalCount = 8
	}

	log.Infof("System has %d logical cores. Using %d browser session(s).", cpuCores, optimalCount)
	return optimalCount
}
