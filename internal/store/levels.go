package store

import (
	"log/slog"
	"strconv"
)

// previousLevelPrefix namespaces the per-gauge last-observed level scalars.
const previousLevelPrefix = "previous-level:"

// PreviousLevels persists one last-observed level per gauge, used solely to
// detect range-transition edges. Each record is overwritten every check; no
// history is kept beyond one sample.
type PreviousLevels struct {
	kv     KV
	logger *slog.Logger
}

// NewPreviousLevels wraps kv with the previous-level namespace.
func NewPreviousLevels(kv KV, logger *slog.Logger) *PreviousLevels {
	return &PreviousLevels{kv: kv, logger: logger}
}

// Previous returns the last recorded level for a gauge. Absent or malformed
// records report false.
func (p *PreviousLevels) Previous(gaugeID string) (float64, bool) {
	raw, ok, err := p.kv.Get(previousLevelPrefix + gaugeID)
	if err != nil {
		p.logger.Warn("failed to read previous level", "gauge", gaugeID, "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	level, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		p.logger.Warn("malformed previous level, ignoring", "gauge", gaugeID, "error", err)
		return 0, false
	}
	return level, true
}

// Record overwrites the stored level for a gauge. Persistence failures are
// logged, never fatal.
func (p *PreviousLevels) Record(gaugeID string, level float64) {
	v := strconv.FormatFloat(level, 'f', -1, 64)
	if err := p.kv.Set(previousLevelPrefix+gaugeID, []byte(v)); err != nil {
		p.logger.Warn("failed to store previous level", "gauge", gaugeID, "error", err)
	}
}
