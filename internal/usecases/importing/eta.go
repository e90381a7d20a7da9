package importing

import (
	"math"
	"time"

	"github.com/vfg2006/ga-importer/internal/domain"
)

const secondsPerDay = 86400

// EstimatedDaysLeftToFinish estima quantos dias faltam para a importação
// terminar, a partir da taxa de dias importados por dia de execução. O
// segundo retorno é false quando a estimativa é desconhecida.
func EstimatedDaysLeftToFinish(status *domain.ImportStatus, rangeStartFallback *domain.Date, now time.Time) (int, bool) {
	if status == nil || status.LastDateImported == nil || status.ImportRangeEnd == nil {
		return 0, false
	}

	rangeStart := status.ImportRangeStart
	if rangeStart == nil {
		rangeStart = rangeStartFallback
	}
	if rangeStart == nil {
		return 0, false
	}

	daysRunning := math.Floor(float64(now.Unix()-status.ImportStartTime) / secondsPerDay)
	if daysRunning <= 0 {
		return 0, false
	}

	lastImported := status.LastDateImported.Unix()
	totalDaysLeft := math.Floor(float64(status.ImportRangeEnd.Unix()-lastImported) / secondsPerDay)
	totalDaysImported := math.Floor(float64(lastImported-rangeStart.Unix()) / secondsPerDay)

	rate := totalDaysImported / daysRunning
	if rate <= 0 {
		return 0, false
	}

	return int(math.Max(0, math.Ceil(totalDaysLeft/rate))), true
}
