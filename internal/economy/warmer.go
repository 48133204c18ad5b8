package economy

import (
	"context"
	"time"

	"finance_dashboard/internal/logger"
)

// StartWarming периодически дёргает точку входа, чтобы кэш не остывал и
// первый утренний запрос не платил за полный веер загрузок. Безопасно при
// любом числе конкурентных обращений: точка входа сама однополётная.
// Блокирует до отмены ctx; запускать в отдельной горутине.
func StartWarming(ctx context.Context, svc *Service, interval time.Duration) {
	log := logger.WithComponent("warmer").WithField("interval", interval.String())
	log.Info("Starting cache warmer")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Debug("Warming market overview cache")
			svc.GetEconomicIndicators(ctx)

		case <-ctx.Done():
			log.Info("Stopping warmer by context")
			return
		}
	}
}
