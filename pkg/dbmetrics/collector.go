package dbmetrics

import "time"

// collectPoolStatsInterval период опроса статистики connection pool
const collectPoolStatsInterval = 10 * time.Second

// collectPoolStats периодически снимает статистику connection pool
// и публикует ее в gauge-метрики. Завершается по закрытию stopCh
func (d *DB) collectPoolStats(dbName string, stopCh <-chan struct{}) {
	ticker := time.NewTicker(collectPoolStatsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBConnectionsOpen.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			d.metrics.DBConnectionsInUse.WithLabelValues(dbName).Set(float64(stats.InUse))
			d.metrics.DBConnectionsIdle.WithLabelValues(dbName).Set(float64(stats.Idle))
		case <-stopCh:
			return
		}
	}
}
