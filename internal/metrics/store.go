package metrics

import (
	"context"
	"time"

	"github.com/campusconnect/server/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreCollector exports per-entity record counts on scrape. Counting is a
// cheap map-size read on the memory store and a count(*) on postgres, so
// collecting on demand beats a background poll.
type StoreCollector struct {
	repo storage.Repository

	entityCount *prometheus.Desc
}

func NewStoreCollector(repo storage.Repository) *StoreCollector {
	return &StoreCollector{
		repo: repo,
		entityCount: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "entity_count"),
			"Current number of stored records per entity type",
			[]string{"entity"},
			nil,
		),
	}
}

func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entityCount
}

func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts := []struct {
		entity string
		count  func(context.Context) (int, error)
	}{
		{"accounts", c.repo.Accounts().Count},
		{"events", c.repo.Events().Count},
		{"registrations", c.repo.Registrations().Count},
	}

	for _, item := range counts {
		n, err := item.count(ctx)
		if err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.entityCount, prometheus.GaugeValue, float64(n), item.entity)
	}
}
