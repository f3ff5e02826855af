package board

import (
	"fmt"
	"sort"
	"time"

	"go-logistics-ws/internal/model"
)

type AlertType string

const (
	AlertLowStock         AlertType = "low-stock"
	AlertCapacityExceeded AlertType = "capacity-exceeded"
	AlertOverdueReturn    AlertType = "overdue-return"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// Alert is a derived fact about the current board, recomputed from
// scratch on every mutation and never stored.
type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ProductName string    `json:"product_name,omitempty"`
	LocationID  string    `json:"location_id,omitempty"`
}

// AlertConfig supplies the caller-owned knobs of the alert rules:
// reorder thresholds and the clock used for overdue checks.
type AlertConfig struct {
	// DefaultLowStock is the reorder threshold applied when no
	// per-product override exists.
	DefaultLowStock int
	// LowStock holds per-product reorder thresholds, keyed by product name.
	LowStock map[string]int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (cfg AlertConfig) threshold(product string) int {
	if t, ok := cfg.LowStock[product]; ok {
		return t
	}
	return cfg.DefaultLowStock
}

// ComputeAlerts scans the full snapshot and produces the current alert
// set, ordered by severity descending and then by discovery order
// (location order, then group order). Pure and stateless: calling it
// twice on the same snapshot yields the same slice.
func ComputeAlerts(s *Snapshot, cfg AlertConfig) []Alert {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	var alerts []Alert
	for _, ls := range s.Locations() {
		loc := ls.Location

		if loc.Capacity != nil && ls.Occupancy() >= *loc.Capacity {
			alerts = append(alerts, Alert{
				ID:         fmt.Sprintf("capacity:%s", loc.ID),
				Type:       AlertCapacityExceeded,
				Severity:   SeverityHigh,
				Title:      "Capacity reached",
				Message:    fmt.Sprintf("%s holds %d of %d containers", loc.Name, ls.Occupancy(), *loc.Capacity),
				LocationID: loc.ID,
			})
		}

		for _, g := range ls.Groups {
			if t := cfg.threshold(g.ProductName); t > 0 && g.Quantity() < t {
				alerts = append(alerts, Alert{
					ID:          fmt.Sprintf("low-stock:%s:%s:%s", loc.ID, g.ProductName, g.ContainerType),
					Type:        AlertLowStock,
					Severity:    SeverityMedium,
					Title:       "Low stock",
					Message:     fmt.Sprintf("%s (%s) at %s is down to %d", g.ProductName, g.ContainerType, loc.Name, g.Quantity()),
					ProductName: g.ProductName,
					LocationID:  loc.ID,
				})
			}

			if loc.Type != model.LocationCustomer {
				continue
			}
			for _, c := range g.Containers {
				if c.Status == model.StatusDelivered && c.DueAt != nil && c.DueAt.Before(now()) {
					alerts = append(alerts, Alert{
						ID:          fmt.Sprintf("overdue:%s", c.ID),
						Type:        AlertOverdueReturn,
						Severity:    SeverityHigh,
						Title:       "Overdue return",
						Message:     fmt.Sprintf("%s %s at %s was due back %s", g.ProductName, c.ContainerType, loc.Name, c.DueAt.Format("2006-01-02")),
						ProductName: g.ProductName,
						LocationID:  loc.ID,
					})
				}
			}
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts
}
