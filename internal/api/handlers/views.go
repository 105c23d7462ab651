package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/siriassis-creator/Sit-logistics-app/internal/fleetview"
)

// viewQuery reads the shared derived-view query parameters. The reference
// time for alert predicates is bound here, at the edge, so everything
// below it stays pure.
func viewQuery(c *gin.Context) fleetview.Query {
	return fleetview.Query{
		SearchTerm:   c.Query("search"),
		StatusFilter: c.Query("status"),
		AlertOnly:    c.Query("alertOnly") == "true",
		Now:          time.Now(),
	}
}

func groupByParam(c *gin.Context, fallback fleetview.GroupBy) fleetview.GroupBy {
	switch c.Query("groupBy") {
	case "date":
		return fleetview.GroupByDate
	case "status":
		return fleetview.GroupByStatus
	}
	return fallback
}

func deriveGroups(records []fleetview.Record, q fleetview.Query, groupBy fleetview.GroupBy, statusOrder []string) []fleetview.Group {
	exp := fleetview.NewExpandState(fleetview.DefaultExpand)
	return fleetview.DeriveView(records, q, groupBy, statusOrder, exp)
}
