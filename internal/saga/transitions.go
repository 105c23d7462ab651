package saga

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/siriassis-creator/Sit-logistics-app/internal/models"
	"github.com/siriassis-creator/Sit-logistics-app/internal/store"
)

// Transitions holds the paired vehicle/job write sequences. Vehicle
// status and the lifecycle of the ticket or order referencing it are kept
// consistent by convention only: the writes are independent store calls,
// so the vehicle write always goes first. A failure in between leaves
// the truck blocked rather than double-bookable.
type Transitions struct {
	Store  store.Store
	Runner *Runner
}

// OpenTicket inserts a Pending maintenance ticket and moves the
// referenced vehicle to Maintenance. Returns the new ticket id.
func (t *Transitions) OpenTicket(ctx context.Context, ticket models.MaintenanceTicket) (string, error) {
	var id string
	steps := []Step{
		{
			Name: "mark vehicle under maintenance",
			Run: func(ctx context.Context) error {
				return t.Store.Update(ctx, "fleet", ticket.TruckID,
					bson.M{"status": models.VehicleMaintenance})
			},
		},
		{
			Name: "create maintenance ticket",
			Run: func(ctx context.Context) error {
				var err error
				id, err = t.Store.Create(ctx, "maintenance", ticket)
				return err
			},
		},
	}
	return id, t.Runner.Run(ctx, "open maintenance ticket", steps)
}

// ApplyTicketStatus moves a ticket to newStatus, patching extra fields
// along with it, and releases the vehicle when the ticket reaches a
// terminal state.
func (t *Transitions) ApplyTicketStatus(ctx context.Context, ticket models.MaintenanceTicket, newStatus string, patch bson.M) error {
	var steps []Step
	if ticket.TruckID != "" && (newStatus == models.MaintenanceCompleted || newStatus == models.MaintenanceRejected) {
		steps = append(steps, Step{
			Name: "release vehicle",
			Run: func(ctx context.Context) error {
				return t.Store.Update(ctx, "fleet", ticket.TruckID,
					bson.M{"status": models.VehicleAvailable})
			},
		})
	}
	if patch == nil {
		patch = bson.M{}
	}
	patch["status"] = newStatus
	steps = append(steps, Step{
		Name: "update maintenance ticket",
		Run: func(ctx context.Context) error {
			return t.Store.Update(ctx, "maintenance", ticket.ID, patch)
		},
	})
	return t.Runner.Run(ctx, "maintenance status transition", steps)
}

// DispatchOrder sends a draft order out: the assigned truck goes In
// Transit, then the order moves to Awaiting Acceptance.
func (t *Transitions) DispatchOrder(ctx context.Context, order models.Order) error {
	var steps []Step
	if order.TruckID != "" {
		steps = append(steps, Step{
			Name: "mark vehicle in transit",
			Run: func(ctx context.Context) error {
				return t.Store.Update(ctx, "fleet", order.TruckID,
					bson.M{"status": models.VehicleInTransit})
			},
		})
	}
	steps = append(steps, Step{
		Name: "update order status",
		Run: func(ctx context.Context) error {
			return t.Store.Update(ctx, "orders", order.ID,
				bson.M{"status": models.OrderAwaiting})
		},
	})
	return t.Runner.Run(ctx, "dispatch order", steps)
}

// ApplyOrderStatus moves an order to newStatus, patching extra fields
// along with it, and releases the truck when the order reaches a terminal
// state.
func (t *Transitions) ApplyOrderStatus(ctx context.Context, order models.Order, newStatus string, patch bson.M) error {
	var steps []Step
	if order.TruckID != "" && (newStatus == models.OrderCompleted || newStatus == models.OrderCancelled) {
		steps = append(steps, Step{
			Name: "release vehicle",
			Run: func(ctx context.Context) error {
				return t.Store.Update(ctx, "fleet", order.TruckID,
					bson.M{"status": models.VehicleAvailable})
			},
		})
	}
	if patch == nil {
		patch = bson.M{}
	}
	patch["status"] = newStatus
	steps = append(steps, Step{
		Name: "update order status",
		Run: func(ctx context.Context) error {
			return t.Store.Update(ctx, "orders", order.ID, patch)
		},
	})
	return t.Runner.Run(ctx, "order status transition", steps)
}
