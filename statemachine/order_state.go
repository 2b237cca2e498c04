package statemachine

import (
	"errors"

	"restaurant-api/models"
)

// validTransitions is the authoritative lifecycle definition. The kitchen
// moves an order strictly forward; cancellation and completion are handled
// outside the table because they remove the row instead of advancing it.
var validTransitions = []struct {
	From models.OrderStatus
	To   models.OrderStatus
}{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusConfirmed, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusPacking},
	{From: models.StatusPacking, To: models.StatusOutForDelivery},
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// markerStatus maps the settable status keys of the status-update operation
// to the lifecycle stage each one represents. "pending" is deliberately
// absent: it is only populated at creation.
var markerStatus = map[string]models.OrderStatus{
	"confirmed":      models.StatusConfirmed,
	"preparing":      models.StatusPreparing,
	"packing":        models.StatusPacking,
	"outForDelivery": models.StatusOutForDelivery,
}

// markerColumn maps status keys to their marker column names.
var markerColumn = map[string]string{
	"confirmed":      "confirmed",
	"preparing":      "preparing",
	"packing":        "packing",
	"outForDelivery": "out_for_delivery",
}

// MarkerStatus resolves a status key to its target stage. ok is false for
// any key outside the settable set.
func MarkerStatus(key string) (models.OrderStatus, bool) {
	s, ok := markerStatus[key]
	return s, ok
}

// MarkerColumn returns the database column holding the marker for a key.
func MarkerColumn(key string) string {
	return markerColumn[key]
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether the lifecycle may move from one stage to
// another. Re-setting the current stage is rejected, which makes every
// marker write-once.
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
