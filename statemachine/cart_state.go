package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// Transition defines a valid cart state change and which role can perform it
type Transition struct {
	From models.CartStatus
	To   models.CartStatus
	Role models.Role
}

// validTransitions is the authoritative state machine definition.
// Any identified role may place an order on its own pending cart;
// cancellation is restricted to managers and admins, and only an admin
// completes a cart by attaching its payment method.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusOrdered, Role: models.RoleMember},
	{From: models.StatusPending, To: models.StatusOrdered, Role: models.RoleManager},
	{From: models.StatusPending, To: models.StatusOrdered, Role: models.RoleAdmin},

	{From: models.StatusOrdered, To: models.StatusCancelled, Role: models.RoleManager},
	{From: models.StatusOrdered, To: models.StatusCancelled, Role: models.RoleAdmin},

	{From: models.StatusOrdered, To: models.StatusCompleted, Role: models.RoleAdmin},
}

type transitionKey struct {
	From models.CartStatus
	To   models.CartStatus
	Role models.Role
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.CartStatus) []models.CartStatus {
	var nexts []models.CartStatus
	seen := map[models.CartStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given role can move a cart from one state to another
func CanTransition(from, to models.CartStatus, role models.Role) error {
	key := transitionKey{From: from, To: to, Role: role}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for role '" + string(role) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.CartStatus) string {
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

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
