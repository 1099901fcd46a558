package statemachine

import (
	"testing"

	"food-ordering-api/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  models.CartStatus
		to    models.CartStatus
		role  models.Role
		allow bool
	}{
		{"member places own order", models.StatusPending, models.StatusOrdered, models.RoleMember, true},
		{"manager places order", models.StatusPending, models.StatusOrdered, models.RoleManager, true},
		{"admin places order", models.StatusPending, models.StatusOrdered, models.RoleAdmin, true},

		{"manager cancels ordered", models.StatusOrdered, models.StatusCancelled, models.RoleManager, true},
		{"admin cancels ordered", models.StatusOrdered, models.StatusCancelled, models.RoleAdmin, true},
		{"member cannot cancel", models.StatusOrdered, models.StatusCancelled, models.RoleMember, false},

		{"admin completes ordered", models.StatusOrdered, models.StatusCompleted, models.RoleAdmin, true},
		{"manager cannot complete", models.StatusOrdered, models.StatusCompleted, models.RoleManager, false},

		{"no skipping pending", models.StatusPending, models.StatusCompleted, models.RoleAdmin, false},
		{"no cancelling pending", models.StatusPending, models.StatusCancelled, models.RoleAdmin, false},
		{"cancelled is terminal", models.StatusCancelled, models.StatusOrdered, models.RoleAdmin, false},
		{"completed is terminal", models.StatusCompleted, models.StatusCancelled, models.RoleAdmin, false},
		{"no reopening ordered", models.StatusOrdered, models.StatusPending, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.role)
			if tt.allow && err != nil {
				t.Errorf("CanTransition(%s, %s, %s) = %v, want allowed", tt.from, tt.to, tt.role, err)
			}
			if !tt.allow && err == nil {
				t.Errorf("CanTransition(%s, %s, %s) allowed, want rejected", tt.from, tt.to, tt.role)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	nexts := ValidTransitionsFrom(models.StatusOrdered)
	if len(nexts) != 2 {
		t.Fatalf("ORDERED has %d next states %v, want 2", len(nexts), nexts)
	}

	if nexts := ValidTransitionsFrom(models.StatusCancelled); len(nexts) != 0 {
		t.Fatalf("CANCELLED has next states %v, want none", nexts)
	}
	if nexts := ValidTransitionsFrom(models.StatusCompleted); len(nexts) != 0 {
		t.Fatalf("COMPLETED has next states %v, want none", nexts)
	}
}
