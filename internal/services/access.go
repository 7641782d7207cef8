package services

import (
	"github.com/soumya813/SwaadGharKa/internal/models"
)

// Actor identifies who is performing an operation. It is derived from the
// verified credential, never from request bodies.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == string(models.RoleAdmin)
}

// CanViewOrder allows the owning customer or an admin.
func CanViewOrder(actor Actor, order *models.Order) bool {
	return actor.IsAdmin() || actor.ID == order.CustomerID
}

// CanMutateOrder applies the same owner-or-admin rule before any lifecycle
// mutation. Status updates additionally require admin, enforced at the
// operation itself.
func CanMutateOrder(actor Actor, order *models.Order) bool {
	return actor.IsAdmin() || actor.ID == order.CustomerID
}
