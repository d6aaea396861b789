package session

import "taqueando-console/internal/domain"

// MenuItem is an entry of the console navigation.
type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

var (
	itemDashboard = MenuItem{Key: "dashboard", Label: "Inicio", Path: "/"}
	itemOrders    = MenuItem{Key: "orders", Label: "Pedidos", Path: "/pedidos"}
	itemCash      = MenuItem{Key: "cash", Label: "Resumen de caja", Path: "/caja"}
	itemArqueos   = MenuItem{Key: "arqueos", Label: "Historial de arqueos", Path: "/arqueos"}
	itemCancelled = MenuItem{Key: "cancelled", Label: "Pedidos cancelados", Path: "/pedidos/cancelados"}
	itemHistory   = MenuItem{Key: "history", Label: "Historial de pedidos", Path: "/pedidos/historial"}
	itemStats     = MenuItem{Key: "stats", Label: "Estadísticas", Path: "/estadisticas"}
	itemLogs      = MenuItem{Key: "logs", Label: "Registro de actividad", Path: "/logs"}
)

// Menu returns the navigation for role. Unknown roles get nothing.
func Menu(role domain.Role) []MenuItem {
	switch role {
	case domain.RoleAdmin:
		return []MenuItem{itemDashboard, itemOrders, itemCash, itemArqueos, itemCancelled, itemHistory, itemStats, itemLogs}
	case domain.RoleEmployee:
		return []MenuItem{itemDashboard, itemOrders, itemCash, itemCancelled, itemLogs}
	default:
		return []MenuItem{}
	}
}

// CanAccess reports whether role sees the menu entry with the given key.
func CanAccess(role domain.Role, key string) bool {
	for _, item := range Menu(role) {
		if item.Key == key {
			return true
		}
	}
	return false
}
