package domain

import "time"

// GroupWindow is the correlation window for treating tickets as parts of
// the same guest request.
const GroupWindow = 5 * time.Minute

// SameGroup reports whether two tickets represent the same guest request:
// identical guest name and room number with creation times at most
// GroupWindow apart. The symmetric time-distance rule is used everywhere;
// a floor-bucketed key would split adjacent requests straddling a window
// boundary.
func SameGroup(a, b *Ticket) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Guest.Name != b.Guest.Name || a.RoomNumber != b.RoomNumber {
		return false
	}
	diff := a.CreatedAt.Sub(b.CreatedAt)
	if diff < 0 {
		diff = -diff
	}
	return diff <= GroupWindow
}

// GroupFor projects the group a ticket belongs to out of a candidate pool.
// Recomputed on demand; groups are never persisted.
func GroupFor(ticket *Ticket, pool []Ticket) []Ticket {
	var group []Ticket
	for i := range pool {
		if SameGroup(ticket, &pool[i]) {
			group = append(group, pool[i])
		}
	}
	return group
}

// GroupCategories returns the distinct categories present in a group,
// in first-seen order.
func GroupCategories(group []Ticket) []ServiceCategory {
	seen := make(map[ServiceCategory]struct{}, len(group))
	var categories []ServiceCategory
	for i := range group {
		if _, ok := seen[group[i].Category]; ok {
			continue
		}
		seen[group[i].Category] = struct{}{}
		categories = append(categories, group[i].Category)
	}
	return categories
}

// IsMultiService reports whether a ticket's group spans more than one
// department, driving the multi-service banner on the board.
func IsMultiService(ticket *Ticket, pool []Ticket) bool {
	return len(GroupCategories(GroupFor(ticket, pool))) > 1
}
