package game

// Role identifies which seat of a room a connection occupies. Territory cells
// carry the role of their current owner.
type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

func (r Role) Opponent() Role {
	if r == RoleHost {
		return RoleGuest
	}
	return RoleHost
}

// Territory is the tug-of-war track. The host starts owning the low half, the
// guest the high half; the boundary sits between len/2-1 and len/2.
type Territory []Role

// NewTerritory returns an evenly split track. size must be even.
func NewTerritory(size int) Territory {
	t := make(Territory, size)
	for i := range t {
		if i < size/2 {
			t[i] = RoleHost
		} else {
			t[i] = RoleGuest
		}
	}
	return t
}

// Capture flips the first opponent-owned cell found scanning outward from the
// boundary, alternating sides (for size 14: 6, 7, 5, 8, 4, 9, ...). Returns
// the flipped index, or false when the opponent holds nothing.
func (t Territory) Capture(by Role) (int, bool) {
	mid := len(t) / 2
	for d := 0; d < mid; d++ {
		for _, idx := range [2]int{mid - 1 - d, mid + d} {
			if t[idx] != by {
				t[idx] = by
				return idx, true
			}
		}
	}
	return -1, false
}

func (t Territory) Count(of Role) int {
	n := 0
	for _, owner := range t {
		if owner == of {
			n++
		}
	}
	return n
}

// Swept reports whether the given role owns every cell.
func (t Territory) Swept(by Role) bool {
	return t.Count(by) == len(t)
}

func (t Territory) Clone() Territory {
	c := make(Territory, len(t))
	copy(c, t)
	return c
}
