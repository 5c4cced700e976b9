package roster

import "time"

// GuardProfile describes a single guard eligible for assignment. It is an
// immutable value: once constructed via NewGuardProfile its Skills and
// Roles sets are never mutated.
type GuardProfile struct {
	GuardID         string
	Name            string
	Skills          map[string]struct{}
	Roles           map[string]struct{}
	MaxHoursPerWeek *float64
	Priority        int
}

// NewGuardProfile builds a GuardProfile from ordinary slices, deduplicating
// skills and roles into sets. Insertion order of skills/roles is not
// preserved or meaningful.
func NewGuardProfile(guardID, name string, skills, roles []string, maxHoursPerWeek *float64, priority int) GuardProfile {
	return GuardProfile{
		GuardID:         guardID,
		Name:            name,
		Skills:          toSet(skills),
		Roles:           toSet(roles),
		MaxHoursPerWeek: maxHoursPerWeek,
		Priority:        priority,
	}
}

// HasSkill reports whether the guard declares the given skill.
func (g GuardProfile) HasSkill(skill string) bool {
	_, ok := g.Skills[skill]
	return ok
}

// RoleSet returns the union of the guard's declared roles and skills, which
// is the set used when matching slot role requirements (spec: "A guard's
// role set is the union of its declared roles and its skills").
func (g GuardProfile) RoleSet() map[string]struct{} {
	union := make(map[string]struct{}, len(g.Roles)+len(g.Skills))
	for r := range g.Roles {
		union[r] = struct{}{}
	}
	for s := range g.Skills {
		union[s] = struct{}{}
	}
	return union
}

// DemandSlot represents a demand requirement for a contiguous block of
// time. It is an immutable value constructed via NewDemandSlot.
type DemandSlot struct {
	SlotID        string
	Start         time.Time
	End           time.Time
	RequiredGuards int
	RequiredSkill  string // empty means "no skill required"
	RequiredRoles  map[string]int
}

// NewDemandSlot builds a DemandSlot, copying the RequiredRoles map so the
// caller's map can be mutated afterward without affecting the slot.
func NewDemandSlot(slotID string, start, end time.Time, requiredGuards int, requiredSkill string, requiredRoles map[string]int) DemandSlot {
	roles := make(map[string]int, len(requiredRoles))
	for k, v := range requiredRoles {
		roles[k] = v
	}
	return DemandSlot{
		SlotID:         slotID,
		Start:          start,
		End:            end,
		RequiredGuards: requiredGuards,
		RequiredSkill:  requiredSkill,
		RequiredRoles:  roles,
	}
}

// DurationHours returns the slot's length in hours.
func (s DemandSlot) DurationHours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// DayIndex returns an ordinal comparable for the slot's start local
// calendar day, used for consecutive-day grouping. Days are numbered
// monotonically (like Python's date.toordinal()) so that arithmetic across
// month and year boundaries stays meaningful.
func (s DemandSlot) DayIndex() int {
	y, m, d := s.Start.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, s.Start.Location())
	return int(day.Unix() / 86400)
}

// RequiredTotal returns the slot's effective staffing requirement:
// max(RequiredGuards, sum of RequiredRoles values).
func (s DemandSlot) RequiredTotal() int {
	sum := 0
	for _, c := range s.RequiredRoles {
		sum += c
	}
	if sum > s.RequiredGuards {
		return sum
	}
	return s.RequiredGuards
}

func toSet(vals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
