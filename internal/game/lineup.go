package game

// Lineup is the best eligible battle team assembled from a collection:
// one card per role, highest rating wins the slot.
type Lineup struct {
	Slots map[Role]CardInstance
	Power int // sum of slot ratings
}

// BestLineup selects the highest-rated owned card for each required role.
// If any role has no eligible card the assembly fails with an
// IncompleteRosterError naming exactly the missing roles.
func BestLineup(collection []CardInstance) (Lineup, error) {
	slots := make(map[Role]CardInstance, len(Roles()))
	for _, ci := range collection {
		cur, ok := slots[ci.Def.Role]
		if !ok || ci.Def.Rating > cur.Def.Rating {
			slots[ci.Def.Role] = ci
		}
	}

	var missing []Role
	for _, p := range Roles() {
		if _, ok := slots[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return Lineup{}, &IncompleteRosterError{Missing: missing}
	}

	power := 0
	for _, ci := range slots {
		power += ci.Def.Rating
	}
	return Lineup{Slots: slots, Power: power}, nil
}
