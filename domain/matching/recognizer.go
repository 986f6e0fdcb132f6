package matching

import "github.com/google/uuid"

// Recognize runs Match for every probe independently and collects the hits
// into a duplicate-free set, in first-seen order. Two faces of the same
// person in one image therefore yield a single identity.
//
// Empty probes, an empty roster, or zero hits all produce an empty result:
// "nobody recognized" is not an error. Recognize never touches any store.
func Recognize(probes [][]float32, roster []RosterEntry, threshold float64) ([]uuid.UUID, error) {
	var recognized []uuid.UUID
	seen := make(map[uuid.UUID]struct{})

	for _, probe := range probes {
		id, ok, err := Match(probe, roster, threshold)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		recognized = append(recognized, id)
	}

	return recognized, nil
}
