package domain

import "fmt"

// ReconcilePictures merges a caller-supplied picture list onto the current
// one during a bulk step update.
//
// A nil changed list means the caller did not supply pictures at all; the
// current list passes through as a defensive copy. A non-nil list is a full
// replacement keyed by picture name:
//
//   - Current pictures named in changed keep their server-owned Name and
//     Location and take the caller-owned Caption and ShownInGallery from the
//     matching change entry.
//   - Current pictures not named in changed are dropped from the result —
//     callers are expected to resend the full list on every update.
//   - Change entries whose name matches no current picture are ignored;
//     pictures can only be added through the dedicated add-picture operation.
//   - More than one change entry with the same name is ambiguous and fails
//     with ErrValidation rather than picking one.
//
// The result preserves the order of current.
func ReconcilePictures(current, changed []Picture) ([]Picture, error) {
	if changed == nil {
		out := make([]Picture, len(current))
		copy(out, current)
		return out, nil
	}

	out := make([]Picture, 0, len(current))
	for _, cur := range current {
		var match *Picture
		matches := 0
		for i := range changed {
			if changed[i].Name == cur.Name {
				match = &changed[i]
				matches++
			}
		}
		switch {
		case matches > 1:
			return nil, fmt.Errorf("%w: more than one picture named %q", ErrValidation, cur.Name)
		case matches == 1:
			out = append(out, Picture{
				Name:           cur.Name,
				Location:       cur.Location,
				Caption:        match.Caption,
				ShownInGallery: match.ShownInGallery,
			})
		}
	}

	return out, nil
}
