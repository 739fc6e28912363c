package temporal

import "github.com/cobaltlane/hindsight/core"

// FilterByWindow keeps candidates that are relevant within the window.
// A candidate passes when either:
//   - its meeting date lies inside the window, or
//   - its validity interval [ValidFrom, ValidTo] overlaps the window,
//     where a zero ValidTo means the validity never expires.
//
// Candidates with neither a meeting date nor a ValidFrom are dropped:
// nothing ties them to the requested time frame. Relative order of the
// survivors is preserved.
func FilterByWindow(candidates []core.Candidate, window core.DateWindow) []core.Candidate {
	kept := make([]core.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Record == nil {
			continue
		}

		if !c.Record.MeetingDate.IsZero() && window.Contains(c.Record.MeetingDate) {
			kept = append(kept, c)
			continue
		}

		if !c.Record.ValidFrom.IsZero() && window.Overlaps(c.Record.ValidFrom, c.Record.ValidTo) {
			kept = append(kept, c)
		}
	}
	return kept
}
