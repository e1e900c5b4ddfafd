package comps

import "github.com/slabworks/comps-cli/internal/model"

// Label derives the confidence signal from which tier matched and how many
// comps were found.
func Label(tier model.TierLabel, count int) model.Confidence {
	if tier == model.TierExact && count >= 6 {
		return model.ConfidenceHigh
	}
	if (tier == model.TierExact || tier == model.TierNoGrade) && count >= 3 {
		return model.ConfidenceMed
	}
	if count >= 3 {
		return model.ConfidenceLow
	}
	return model.ConfidenceVeryLow
}
