package intelligence

import "github.com/BharatAdaptive/munimji-go/pkg/config"

// Stage is the coarse lifecycle bucket derived from journey day. It is a
// pure mapping, not a stored transition: for a fixed first-seen anchor it
// only ever advances as wall-clock time does.
type Stage string

const (
	StageNewcomer Stage = "newcomer"
	StageExplorer Stage = "explorer"
	StageRegular  Stage = "regular"
	StagePartner  Stage = "partner"
)

// StageForDay maps whole elapsed days to a journey stage.
func StageForDay(day int) Stage {
	switch {
	case day <= config.NewcomerMaxDay:
		return StageNewcomer
	case day <= config.ExplorerMaxDay:
		return StageExplorer
	case day <= config.RegularMaxDay:
		return StageRegular
	default:
		return StagePartner
	}
}
