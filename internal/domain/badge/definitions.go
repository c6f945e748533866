package badge

const (
	IDZoneMaster       = "zone-master"
	IDSniperStatus     = "sniper-status"
	IDBridgeBuilder    = "bridge-builder"
	IDDownAndAway      = "down-and-away"
	IDVelocityJump     = "velocity-jump"
	IDTerminator       = "terminator"
	IDPowerPrecision   = "power-precision"
	IDStratosphere     = "stratosphere"
	IDRepeatableMotion = "repeatable-motion"
	IDEarlyCountKiller = "early-count-killer"
)

// Definitions returns the ten-rule catalog in evaluation order.
func Definitions() []Definition {
	return []Definition{
		{
			ID:          IDZoneMaster,
			Name:        "Zone Master",
			Description: "Throw 65% strikes across all tracked outings",
			Metric:      "overall strike percentage",
			Category:    "command",
		},
		{
			ID:          IDSniperStatus,
			Name:        "Sniper Status",
			Description: "Land 5 shadow-zone pitches in a single outing",
			Metric:      "shadow-zone pitches per outing",
			Category:    "command",
		},
		{
			ID:          IDBridgeBuilder,
			Name:        "Bridge Builder",
			Description: "Throw 50% strikes with off-speed pitches",
			Metric:      "off-speed strike percentage",
			Category:    "repertoire",
		},
		{
			ID:          IDDownAndAway,
			Name:        "Down & Away",
			Description: "Land 5 bottom-third pitches in a single outing",
			Metric:      "bottom-third pitches per outing",
			Category:    "command",
		},
		{
			ID:          IDVelocityJump,
			Name:        "Velocity Jump",
			Description: "Gain 2+ mph over your 30-day baseline",
			Metric:      "velocity gain vs baseline",
			Category:    "velocity",
		},
		{
			ID:          IDTerminator,
			Name:        "Terminator",
			Description: "Throw 70% strikes in a 30+ pitch outing",
			Metric:      "best single-outing strike percentage",
			Category:    "command",
		},
		{
			ID:          IDPowerPrecision,
			Name:        "Power & Precision",
			Description: "Top-quartile velocity on the roster with 60% strikes",
			Metric:      "velocity percentile and strike percentage",
			Category:    "velocity",
		},
		{
			ID:          IDStratosphere,
			Name:        "Stratosphere",
			Description: "Land 4 top-third fastballs in a single outing",
			Metric:      "top-third fastballs per outing",
			Category:    "repertoire",
		},
		{
			ID:          IDRepeatableMotion,
			Name:        "Repeatable Motion",
			Description: "Keep strike percentage within 5 points for 3 straight outings",
			Metric:      "consecutive consistent outings",
			Category:    "consistency",
		},
		{
			ID:          IDEarlyCountKiller,
			Name:        "Early Count Killer",
			Description: "Hit a 60% zone rate in a charted outing",
			Metric:      "best per-outing zone rate",
			Category:    "command",
		},
	}
}
