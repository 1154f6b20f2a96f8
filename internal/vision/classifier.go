package vision

import "habitmind/internal/models"

// Scores holds the per-mood evidence totals for one frame.
type Scores struct {
	Happy    int
	Stressed int
	Tired    int
	Focused  int
}

// Result is one frame's classification with its supporting evidence, kept for
// diagnostics.
type Result struct {
	Mood    models.Mood
	Scores  Scores
	Metrics Metrics
}

// Threshold bands for the weighted classifier. Finer bands score higher.
const (
	smileStrong = 0.46
	smileMild   = 0.42

	curveStrong = 0.020
	curveMild   = 0.008

	earSquint  = 0.18
	earDrowsy  = 0.22
	earLow     = 0.25
	earNeutral = 0.33
	earWide    = 0.34

	mouthYawn = 0.40
	mouthAjar = 0.25

	browLow      = 0.085
	browNeutralH = 0.130
)

// Classify maps one metrics vector to a mood label. Each label accumulates an
// independent non-negative score from graduated threshold bands; the winner is
// accepted only with a clear margin, otherwise the label defaults to Focused
// (no signal or ambiguous signal reads as neutral attention).
func Classify(m Metrics) Result {
	s := score(m)

	type candidate struct {
		mood  models.Mood
		score int
	}
	ranked := []candidate{
		{models.MoodHappy, s.Happy},
		{models.MoodStressed, s.Stressed},
		{models.MoodTired, s.Tired},
		{models.MoodFocused, s.Focused},
	}

	top, second := ranked[0], candidate{}
	for _, c := range ranked[1:] {
		if c.score > top.score {
			second = top
			top = c
		} else if c.score > second.score {
			second = c
		}
	}

	mood := models.MoodFocused
	lead := top.score - second.score
	switch {
	case top.score == 0:
		// No signal at all reads as neutral.
	case top.score >= 3 && lead >= 2:
		mood = top.mood
	case top.score >= 2 && lead >= 2:
		mood = top.mood
	default:
		// A one-point lead is too thin to trust a single frame.
	}

	return Result{Mood: mood, Scores: s, Metrics: m}
}

func score(m Metrics) Scores {
	var s Scores

	// Happy: wide mouth plus upturned corners. A frown overrides a wide
	// mouth outright, so the penalty lands after the additive bands.
	switch {
	case m.SmileRatio > smileStrong:
		s.Happy += 2
	case m.SmileRatio > smileMild:
		s.Happy++
	}
	switch {
	case m.MouthCurvature > curveStrong:
		s.Happy += 2
	case m.MouthCurvature > curveMild:
		s.Happy++
	}
	if m.MouthOpenRatio > mouthAjar && m.MouthCurvature > 0 {
		s.Happy++ // open-mouth smile
	}
	if m.MouthCurvature < 0 {
		s.Happy -= 2
		if s.Happy < 0 {
			s.Happy = 0
		}
	}

	// Stressed: downturned corners, furrowed brow, widened eyes.
	switch {
	case m.MouthCurvature < -curveStrong:
		s.Stressed += 2
	case m.MouthCurvature < -curveMild:
		s.Stressed++
	}
	if m.BrowRatio > 0 && m.BrowRatio < browLow {
		s.Stressed++
	}
	if m.AvgEAR > earWide {
		s.Stressed++
	}

	// Tired: drooping eyelids, possibly a yawn.
	switch {
	case m.AvgEAR > 0 && m.AvgEAR < earSquint:
		s.Tired += 3
	case m.AvgEAR > 0 && m.AvgEAR < earDrowsy:
		s.Tired += 2
	case m.AvgEAR > 0 && m.AvgEAR < earLow:
		s.Tired++
	}
	switch {
	case m.MouthOpenRatio > mouthYawn:
		s.Tired += 2
	case m.MouthOpenRatio > mouthAjar:
		s.Tired++
	}

	// Focused: everything in the neutral band at once.
	neutralCurve := m.MouthCurvature >= -curveMild && m.MouthCurvature <= curveMild
	neutralEyes := m.AvgEAR >= earLow && m.AvgEAR <= earNeutral
	neutralBrow := m.BrowRatio >= browLow && m.BrowRatio <= browNeutralH
	if neutralCurve && neutralEyes && neutralBrow {
		s.Focused += 3
	} else if (neutralCurve && neutralEyes) || (neutralCurve && neutralBrow) || (neutralEyes && neutralBrow) {
		s.Focused++
	}

	return s
}
