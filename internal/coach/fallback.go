package coach

import "fmt"

// templates is the deterministic rule table keyed by the most recent mood.
// "Neutral" doubles as the default bundle when no mood is recorded.
var templates = map[string]Advice{
	"Happy": {
		Focus:         "Ride the momentum: tackle your hardest habit while your energy is high.",
		Improvement:   "Use good days to get one step ahead instead of coasting.",
		Encouragement: "Your positive mood shows in your routine. Keep stacking wins!",
		MoodInsight:   "You have been feeling upbeat lately, which tends to lift follow-through.",
		ActionItems: []string{
			"Do your most demanding habit first today",
			"Write down what made today feel good",
			"Plan tomorrow's first habit before bed",
		},
	},
	"Stressed": {
		Focus:         "Protect one small anchor habit today; let the rest be optional.",
		Improvement:   "Shrink each habit to its two-minute version until the pressure passes.",
		Encouragement: "Showing up at all under stress counts double.",
		MoodInsight:   "Stress has been weighing on you; lighter routines help you stay consistent.",
		ActionItems: []string{
			"Pick one habit and do only that",
			"Take a five-minute walk or breathing break",
			"Move any non-essential habit to tomorrow guilt-free",
		},
	},
	"Tired": {
		Focus:         "Low-energy mode: prioritize rest and the single easiest habit.",
		Improvement:   "Schedule demanding habits earlier in the day while you still have fuel.",
		Encouragement: "Rest is part of the routine, not a failure of it.",
		MoodInsight:   "Fatigue is showing up in your recent check-ins; watch your sleep window.",
		ActionItems: []string{
			"Complete your easiest habit before anything else",
			"Set a hard cutoff for screens tonight",
			"Aim for an earlier bedtime than yesterday",
		},
	},
	"Focused": {
		Focus:         "Channel the focus: batch your habits into one deliberate block.",
		Improvement:   "Attach a stretch goal to one habit while concentration is cheap.",
		Encouragement: "This is the state where routines become automatic. Use it.",
		MoodInsight:   "You have been locked in lately; deep-work blocks will land well.",
		ActionItems: []string{
			"Run your full habit list in one uninterrupted block",
			"Add five extra minutes to one habit",
			"Note which time of day this focus showed up",
		},
	},
	"Neutral": {
		Focus:         "Start with the basics: one habit, done well, today.",
		Improvement:   "Log your mood along with completions so patterns can emerge.",
		Encouragement: "Small consistent steps beat big occasional pushes.",
		MoodInsight:   "Not enough mood data yet to spot a pattern; keep checking in.",
		ActionItems: []string{
			"Complete at least one habit today",
			"Record how you feel afterwards",
			"Review your list and drop anything you never do",
		},
	},
}

// Fallback selects the template bundle for the mood, then applies
// completion-rate overrides and a trend clause. Every field is always
// populated.
func Fallback(recentMood string, completionRate float64, pattern MoodPattern) Advice {
	tpl, ok := templates[recentMood]
	if !ok {
		tpl = templates["Neutral"]
	}
	advice := tpl
	advice.ActionItems = append([]string(nil), tpl.ActionItems...)

	switch {
	case completionRate == 1.0:
		advice.Improvement = "Perfect day! The only improvement left is showing up again tomorrow."
		advice.Encouragement = "Every single habit done. That is how streaks are built."
		advice.ActionItems = append(advice.ActionItems,
			"Treat yourself to something small, you earned it")
	case completionRate < 0.3:
		advice.Improvement = "Start small: pick the one habit that takes the least effort and do just that."
		advice.ActionItems = []string{
			"Choose your single easiest habit",
			"Do a two-minute version of it right now",
			"Tick it off and stop there if you want",
		}
	case completionRate >= 0.7:
		advice.Encouragement = fmt.Sprintf(
			"You are at %d%% today. Strong work, the last habits are the easiest to skip and you are not skipping.",
			int(completionRate*100))
	}

	switch pattern.Trend {
	case TrendImproving:
		advice.MoodInsight += " Your mood has been trending up over the last week."
	case TrendDeclining:
		advice.MoodInsight += " Your mood has been dipping lately; be gentle with your expectations."
	}

	return advice
}
