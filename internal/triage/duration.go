package triage

import (
	"strconv"
	"time"
)

const numericDurationConfidence = 0.9

// Duration phrase sets. Compiled lazily into the cue pipeline would hide
// that several duration codes may coexist, so they get their own pass.
var (
	recencyPhrases = []string{
		"since this morning", "since last night", "just started",
		"started today", "earlier today", "since today", "woke up with",
	}
	multiDayPhrases = []string{
		"a few days", "several days", "for days", "couple of days",
		"past few days", "since yesterday", "all week",
	}
	chronicPhrases = []string{
		"for months", "for years", "always had", "as long as i can remember",
		"most of my life",
	}
	recurringPhrases = []string{
		"comes and goes", "on and off", "keeps coming back",
		"every few weeks", "flares up",
	}
)

type durationMatchers struct {
	recency   *phraseMatcher
	multiDay  *phraseMatcher
	chronic   *phraseMatcher
	recurring *phraseMatcher
}

func newDurationMatchers() durationMatchers {
	return durationMatchers{
		recency:   newPhraseMatcher(recencyPhrases),
		multiDay:  newPhraseMatcher(multiDayPhrases),
		chronic:   newPhraseMatcher(chronicPhrases),
		recurring: newPhraseMatcher(recurringPhrases),
	}
}

// bucketNumericSpan maps an explicit span like "3 days" or "2 weeks" to a
// duration code by unit magnitude.
func bucketNumericSpan(amount int, unit string) FactorCode {
	switch unit {
	case "hour", "hr":
		return CodeDurationToday
	case "day":
		if amount <= 1 {
			return CodeDurationToday
		}
		if amount < 7 {
			return CodeDurationFewDays
		}
		return CodeDurationWeeks
	case "week":
		if amount <= 4 {
			return CodeDurationWeeks
		}
		return CodeDurationChronic
	case "month", "year":
		return CodeDurationChronic
	}
	return ""
}

// extractDuration runs the duration sub-pipeline: explicit numeric spans
// first, then the phrase sets. Multiple duration factors may coexist (a
// recurring pattern alongside the current flare's length); duplicates by
// code keep the higher confidence.
func (e *Engine) extractDuration(normalized, eventID string, now time.Time) []Factor {
	found := make(map[FactorCode]float64)

	for _, m := range e.durationRe.FindAllStringSubmatch(normalized, -1) {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if code := bucketNumericSpan(amount, m[2]); code != "" {
			if numericDurationConfidence > found[code] {
				found[code] = numericDurationConfidence
			}
		}
	}

	dm := e.duration
	phrasePasses := []struct {
		m    *phraseMatcher
		code FactorCode
	}{
		{dm.recency, CodeDurationToday},
		{dm.multiDay, CodeDurationFewDays},
		{dm.chronic, CodeDurationChronic},
		{dm.recurring, CodeDurationRecurring},
	}
	for _, p := range phrasePasses {
		if p.m.Match(normalized) && phraseConfidence > found[p.code] {
			found[p.code] = phraseConfidence
		}
	}

	factors := make([]Factor, 0, len(found))
	for _, code := range []FactorCode{CodeDurationToday, CodeDurationFewDays, CodeDurationWeeks, CodeDurationChronic, CodeDurationRecurring} {
		conf, ok := found[code]
		if !ok {
			continue
		}
		factors = append(factors, e.newFactor(code, "true", conf, eventID, now))
	}
	return factors
}
