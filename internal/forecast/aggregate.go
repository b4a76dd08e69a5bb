package forecast

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/julianstephens/moodcast/internal/constants"
	"github.com/julianstephens/moodcast/internal/logger"
	"github.com/julianstephens/moodcast/internal/models"
)

// DailySummary is the representative mood and activities of one weekday.
type DailySummary struct {
	Weekday    time.Weekday
	Mood       models.Mood
	Activities []string
}

// SeedFunc returns the PRNG seed for a weekday's random activity draw.
type SeedFunc func(weekday time.Weekday) uint64

// TimeSeed mixes the wall clock with a hash of the weekday name, reduced
// modulo 2^32-1. Repeated runs on identical input draw differently.
func TimeSeed(weekday time.Weekday) uint64 {
	h := fnv.New32a()
	h.Write([]byte(weekday.String()))
	return (uint64(time.Now().UnixNano()) + uint64(h.Sum32())) % (1<<32 - 1)
}

// Aggregator reduces the windowed logs to one DailySummary per weekday.
type Aggregator struct {
	window Window
	seed   SeedFunc
}

// NewAggregator returns an aggregator that buckets by weekday in w's location.
// A nil seed falls back to TimeSeed.
func NewAggregator(w Window, seed SeedFunc) *Aggregator {
	if seed == nil {
		seed = TimeSeed
	}
	return &Aggregator{window: w, seed: seed}
}

// Summarize returns exactly one summary per weekday, Monday first.
func (a *Aggregator) Summarize(logs []models.MoodLog) []DailySummary {
	buckets := make(map[time.Weekday][]models.MoodLog, len(models.WeekdayVocabulary))
	for _, l := range sortRecentFirst(logs) {
		wd := a.window.Weekday(l.Timestamp)
		buckets[wd] = append(buckets[wd], l)
	}

	summaries := make([]DailySummary, 0, len(models.WeekdayVocabulary))
	for _, wd := range models.WeekdayVocabulary {
		summaries = append(summaries, a.summarizeDay(wd, buckets[wd]))
	}
	return summaries
}

func (a *Aggregator) summarizeDay(wd time.Weekday, day []models.MoodLog) DailySummary {
	summary := DailySummary{
		Weekday:    wd,
		Mood:       models.MoodUnknown,
		Activities: []string{},
	}
	if len(day) == 0 {
		logger.Debug("No entries for weekday", "weekday", wd)
		return summary
	}

	moods := make([]string, len(day))
	for i, l := range day {
		moods[i] = l.Mood
	}
	moodCounts := tallyInOrder(moods)

	var selected string
	rule := "stable"
	if len(moodCounts) >= constants.VolatileMoodThreshold {
		// Volatile day: the most recent entry decides.
		rule = "volatile"
		latest := day[0]
		selected = latest.Mood
		summary.Activities = a.pick(wd, latest.Activities)
	} else {
		selected = moodCounts[0].value
		summary.Activities = a.stableActivities(wd, day, selected)
	}

	summary.Mood = normalizeSelectedMood(wd, selected)
	logger.Debug("Summarized weekday",
		"weekday", wd,
		"entries", len(day),
		"distinct_moods", len(moodCounts),
		"rule", rule,
		"mood", summary.Mood,
		"activities", summary.Activities,
	)
	return summary
}

// stableActivities picks the activities logged alongside the selected mood:
// the most repeated ones when any repeat, otherwise a random pair.
func (a *Aggregator) stableActivities(wd time.Weekday, day []models.MoodLog, mood string) []string {
	var candidates []string
	for _, l := range day {
		if l.Mood == mood {
			candidates = append(candidates, l.Activities...)
		}
	}

	counts := tallyInOrder(candidates)
	if len(counts) == 0 {
		return []string{}
	}

	if top := counts[0].count; top > 1 {
		var tied []string
		for _, c := range counts {
			if c.count != top || len(tied) == constants.MaxRepresentativeActivities {
				break
			}
			tied = append(tied, c.value)
		}
		return tied
	}

	distinct := make([]string, len(counts))
	for i, c := range counts {
		distinct[i] = c.value
	}
	return a.pick(wd, distinct)
}

// pick returns two of items drawn without replacement from a PRNG seeded for
// wd, or a copy of items when there are fewer than two.
func (a *Aggregator) pick(wd time.Weekday, items []string) []string {
	n := constants.MaxRepresentativeActivities
	if len(items) < n {
		return append([]string{}, items...)
	}

	seed := a.seed(wd)
	r := rand.New(rand.NewPCG(seed, seed>>1))
	perm := r.Perm(len(items))
	picked := make([]string, n)
	for i := range picked {
		picked[i] = items[perm[i]]
	}
	return picked
}

// normalizeSelectedMood lower-cases the selected mood. Blank moods and moods
// outside the vocabulary are stored as unknown.
func normalizeSelectedMood(wd time.Weekday, raw string) models.Mood {
	m := models.NormalizeMood(raw)
	if m == "" {
		return models.MoodUnknown
	}
	if !m.IsKnown() && m != models.MoodUnknown {
		logger.Warn("Mood outside vocabulary treated as unknown", "weekday", wd, "mood", raw)
		return models.MoodUnknown
	}
	return m
}

type tally struct {
	value string
	count int
}

// tallyInOrder counts values, ordered by count descending with ties kept in
// first-encountered order.
func tallyInOrder(values []string) []tally {
	index := make(map[string]int, len(values))
	var counts []tally
	for _, v := range values {
		if i, ok := index[v]; ok {
			counts[i].count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, tally{value: v, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}

// sortRecentFirst returns a copy of logs ordered by timestamp descending;
// equal timestamps keep their input order.
func sortRecentFirst(logs []models.MoodLog) []models.MoodLog {
	sorted := append([]models.MoodLog(nil), logs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}
