package core

// MaxTimelineEntries is the number of most recent timeline entries displayed.
const MaxTimelineEntries = 3

// =============================================================================
// StatDistribution
// =============================================================================

// StatBucket is one slice of a distribution.
type StatBucket struct {
	Label      string
	Value      float64
	ColorToken string
}

// StatDistribution is an ordered set of buckets rendered as a proportional indicator.
type StatDistribution struct {
	Buckets []StatBucket
}

// Segment is the share of [0, 100] percent covered by one bucket.
type Segment struct {
	Label      string
	ColorToken string
	Value      float64
	Start      float64 // percent
	End        float64 // percent
}

// Total returns the sum of all positive bucket values.
func (d StatDistribution) Total() float64 {
	var total float64
	for _, b := range d.Buckets {
		if b.Value > 0 {
			total += b.Value
		}
	}
	return total
}

// Segments partitions [0, 100] proportionally to bucket values, in list order.
// Buckets with a zero or negative value are excluded. An empty or all-zero
// distribution yields nil.
func (d StatDistribution) Segments() []Segment {
	total := d.Total()
	if total <= 0 {
		return nil
	}

	segments := make([]Segment, 0, len(d.Buckets))
	var cumulative float64
	for _, b := range d.Buckets {
		if b.Value <= 0 {
			continue
		}
		start := cumulative / total * 100
		cumulative += b.Value
		end := cumulative / total * 100
		segments = append(segments, Segment{
			Label:      b.Label,
			ColorToken: b.ColorToken,
			Value:      b.Value,
			Start:      start,
			End:        end,
		})
	}
	return segments
}

// =============================================================================
// Timeline
// =============================================================================

// TimelineEntry is a completed challenge shown in the activity timeline.
type TimelineEntry struct {
	Name       string
	Category   string
	OccurredOn string
	Summary    string
}

// StatSnapshot is the full challenge-statistics payload.
type StatSnapshot struct {
	Distribution StatDistribution
	Timeline     []TimelineEntry
}

// Recent returns the MaxTimelineEntries most recent entries. The timeline is
// kept newest first by the normalizer, so these are its head.
func (s StatSnapshot) Recent() []TimelineEntry {
	if len(s.Timeline) <= MaxTimelineEntries {
		return s.Timeline
	}
	return s.Timeline[:MaxTimelineEntries]
}

// Empty reports whether the snapshot carries neither buckets nor timeline entries.
func (s StatSnapshot) Empty() bool {
	return len(s.Distribution.Buckets) == 0 && len(s.Timeline) == 0
}

// WithDefaults fills whichever half of the snapshot is missing from def.
func (s StatSnapshot) WithDefaults(def StatSnapshot) StatSnapshot {
	out := s
	if len(out.Distribution.Buckets) == 0 {
		out.Distribution = def.Distribution
	}
	if len(out.Timeline) == 0 {
		out.Timeline = def.Timeline
	}
	return out
}
