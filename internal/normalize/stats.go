package normalize

import (
	"sort"

	"github.com/moriz82/folio/pkg/core"
	"github.com/tidwall/gjson"
)

// Challenge statistics aliases.
var (
	StatsBuckets  = Aliases{"difficulties", "distribution", "buckets"}
	StatsTimeline = Aliases{"boxes", "timeline", "entries"}

	BucketLabel = Aliases{"label", "name"}
	BucketValue = Aliases{"value", "count", "total"}
	BucketColor = Aliases{"color", "colour"}

	EntryName     = Aliases{"name", "title"}
	EntryCategory = Aliases{"difficulty", "level", "category"}
	EntryDate     = Aliases{"date", "occurredOn", "occurred_on"}
	EntrySummary  = Aliases{"summary", "excerpt", "notes"}
)

// UnknownEntryName labels timeline records that carry no name.
const UnknownEntryName = "Unknown Box"

// Stats normalizes a challenge-statistics document. It returns a single
// snapshot, or nil when the document holds neither buckets nor timeline
// entries. A missing half is left empty; callers merge defaults.
func Stats(raw []byte) []core.StatSnapshot {
	if !gjson.ValidBytes(raw) {
		return nil
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil
	}

	snap := core.StatSnapshot{
		Distribution: Distribution(StatsBuckets.Lookup(doc)),
		Timeline:     Timeline(StatsTimeline.Lookup(doc)),
	}
	if snap.Empty() {
		return nil
	}
	return []core.StatSnapshot{snap}
}

// Distribution normalizes an array of bucket records. Buckets whose value is
// not positive are dropped.
func Distribution(v gjson.Result) core.StatDistribution {
	var d core.StatDistribution
	if !v.IsArray() {
		return d
	}
	for _, rec := range v.Array() {
		if !rec.IsObject() {
			continue
		}
		value := BucketValue.Number(rec)
		if value <= 0 {
			continue
		}
		label := Label(BucketLabel.String(rec))
		color := BucketColor.String(rec)
		if color == "" {
			color = ColorFor(label)
		}
		d.Buckets = append(d.Buckets, core.StatBucket{
			Label:      label,
			Value:      value,
			ColorToken: color,
		})
	}
	return d
}

// Timeline normalizes an array of completed-challenge records, newest first.
// Entries without a parseable date follow the dated ones in input order.
func Timeline(v gjson.Result) []core.TimelineEntry {
	if !v.IsArray() {
		return nil
	}
	var out []core.TimelineEntry
	for _, rec := range v.Array() {
		if !rec.IsObject() {
			continue
		}
		out = append(out, core.TimelineEntry{
			Name:       EntryName.StringOr(rec, UnknownEntryName),
			Category:   Label(EntryCategory.String(rec)),
			OccurredOn: EntryDate.String(rec),
			Summary:    EntrySummary.String(rec),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ParseDate(out[i].OccurredOn).After(ParseDate(out[j].OccurredOn))
	})
	return out
}
