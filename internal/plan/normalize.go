package plan

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Normalize converts loosely-typed rows from the storage boundary into
// strictly-typed Items. It is total: malformed fields degrade to safe
// defaults (status pending, bucket new, order_index 0) and no input can
// make it fail. Rows are returned sorted by order_index.
func Normalize(rows []map[string]any) []Item {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, normalizeRow(row))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OrderIndex < items[j].OrderIndex
	})
	return items
}

func normalizeRow(row map[string]any) Item {
	return Item{
		WeekID:     asString(row["week_id"]),
		ItemID:     asString(row["item_id"]),
		QuestionID: asString(row["question_id"]),
		Bucket:     normalizeBucket(row["bucket"]),
		Difficulty: asString(row["difficulty"]),
		OrderIndex: asInt(row["order_index"]),
		Status:     normalizeStatus(row["status"]),
		SkipCount:  asInt(row["skip_count"]),
		Targets:    normalizeTargets(row["target_counts"]),
	}
}

func normalizeStatus(v any) Status {
	switch Status(asString(v)) {
	case StatusAnswered:
		return StatusAnswered
	case StatusSkipped:
		return StatusSkipped
	}
	return StatusPending
}

func normalizeBucket(v any) Bucket {
	switch Bucket(asString(v)) {
	case BucketMid:
		return BucketMid
	case BucketOld:
		return BucketOld
	}
	return BucketNew
}

// normalizeTargets parses the denormalized target_counts JSON column.
// Anything unparseable yields an empty map.
func normalizeTargets(v any) TargetCounts {
	raw := asString(v)
	if raw == "" {
		return TargetCounts{}
	}
	var parsed map[string]float64
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return TargetCounts{}
	}
	tc := make(TargetCounts, len(parsed))
	for k, n := range parsed {
		tc[k] = int(n)
	}
	return tc
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return ""
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case []byte:
		if i, err := strconv.Atoi(string(n)); err == nil {
			return i
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return 0
}
