// Package curriculum holds the GCSE Computer Science topic catalogue and
// the ordering rules for dotted topic codes.
package curriculum

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Topic is a single entry in the specification topic catalogue.
type Topic struct {
	Code        string // dotted code, e.g. "3.2.1"
	Title       string
	Description string
	Keywords    []string
}

// registry is the package-level topic registry, keyed by code.
var registry map[string]*Topic

func init() {
	registry = make(map[string]*Topic, len(seedTopics))
	for i := range seedTopics {
		t := &seedTopics[i]
		registry[t.Code] = t
	}
}

// GetTopic returns a topic by code.
func GetTopic(code string) (Topic, error) {
	if t, ok := registry[code]; ok {
		return *t, nil
	}
	return Topic{}, fmt.Errorf("unknown topic code %q", code)
}

// IsKnown reports whether code is in the catalogue.
func IsKnown(code string) bool {
	_, ok := registry[code]
	return ok
}

// AllTopics returns every topic, ordered by code.
func AllTopics() []Topic {
	result := make([]Topic, 0, len(registry))
	for _, t := range registry {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return CompareCodes(result[i].Code, result[j].Code) < 0
	})
	return result
}

// CompareCodes orders dotted topic codes by numeric segment, so "3.2" sorts
// before "3.10". Non-numeric segments fall back to string comparison, and a
// code that is a prefix of another sorts first.
func CompareCodes(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// SortCodes sorts dotted topic codes in place using CompareCodes.
func SortCodes(codes []string) {
	sort.Slice(codes, func(i, j int) bool {
		return CompareCodes(codes[i], codes[j]) < 0
	})
}
