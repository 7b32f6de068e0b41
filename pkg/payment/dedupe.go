package payment

import (
	"sort"
	"strings"
)

// Dedupe drops records whose full key/value set was already seen,
// keeping first-seen order.
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	unique := make([]Record, 0, len(records))

	for _, r := range records {
		sig := signature(r)
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}

func signature(r Record) string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte(0)
		sb.WriteString(r[k])
		sb.WriteByte(1)
	}
	return sb.String()
}
