package timezones

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Search filters zones case-insensitively. Prefix matches sort before
// substring matches; limit <= 0 keeps every match. An empty query matches
// nothing.
func Search(zones []string, query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, query) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, query),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// Groups splits zones into select groups keyed by region ("America",
// "Europe"). Zones without a region ("UTC") land in a trailing "Other" group.
func Groups(zones []string) []widgets.Group {
	var (
		groups []widgets.Group
		index  = make(map[string]int)
		other  []widgets.Item
	)
	for _, zone := range zones {
		region, _, ok := strings.Cut(zone, "/")
		if !ok {
			other = append(other, widgets.Item{Value: zone, Label: zone})
			continue
		}
		idx, seen := index[region]
		if !seen {
			idx = len(groups)
			index[region] = idx
			groups = append(groups, widgets.Group{Label: region})
		}
		groups[idx].Items = append(groups[idx].Items, widgets.Item{Value: zone, Label: Label(zone)})
	}
	if len(other) > 0 {
		groups = append(groups, widgets.Group{Label: "Other", Items: other})
	}
	return groups
}

// Label turns "America/Argentina/Buenos_Aires" into "Argentina / Buenos Aires".
func Label(zone string) string {
	_, rest, ok := strings.Cut(zone, "/")
	if !ok {
		return zone
	}
	return strings.ReplaceAll(strings.ReplaceAll(rest, "_", " "), "/", " / ")
}

type matchedZone struct {
	name     string
	isPrefix bool
}
