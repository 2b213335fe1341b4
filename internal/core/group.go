package core

import "strings"

// KeyFunc extracts the grouping key of an item.
type KeyFunc func(ListItem) string

// GroupTotal is the aggregated spend of one grouping bucket.
type GroupTotal struct {
	Key   string // raw grouping key (reference id or denormalized name)
	Name  string // display name when the key resolves, otherwise the raw key
	Total float64
	Count int
	// Resolved is false for keys that match no known category or store.
	// The presentation layer renders those as "unassigned".
	Resolved bool
}

// ByCategory groups by category reference, falling back to the name.
func ByCategory(it ListItem) string { return it.CategoryKey() }

// ByStore groups by store reference, falling back to the name.
func ByStore(it ListItem) string { return it.StoreKey() }

// GroupBy partitions items by key and sums their subtotals. Only keys carried
// by at least one item appear, in order of first occurrence. Items whose key is
// empty or unknown are kept under their raw key.
func GroupBy(items []ListItem, key KeyFunc) []GroupTotal {
	index := map[string]int{}
	groups := make([]GroupTotal, 0)
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k, Name: k})
		}
		groups[i].Total += Subtotal(it.EstimatedPrice, it.Quantity)
		groups[i].Count++
	}
	return groups
}

// TotalsByCategory groups items by category and resolves display names
// against the known categories. Items referencing a category by name share
// the group of items referencing it by id.
func TotalsByCategory(items []ListItem, categories []Category) []GroupTotal {
	names := make(map[string]string, len(categories))
	ids := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
		if _, dup := ids[c.Name]; !dup {
			ids[c.Name] = c.ID
		}
	}
	key := func(it ListItem) string {
		if it.CategoryID != "" {
			return it.CategoryID
		}
		return canonical(it.CategoryName, ids)
	}
	return resolve(GroupBy(items, key), names)
}

// TotalsByStore is the store counterpart of TotalsByCategory.
func TotalsByStore(items []ListItem, stores []Store) []GroupTotal {
	names := make(map[string]string, len(stores))
	ids := make(map[string]string, len(stores))
	for _, s := range stores {
		names[s.ID] = s.Name
		if _, dup := ids[s.Name]; !dup {
			ids[s.Name] = s.ID
		}
	}
	key := func(it ListItem) string {
		if it.StoreID != "" {
			return it.StoreID
		}
		return canonical(it.StoreName, ids)
	}
	return resolve(GroupBy(items, key), names)
}

// canonical maps a name reference onto the id of the entity carrying it.
// Unknown names are kept as written.
func canonical(name string, ids map[string]string) string {
	name = strings.TrimSpace(name)
	if id, ok := ids[name]; ok {
		return id
	}
	return name
}

func resolve(groups []GroupTotal, names map[string]string) []GroupTotal {
	for i := range groups {
		if name, ok := names[groups[i].Key]; ok && groups[i].Key != "" {
			groups[i].Name = name
			groups[i].Resolved = true
		}
	}
	return groups
}

// CategoryBreakdown enumerates every known category in collection order,
// including those with no items, and appends the unresolved keys found among
// items in order of first occurrence. Items whose category is referenced by
// name are counted under the category carrying that name.
func CategoryBreakdown(items []ListItem, categories []Category) []GroupTotal {
	out := make([]GroupTotal, 0, len(categories))
	index := map[string]int{}
	for _, c := range categories {
		index[c.ID] = len(out)
		out = append(out, GroupTotal{Key: c.ID, Name: c.Name, Resolved: true})
	}
	byName := map[string]int{}
	for i, c := range categories {
		if _, dup := byName[c.Name]; !dup {
			byName[c.Name] = i
		}
	}

	for _, it := range items {
		k := it.CategoryKey()
		i, ok := -1, false
		if it.CategoryID != "" {
			i, ok = index[k]
		} else if k != "" {
			i, ok = byName[k]
		}
		if !ok {
			// unresolved keys live after the enumerated categories
			if j, seen := index["\x00"+k]; seen {
				i = j
			} else {
				i = len(out)
				index["\x00"+k] = i
				out = append(out, GroupTotal{Key: k, Name: k})
			}
		}
		out[i].Total += Subtotal(it.EstimatedPrice, it.Quantity)
		out[i].Count++
	}
	return out
}

// SumGroups adds up group totals; for a partition it equals ListTotal.
func SumGroups(groups []GroupTotal) float64 {
	var total float64
	for _, g := range groups {
		total += g.Total
	}
	return total
}
