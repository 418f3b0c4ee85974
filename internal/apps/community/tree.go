package community

import "sort"

// Thread is one displayed comment group: a root comment and every
// descendant reply flattened under it.
type Thread struct {
	Comment
	Replies []Comment `json:"replies"`
}

// AssembleThreads turns a flat, visibility-filtered comment set into the
// two-level display tree: roots in creation order, each with its replies
// grouped by stored root id, also in creation order. No recursion — the
// stored root id already did the flattening at write time.
func AssembleThreads(comments []Comment) []Thread {
	roots := make([]Comment, 0)
	replies := make(map[string][]Comment)

	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			key := c.RootID.String()
			replies[key] = append(replies[key], c)
		}
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.Before(roots[j].CreatedAt)
	})

	threads := make([]Thread, 0, len(roots))
	for _, root := range roots {
		group := replies[root.ID.String()]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.Before(group[j].CreatedAt)
		})
		if group == nil {
			group = []Comment{}
		}
		threads = append(threads, Thread{Comment: root, Replies: group})
	}
	return threads
}
