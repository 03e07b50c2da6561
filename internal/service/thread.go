package service

import (
	"errors"
	"sort"

	"codemmunity/internal/models"
)

// ThreadOrder selects the sibling ordering inside an assembled thread.
type ThreadOrder string

const (
	ThreadOrderAsc  ThreadOrder = "asc"
	ThreadOrderDesc ThreadOrder = "desc"
)

// ErrCorruptThread reports a parent chain that does not terminate at the
// post: a cycle among comments or a reference to a parent that is not part
// of the thread. Creation-time validation prevents both; this is the
// defensive check that keeps listing from looping or silently dropping
// replies if the data is ever corrupted.
var ErrCorruptThread = errors.New("comment thread contains a cycle or dangling parent reference")

// BuildThread arranges a post's comments into thread order: every comment
// appears after its parent, and siblings are ordered by creation time
// (direction per order) with the identifier as tie-break.
func BuildThread(comments []*models.Comment, order ThreadOrder) ([]*models.Comment, error) {
	if len(comments) == 0 {
		return []*models.Comment{}, nil
	}

	byID := make(map[uint]*models.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	var roots []*models.Comment
	children := make(map[uint][]*models.Comment)
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if _, ok := byID[*c.ParentID]; !ok {
			return nil, ErrCorruptThread
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	sortSiblings(roots, order)
	for _, siblings := range children {
		sortSiblings(siblings, order)
	}

	// Iterative depth-first walk; thread depth is unbounded, so no
	// recursion.
	thread := make([]*models.Comment, 0, len(comments))
	stack := make([]*models.Comment, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		thread = append(thread, current)

		replies := children[current.ID]
		for i := len(replies) - 1; i >= 0; i-- {
			stack = append(stack, replies[i])
		}
	}

	// Comments unreachable from any root form a cycle.
	if len(thread) != len(comments) {
		return nil, ErrCorruptThread
	}

	return thread, nil
}

func sortSiblings(siblings []*models.Comment, order ThreadOrder) {
	sort.SliceStable(siblings, func(i, j int) bool {
		a, b := siblings[i], siblings[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			if order == ThreadOrderDesc {
				return a.ID > b.ID
			}
			return a.ID < b.ID
		}
		if order == ThreadOrderDesc {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}
