package community

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carelink-backend/internal/models"
)

func makeComment(id uuid.UUID, parentID *uuid.UUID, rootID uuid.UUID, createdAt time.Time) Comment {
	return Comment{
		ID:        id,
		ParentID:  parentID,
		RootID:    rootID,
		Status:    models.StatusActive,
		CreatedAt: createdAt,
	}
}

func TestAssembleThreadsEmpty(t *testing.T) {
	threads := AssembleThreads(nil)
	assert.NotNil(t, threads)
	assert.Empty(t, threads)
}

func TestAssembleThreadsRootsOnly(t *testing.T) {
	base := time.Now()
	first := makeComment(uuid.New(), nil, uuid.Nil, base)
	second := makeComment(uuid.New(), nil, uuid.Nil, base.Add(time.Minute))
	first.RootID = first.ID
	second.RootID = second.ID

	// Input order reversed; output must follow creation time.
	threads := AssembleThreads([]Comment{second, first})

	require.Len(t, threads, 2)
	assert.Equal(t, first.ID, threads[0].ID)
	assert.Equal(t, second.ID, threads[1].ID)
	assert.NotNil(t, threads[0].Replies)
	assert.Empty(t, threads[0].Replies)
}

func TestAssembleThreadsFlattensDeepReplies(t *testing.T) {
	base := time.Now()

	root := makeComment(uuid.New(), nil, uuid.Nil, base)
	root.RootID = root.ID

	// reply -> reply-to-reply: both carry the root's id, so the
	// grandchild lands directly under the root.
	child := makeComment(uuid.New(), &root.ID, root.ID, base.Add(time.Minute))
	grandchild := makeComment(uuid.New(), &child.ID, root.ID, base.Add(2*time.Minute))

	threads := AssembleThreads([]Comment{grandchild, root, child})

	require.Len(t, threads, 1)
	require.Len(t, threads[0].Replies, 2)
	assert.Equal(t, child.ID, threads[0].Replies[0].ID)
	assert.Equal(t, grandchild.ID, threads[0].Replies[1].ID)
}

func TestAssembleThreadsGroupsByRoot(t *testing.T) {
	base := time.Now()

	rootA := makeComment(uuid.New(), nil, uuid.Nil, base)
	rootA.RootID = rootA.ID
	rootB := makeComment(uuid.New(), nil, uuid.Nil, base.Add(time.Second))
	rootB.RootID = rootB.ID

	replyA := makeComment(uuid.New(), &rootA.ID, rootA.ID, base.Add(time.Minute))
	replyB := makeComment(uuid.New(), &rootB.ID, rootB.ID, base.Add(time.Minute))

	threads := AssembleThreads([]Comment{replyB, rootB, replyA, rootA})

	require.Len(t, threads, 2)
	require.Len(t, threads[0].Replies, 1)
	require.Len(t, threads[1].Replies, 1)
	assert.Equal(t, replyA.ID, threads[0].Replies[0].ID)
	assert.Equal(t, replyB.ID, threads[1].Replies[0].ID)
}

func TestAssembleThreadsOrphanReplyDropped(t *testing.T) {
	base := time.Now()

	root := makeComment(uuid.New(), nil, uuid.Nil, base)
	root.RootID = root.ID

	// Reply whose root was filtered out (e.g. deleted root while the
	// reply survived a partial fetch) must not surface anywhere.
	missingRoot := uuid.New()
	orphan := makeComment(uuid.New(), &missingRoot, missingRoot, base.Add(time.Minute))

	threads := AssembleThreads([]Comment{root, orphan})

	require.Len(t, threads, 1)
	assert.Empty(t, threads[0].Replies)
}
