package stores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihive/backend/models"
)

func TestToggleDoubleLikeRemovesReaction(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	post := createPost(t, db, course.ID, 1, "toggle me")
	ledger := NewReactionLedger(db)

	require.NoError(t, ledger.Toggle(2, post.ID, true))
	likes, err := ledger.LikeCount(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likes)

	require.NoError(t, ledger.Toggle(2, post.ID, true))
	likes, err = ledger.LikeCount(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes, "double toggle returns to the original state")

	var rows int64
	require.NoError(t, db.Model(&models.PostReaction{}).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestToggleSwitchKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	post := createPost(t, db, course.ID, 1, "switch me")
	ledger := NewReactionLedger(db)

	require.NoError(t, ledger.Toggle(2, post.ID, true))
	require.NoError(t, ledger.Toggle(2, post.ID, false))

	var reactions []models.PostReaction
	require.NoError(t, db.Where("user_id = ? AND post_id = ?", 2, post.ID).Find(&reactions).Error)
	require.Len(t, reactions, 1)
	assert.False(t, reactions[0].IsLike)

	likes, err := ledger.LikeCount(post.ID)
	require.NoError(t, err)
	dislikes, err := ledger.DislikeCount(post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes)
	assert.EqualValues(t, 1, dislikes)
}

func TestToggleUnknownPost(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db)

	err := NewReactionLedger(db).Toggle(1, 999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReacted(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	post := createPost(t, db, course.ID, 1, "reacted")
	ledger := NewReactionLedger(db)

	require.NoError(t, ledger.Toggle(2, post.ID, true))

	liked, err := ledger.Reacted(2, post.ID, true)
	require.NoError(t, err)
	assert.True(t, liked)

	disliked, err := ledger.Reacted(2, post.ID, false)
	require.NoError(t, err)
	assert.False(t, disliked)
}

func TestPopularityMovesOnlyOnLikeEvents(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	post := createPost(t, db, course.ID, 1, "popular")
	ledger := NewReactionLedger(db)

	score := func() int {
		var c models.Course
		require.NoError(t, db.First(&c, course.ID).Error)
		return c.PopularityScore
	}

	// New like: +1.
	require.NoError(t, ledger.Toggle(2, post.ID, true))
	assert.Equal(t, 1, score())

	// Reading counts repeatedly must never inflate popularity.
	for i := 0; i < 5; i++ {
		_, err := ledger.LikeCount(post.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, score())

	// Switch to dislike: the like is gone, -1.
	require.NoError(t, ledger.Toggle(2, post.ID, false))
	assert.Equal(t, 0, score())

	// Dislike toggled off: no like involved, unchanged.
	require.NoError(t, ledger.Toggle(2, post.ID, false))
	assert.Equal(t, 0, score())

	// Like on, like off: net zero.
	require.NoError(t, ledger.Toggle(3, post.ID, true))
	require.NoError(t, ledger.Toggle(3, post.ID, true))
	assert.Equal(t, 0, score())
}

func TestPopularityReversedOnPostDelete(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	ledger := NewReactionLedger(db)
	threads := NewThreadStore(db)

	score := func() int {
		var c models.Course
		require.NoError(t, db.First(&c, course.ID).Error)
		return c.PopularityScore
	}

	post, err := threads.CreatePost(course.ID, 1, "short-lived", "body")
	require.NoError(t, err)
	reply, err := threads.AddReply(post.ID, 2, "me too")
	require.NoError(t, err)

	// Two likes on the post, one on its reply, one dislike.
	require.NoError(t, ledger.Toggle(2, post.ID, true))
	require.NoError(t, ledger.Toggle(3, post.ID, true))
	require.NoError(t, ledger.Toggle(3, reply.ID, true))
	require.NoError(t, ledger.Toggle(4, post.ID, false))
	require.Equal(t, 3, score())

	// Deleting the thread destroys its likes, so the score follows.
	require.NoError(t, threads.Delete(post.ID, 1))
	assert.Equal(t, 0, score())

	var rows int64
	require.NoError(t, db.Model(&models.PostReaction{}).Count(&rows).Error)
	assert.EqualValues(t, 0, rows)
}

func TestPopularityReversedOnReplyDelete(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	ledger := NewReactionLedger(db)
	threads := NewThreadStore(db)

	post, err := threads.CreatePost(course.ID, 1, "staying", "body")
	require.NoError(t, err)
	reply, err := threads.AddReply(post.ID, 2, "going")
	require.NoError(t, err)

	require.NoError(t, ledger.Toggle(3, post.ID, true))
	require.NoError(t, ledger.Toggle(3, reply.ID, true))

	require.NoError(t, threads.Delete(reply.ID, 2))

	var c models.Course
	require.NoError(t, db.First(&c, course.ID).Error)
	assert.Equal(t, 1, c.PopularityScore, "only the deleted reply's like comes off")
}
