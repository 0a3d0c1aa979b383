package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihive/backend/models"
)

func TestAddReplyIncrementsReplyCount(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "top level")

	reply, err := store.AddReply(post.ID, 2, "a reply")
	require.NoError(t, err)
	assert.True(t, reply.IsReply)
	assert.Empty(t, reply.Title)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, post.ID, *reply.ParentID)

	reloaded, err := store.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.ReplyCount)
}

func TestAddReplyToReplyFlattens(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "top level")

	reply, err := store.AddReply(post.ID, 2, "first reply")
	require.NoError(t, err)

	// Replying to the reply attaches to the original top-level post.
	nested, err := store.AddReply(reply.ID, 3, "reply to a reply")
	require.NoError(t, err)
	require.NotNil(t, nested.ParentID)
	assert.Equal(t, post.ID, *nested.ParentID)

	replies, err := store.RepliesOf(post.ID)
	require.NoError(t, err)
	assert.Len(t, replies, 2)

	reloaded, err := store.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ReplyCount)
}

func TestAddReplyParentNotFound(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db)

	_, err := NewThreadStore(db).AddReply(999, 1, "orphan")
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestRepliesOfNewestFirst(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "ordering")

	first, err := store.AddReply(post.ID, 2, "older")
	require.NoError(t, err)
	// Force distinct timestamps; sqlite keeps full precision but the
	// two creates can land on the same clock reading.
	require.NoError(t, db.Model(first).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	_, err = store.AddReply(post.ID, 3, "newer")
	require.NoError(t, err)

	replies, err := store.RepliesOf(post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "newer", replies[0].Content)
	assert.Equal(t, "older", replies[1].Content)
}

func TestEditOnlyByAuthor(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "editable")

	err := store.Edit(post.ID, 2, "hijacked")
	assert.ErrorIs(t, err, ErrUnauthorized)

	unchanged, err := store.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "post body", unchanged.Content)

	require.NoError(t, store.Edit(post.ID, 1, "revised"))
	edited, err := store.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "revised", edited.Content)
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "deletable")

	err := store.Delete(post.ID, 2)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = store.FindByID(post.ID)
	assert.NoError(t, err, "a rejected delete must leave the post")
}

func TestDeleteCascadesRepliesAndReactions(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	ledger := NewReactionLedger(db)
	post := createPost(t, db, course.ID, 1, "cascade")

	reply, err := store.AddReply(post.ID, 2, "goes with it")
	require.NoError(t, err)
	require.NoError(t, ledger.Toggle(3, post.ID, true))
	require.NoError(t, ledger.Toggle(3, reply.ID, false))

	require.NoError(t, store.Delete(post.ID, 1))

	_, err = store.FindByID(post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.FindByID(reply.ID)
	assert.ErrorIs(t, err, ErrNotFound, "no reply may point at a missing parent")

	var reactions int64
	require.NoError(t, db.Model(&models.PostReaction{}).Count(&reactions).Error)
	assert.EqualValues(t, 0, reactions)
}

func TestDeleteReplyDecrementsParentCount(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	post := createPost(t, db, course.ID, 1, "counted")

	reply, err := store.AddReply(post.ID, 2, "short lived")
	require.NoError(t, err)
	require.NoError(t, store.Delete(reply.ID, 2))

	reloaded, err := store.FindByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.ReplyCount)
}

func TestFindByTitleScoping(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	other := models.Course{
		Name:         "Computer Systems",
		CourseNumber: 388,
		NameCombined: models.CombinedName("eecs", 388),
		UniversityID: course.UniversityID,
	}
	require.NoError(t, db.Create(&other).Error)

	store := NewThreadStore(db)
	first := createPost(t, db, course.ID, 1, "Midterm tips")
	second := createPost(t, db, other.ID, 2, "Midterm tips")

	found, err := store.FindByTitle("Midterm tips", &other.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	// Unscoped: lowest id wins among duplicate titles.
	found, err = store.FindByTitle("Midterm tips", nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = store.FindByTitle("no such title", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostsForCoursePopularitySort(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db)
	store := NewThreadStore(db)
	ledger := NewReactionLedger(db)

	quiet := createPost(t, db, course.ID, 1, "quiet")
	loud := createPost(t, db, course.ID, 1, "loud")
	require.NoError(t, ledger.Toggle(2, loud.ID, true))
	require.NoError(t, ledger.Toggle(3, loud.ID, true))
	require.NoError(t, ledger.Toggle(2, quiet.ID, true))

	posts, err := store.PostsForCourse(course.ID, PostSortPopularity)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "loud", posts[0].Title)
	assert.Equal(t, "quiet", posts[1].Title)
}
