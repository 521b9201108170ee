package memdao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
)

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newBlog(title string, published bool, offset time.Duration) *model.Blog {
	return &model.Blog{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Category:  "General",
		Tags:      []string{},
		Published: published,
		CreatedAt: base.Add(offset),
		UpdatedAt: base.Add(offset),
	}
}

func TestBlogListVisibilityAndOrder(t *testing.T) {
	ctx := context.Background()
	blogs := NewBlogDAO()
	require.NoError(t, blogs.Create(ctx, newBlog("old", true, 0)))
	require.NoError(t, blogs.Create(ctx, newBlog("draft", false, time.Hour)))
	require.NoError(t, blogs.Create(ctx, newBlog("new", true, 2*time.Hour)))

	items, total, err := blogs.List(ctx, &model.ListParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Title)
	assert.Equal(t, "old", items[1].Title)

	items, total, err = blogs.List(ctx, &model.ListParams{Page: 1, PageSize: 10, Admin: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, items, 3)

	items, _, err = blogs.List(ctx, &model.ListParams{Page: 1, PageSize: 10, Search: "NE"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Title)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	blogs := NewBlogDAO()
	for i := 0; i < 12; i++ {
		require.NoError(t, blogs.Create(ctx, newBlog("b", true, time.Duration(i)*time.Minute)))
	}

	items, total, err := blogs.List(ctx, &model.ListParams{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	assert.Len(t, items, 2)

	items, _, err = blogs.List(ctx, &model.ListParams{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateAppliesPatchOnly(t *testing.T) {
	ctx := context.Background()
	blogs := NewBlogDAO()
	b := newBlog("title", true, 0)
	require.NoError(t, blogs.Create(ctx, b))

	featured := true
	now := base.Add(24 * time.Hour)
	updated, err := blogs.Update(ctx, b.ID, &model.BlogPatch{Featured: &featured}, now)
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ID)
	assert.Equal(t, "title", updated.Title)
	assert.True(t, updated.Featured)
	assert.True(t, updated.CreatedAt.Equal(b.CreatedAt))
	assert.True(t, updated.UpdatedAt.Equal(now))

	_, err = blogs.Update(ctx, primitive.NewObjectID(), &model.BlogPatch{Featured: &featured}, now)
	assert.ErrorIs(t, err, model.ErrNotFound)
	count, err := blogs.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpcomingEvents(t *testing.T) {
	ctx := context.Background()
	events := NewEventDAO()
	for _, d := range []time.Time{
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, events.Create(ctx, &model.Event{ID: primitive.NewObjectID(), Date: d, Published: true}))
	}

	items, err := events.Upcoming(ctx, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2025, items[0].Date.Year())
	assert.Equal(t, time.June, items[0].Date.Month())
}

func TestCarouselOrder(t *testing.T) {
	ctx := context.Background()
	carousel := NewCarouselDAO()
	a := &model.CarouselSlide{ID: primitive.NewObjectID(), Title: "a", Order: 1, Active: true}
	b := &model.CarouselSlide{ID: primitive.NewObjectID(), Title: "b", Order: 2, Active: false}
	require.NoError(t, carousel.Create(ctx, a))
	require.NoError(t, carousel.Create(ctx, b))

	active, err := carousel.ListSlides(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, carousel.UpdateOrder(ctx, b.ID, 0, base))
	all, err := carousel.ListSlides(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Title)

	assert.ErrorIs(t, carousel.UpdateOrder(ctx, primitive.NewObjectID(), 3, base), model.ErrNotFound)
}

func newComment(parent *primitive.ObjectID, offset time.Duration) *model.Comment {
	return &model.Comment{
		ID:            primitive.NewObjectID(),
		Content:       "hi",
		ContentRef:    model.ContentRef{Type: model.ContentTypeBlog, ID: primitive.NewObjectID()},
		ParentComment: parent,
		Replies:       []primitive.ObjectID{},
		CreatedAt:     base.Add(offset),
	}
}

func TestDeleteWithRepliesKeepsGrandchildren(t *testing.T) {
	ctx := context.Background()
	comments := NewCommentDAO()

	root := newComment(nil, 0)
	require.NoError(t, comments.Create(ctx, root))
	parent := newComment(&root.ID, time.Minute)
	require.NoError(t, comments.Create(ctx, parent))
	require.NoError(t, comments.AddReply(ctx, root.ID, parent.ID, base))

	var children []*model.Comment
	for i := 0; i < 2; i++ {
		c := newComment(&parent.ID, time.Duration(i+2)*time.Minute)
		require.NoError(t, comments.Create(ctx, c))
		children = append(children, c)
	}
	grandchild := newComment(&children[0].ID, time.Hour)
	require.NoError(t, comments.Create(ctx, grandchild))

	deleted, err := comments.DeleteWithReplies(ctx, parent.ID, base)
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	_, err = comments.GetByID(ctx, grandchild.ID)
	assert.NoError(t, err)

	stillRoot, err := comments.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Empty(t, stillRoot.Replies)

	_, err = comments.DeleteWithReplies(ctx, parent.ID, base)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestApproveMany(t *testing.T) {
	ctx := context.Background()
	comments := NewCommentDAO()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		c := newComment(nil, time.Duration(i)*time.Minute)
		require.NoError(t, comments.Create(ctx, c))
		ids = append(ids, c.ID)
	}

	matched, err := comments.ApproveMany(ctx, []primitive.ObjectID{ids[0], ids[1], ids[1], primitive.NewObjectID()}, base)
	require.NoError(t, err)
	assert.EqualValues(t, 2, matched)

	for i, want := range []bool{true, true, false} {
		c, err := comments.GetByID(ctx, ids[i])
		require.NoError(t, err)
		assert.Equal(t, want, c.Approved)
	}
}

func TestAccountEmailIsUnique(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccountDAO()
	require.NoError(t, accounts.Create(ctx, &model.Account{ID: primitive.NewObjectID(), Email: "Admin@Example.com", Role: "admin"}))
	assert.ErrorIs(t, accounts.Create(ctx, &model.Account{ID: primitive.NewObjectID(), Email: "admin@example.com"}), ErrDuplicateEmail)

	found, err := accounts.GetByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", found.Email)

	n, err := accounts.CountByRole(ctx, "admin")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
