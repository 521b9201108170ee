package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
)

func newComment(blog *model.Blog, content, parent string) *model.CreateCommentParams {
	return &model.CreateCommentParams{
		Content:       content,
		Author:        "reader",
		Email:         "reader@example.com",
		ContentType:   string(model.ContentTypeBlog),
		ContentID:     blog.ID.Hex(),
		ParentComment: parent,
	}
}

func createCommentedBlog(t *testing.T, f *fixture) *model.Blog {
	t.Helper()
	blog, err := f.svc.CreateBlog(adminCtx(), validBlog("commented"))
	require.NoError(t, err)
	return blog
}

func TestCreateCommentStartsUnapproved(t *testing.T) {
	f := newFixture(t)
	blog := createCommentedBlog(t, f)
	before := len(f.hub.messages)

	comment, err := f.svc.CreateComment(context.Background(), newComment(blog, " hello ", ""))
	require.NoError(t, err)
	assert.False(t, comment.Approved)
	assert.Equal(t, "hello", comment.Content)
	assert.Nil(t, comment.ParentComment)
	assert.Empty(t, comment.Replies)

	// 未审核的评论不刷新缓存
	assert.Len(t, f.hub.messages, before)
	sent := f.publisher.sent()
	require.NotEmpty(t, sent)
	assert.Equal(t, model.ResourceComments, sent[len(sent)-1].event.Resource)

	public, err := f.svc.ListComments(context.Background(), "blog", blog.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, public)
}

func TestCreateCommentRequiresExistingContent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateComment(context.Background(), &model.CreateCommentParams{
		Content:     "hi",
		Author:      "a",
		Email:       "a@example.com",
		ContentType: "event",
		ContentID:   primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, []string{"contentId"}, fieldNames(t, err))

	_, err = f.svc.CreateComment(context.Background(), &model.CreateCommentParams{
		Content:     "hi",
		Author:      "a",
		Email:       "bad",
		ContentType: "podcast",
		ContentID:   "x",
	})
	assert.ElementsMatch(t, []string{"email", "contentType", "contentId"}, fieldNames(t, err))
}

func TestReplyValidation(t *testing.T) {
	f := newFixture(t)
	blog := createCommentedBlog(t, f)
	other, err := f.svc.CreateBlog(adminCtx(), validBlog("other"))
	require.NoError(t, err)

	root, err := f.svc.CreateComment(context.Background(), newComment(other, "root", ""))
	require.NoError(t, err)

	_, err = f.svc.CreateComment(context.Background(), newComment(blog, "reply", root.ID.Hex()))
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "same_content", ve.Errors[0].Tag)

	_, err = f.svc.CreateComment(context.Background(), newComment(blog, "reply", primitive.NewObjectID().Hex()))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "exists", ve.Errors[0].Tag)
}

func TestReplyIsLinkedToParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blog := createCommentedBlog(t, f)

	root, err := f.svc.CreateComment(ctx, newComment(blog, "root", ""))
	require.NoError(t, err)
	approvedReply, err := f.svc.CreateComment(ctx, newComment(blog, "approved reply", root.ID.Hex()))
	require.NoError(t, err)
	_, err = f.svc.CreateComment(ctx, newComment(blog, "pending reply", root.ID.Hex()))
	require.NoError(t, err)

	require.NotNil(t, approvedReply.ParentComment)
	assert.Equal(t, root.ID, *approvedReply.ParentComment)

	stored, err := f.svc.GetComment(ctx, root.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, stored.Replies, 2)
	assert.Equal(t, approvedReply.ID, stored.Replies[0])

	_, err = f.svc.ApproveComments(adminCtx(), &model.BulkApproveParams{
		CommentIDs: []string{root.ID.Hex(), approvedReply.ID.Hex()},
	})
	require.NoError(t, err)

	public, err := f.svc.ListComments(ctx, "blog", blog.ID.Hex())
	require.NoError(t, err)
	var rootView *model.CommentWithReplies
	for _, c := range public {
		if c.ID == root.ID {
			rootView = c
		}
	}
	require.NotNil(t, rootView)
	require.Len(t, rootView.Replies, 1)
	assert.Equal(t, approvedReply.ID, rootView.Replies[0].ID)

	all, err := f.svc.ListAllComments(adminCtx(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
}

func TestApproveCommentsOnlyListed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blog := createCommentedBlog(t, f)

	var ids []string
	for _, text := range []string{"one", "two", "three"} {
		c, err := f.svc.CreateComment(ctx, newComment(blog, text, ""))
		require.NoError(t, err)
		ids = append(ids, c.ID.Hex())
	}

	approved, err := f.svc.ApproveComments(adminCtx(), &model.BulkApproveParams{
		CommentIDs: []string{ids[0], ids[2], primitive.NewObjectID().Hex()},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, approved)

	for i, id := range ids {
		c, err := f.svc.GetComment(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i != 1, c.Approved, id)
	}

	_, err = f.svc.ApproveComments(adminCtx(), &model.BulkApproveParams{})
	assert.Equal(t, []string{"commentIds"}, fieldNames(t, err))
}

func TestDeleteCommentRemovesDirectReplies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blog := createCommentedBlog(t, f)

	root, err := f.svc.CreateComment(ctx, newComment(blog, "root", ""))
	require.NoError(t, err)
	first, err := f.svc.CreateComment(ctx, newComment(blog, "first", root.ID.Hex()))
	require.NoError(t, err)
	_, err = f.svc.CreateComment(ctx, newComment(blog, "second", root.ID.Hex()))
	require.NoError(t, err)
	grandchild, err := f.svc.CreateComment(ctx, newComment(blog, "grandchild", first.ID.Hex()))
	require.NoError(t, err)

	deleted, err := f.svc.DeleteComment(adminCtx(), root.ID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	_, err = f.svc.GetComment(ctx, root.ID.Hex())
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = f.svc.GetComment(ctx, grandchild.ID.Hex())
	assert.NoError(t, err)

	_, err = f.svc.DeleteComment(adminCtx(), root.ID.Hex())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteReplyUnlinksFromParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blog := createCommentedBlog(t, f)

	root, err := f.svc.CreateComment(ctx, newComment(blog, "root", ""))
	require.NoError(t, err)
	reply, err := f.svc.CreateComment(ctx, newComment(blog, "reply", root.ID.Hex()))
	require.NoError(t, err)

	deleted, err := f.svc.DeleteComment(adminCtx(), reply.ID.Hex())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	stored, err := f.svc.GetComment(ctx, root.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stored.Replies)
}

func TestUpdateComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	blog := createCommentedBlog(t, f)
	comment, err := f.svc.CreateComment(ctx, newComment(blog, "typo", ""))
	require.NoError(t, err)

	updated, err := f.svc.UpdateComment(adminCtx(), comment.ID.Hex(), &model.CommentPatch{
		Content:  strPtr("fixed"),
		Approved: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", updated.Content)
	assert.True(t, updated.Approved)

	_, err = f.svc.UpdateComment(adminCtx(), primitive.NewObjectID().Hex(), &model.CommentPatch{Content: strPtr("x")})
	assert.ErrorIs(t, err, model.ErrNotFound)
}
