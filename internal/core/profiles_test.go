package core

import (
	"context"
	"testing"

	"github.com/siahsang/conduit/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProfile(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	view, err := c.LookupProfile(ctx, DemoHandle, DemoHandle)
	require.NoError(t, err)
	assert.Equal(t, "John_doe", view.Profile.Username)
	assert.True(t, view.Profile.Following)
	assert.True(t, view.IsUser)

	view, err = c.LookupProfile(ctx, DemoHandle, "")
	require.NoError(t, err)
	assert.False(t, view.IsUser)
}

func TestLookupUnknownProfile(t *testing.T) {
	c := newTestCore(t)

	view, err := c.LookupProfile(context.Background(), "someone-else", DemoHandle)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, NoRecordFound)
}

func TestFollowToggle(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	profile, err := c.UnfollowProfile(ctx, DemoHandle)
	require.NoError(t, err)
	assert.False(t, profile.Following)

	view, err := c.LookupProfile(ctx, DemoHandle, "")
	require.NoError(t, err)
	assert.False(t, view.Profile.Following)

	profile, err = c.FollowProfile(ctx, DemoHandle)
	require.NoError(t, err)
	assert.True(t, profile.Following)

	_, err = c.FollowProfile(ctx, "nobody")
	assert.ErrorIs(t, err, NoRecordFound)
}

func TestStoresAreIsolatedPerCore(t *testing.T) {
	a := newTestCore(t)
	b := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, a.DeleteArticle(ctx, "article-1"))

	_, err := b.GetArticle(ctx, "article-1")
	assert.NoError(t, err)
}

func TestFeedFollowsProfileState(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	feed := filter.ArticleListConfig{Type: filter.TypeFeed}

	feedSlugs := func() []string {
		page, err := c.QueryArticles(ctx, feed)
		require.NoError(t, err)
		slugs := []string{}
		for _, a := range page.Articles {
			slugs = append(slugs, a.Slug)
		}
		return slugs
	}

	_, err := c.UnfollowProfile(ctx, "janedoe")
	require.NoError(t, err)
	assert.Equal(t, []string{"article-1"}, feedSlugs())

	article, err := c.GetArticle(ctx, "article-2")
	require.NoError(t, err)
	assert.False(t, article.Author.Following)

	_, err = c.UnfollowProfile(ctx, DemoHandle)
	require.NoError(t, err)
	assert.Empty(t, feedSlugs())

	_, err = c.FollowProfile(ctx, DemoHandle)
	require.NoError(t, err)
	assert.Equal(t, []string{"article-1"}, feedSlugs())

	article, err = c.GetArticle(ctx, "article-1")
	require.NoError(t, err)
	assert.True(t, article.Author.Following)
}
