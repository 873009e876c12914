package core

import (
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	c := NewCore(slog.New(slog.DiscardHandler), NewArticleStore(SeedArticles()...), SeedProfiles())
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	return c
}

func query(limit, offset int) filter.ArticleListConfig {
	return filter.ArticleListConfig{Type: filter.TypeAll, Filter: filter.NewFilter(limit, offset)}
}

func TestQueryArticlesPaginates(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	page, err := c.QueryArticles(ctx, query(1, 1))
	require.NoError(t, err)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "article-2", page.Articles[0].Slug)
	assert.Equal(t, 2, page.ArticlesCount)
}

func TestQueryArticlesDefaultsToWholeCollection(t *testing.T) {
	c := newTestCore(t)

	page, err := c.QueryArticles(context.Background(), filter.ArticleListConfig{})
	require.NoError(t, err)
	assert.Len(t, page.Articles, 2)
	assert.Equal(t, 2, page.ArticlesCount)
}

func TestQueryArticlesOffsetPastEndIsEmpty(t *testing.T) {
	c := newTestCore(t)

	for _, tc := range []struct{ limit, offset int }{{1, 2}, {5, 2}, {0, 3}, {10, 100}, {10, -1}, {1, -10}} {
		page, err := c.QueryArticles(context.Background(), query(tc.limit, tc.offset))
		require.NoError(t, err)
		assert.Empty(t, page.Articles, "limit=%d offset=%d", tc.limit, tc.offset)
		assert.Equal(t, 2, page.ArticlesCount)
	}
}

func TestQueryArticlesHugeLimit(t *testing.T) {
	c := newTestCore(t)

	page, err := c.QueryArticles(context.Background(), query(math.MaxInt, 1))
	require.NoError(t, err)
	require.Len(t, page.Articles, 1)
	assert.Equal(t, "article-2", page.Articles[0].Slug)

	page, err = c.QueryArticles(context.Background(), query(math.MaxInt, 0))
	require.NoError(t, err)
	assert.Len(t, page.Articles, 2)
}

func TestQueryArticlesFilters(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		config filter.ArticleListConfig
		slugs  []string
	}{
		{name: "tag", config: filter.ArticleListConfig{Criteria: filter.Criteria{Tag: "Frontend"}}, slugs: []string{"article-1"}},
		{name: "author", config: filter.ArticleListConfig{Criteria: filter.Criteria{Author: "janedoe"}}, slugs: []string{"article-2"}},
		{name: "favorited", config: filter.ArticleListConfig{Criteria: filter.Criteria{Favorited: "johndoe"}}, slugs: []string{"article-2"}},
		{name: "feed", config: filter.ArticleListConfig{Type: filter.TypeFeed}, slugs: []string{"article-1", "article-2"}},
		{name: "no match", config: filter.ArticleListConfig{Criteria: filter.Criteria{Tag: "Rust"}}, slugs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := c.QueryArticles(ctx, tt.config)
			require.NoError(t, err)
			slugs := make([]string, 0, len(page.Articles))
			for _, a := range page.Articles {
				slugs = append(slugs, a.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
			assert.Equal(t, len(tt.slugs), page.ArticlesCount)
		})
	}
}

func TestQueryArticlesReturnsCopies(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	page, err := c.QueryArticles(ctx, query(0, 0))
	require.NoError(t, err)
	page.Articles[0].Title = "mutated"
	page.Articles[0].TagList[0] = "mutated"

	article, err := c.GetArticle(ctx, "article-1")
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Angular", article.Title)
	assert.Equal(t, "Angular", article.TagList[0])
}

func TestCreateThenGet(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	created, err := c.CreateArticle(ctx, &models.Article{
		Title:       "Hello Go World",
		Description: "desc",
		Body:        "body",
		TagList:     []string{"go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-go-world", created.Slug)
	assert.Equal(t, FixedAuthor, created.Author)
	assert.Zero(t, created.FavoritesCount)
	assert.False(t, created.Favorited)

	got, err := c.GetArticle(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, 3, c.articles.Len())
}

func TestCreateKeepsSuppliedAuthor(t *testing.T) {
	c := newTestCore(t)

	created, err := c.CreateArticle(context.Background(), &models.Article{
		Title:  "Mine",
		Author: models.Profile{Username: "johndoe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "johndoe", created.Author.Username)
	assert.Equal(t, []string{}, created.TagList)
}

func TestMissingSlugIsNoRecordFound(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	title := "x"

	_, err := c.GetArticle(ctx, "missing")
	assert.ErrorIs(t, err, NoRecordFound)

	_, err = c.UpdateArticle(ctx, models.ArticlePatch{Slug: "missing", Title: &title})
	assert.ErrorIs(t, err, NoRecordFound)

	_, err = c.FavoriteArticle(ctx, "missing")
	assert.ErrorIs(t, err, NoRecordFound)

	_, err = c.UnfavoriteArticle(ctx, "missing")
	assert.ErrorIs(t, err, NoRecordFound)
}

func TestUpdateArticleMergesAndTouchesUpdatedAt(t *testing.T) {
	c := newTestCore(t)
	body := "new body"

	updated, err := c.UpdateArticle(context.Background(), models.ArticlePatch{Slug: "article-1", Body: &body})
	require.NoError(t, err)
	assert.Equal(t, "new body", updated.Body)
	assert.Equal(t, "Introduction to Angular", updated.Title)
	assert.Equal(t, c.now().UTC(), updated.UpdatedAt)
}

func TestDeleteArticle(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	require.NoError(t, c.DeleteArticle(ctx, "article-1"))
	_, err := c.GetArticle(ctx, "article-1")
	assert.ErrorIs(t, err, NoRecordFound)

	assert.NoError(t, c.DeleteArticle(ctx, "article-1"), "deleting a missing slug is a no-op")
	assert.Equal(t, 1, c.articles.Len())
}

func TestFavoriteRoundTrip(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	for _, slug := range []string{"article-1", "article-2"} {
		before, err := c.GetArticle(ctx, slug)
		require.NoError(t, err)

		favorited, err := c.FavoriteArticle(ctx, slug)
		require.NoError(t, err)
		assert.True(t, favorited.Favorited)
		assert.Equal(t, before.FavoritesCount+1, favorited.FavoritesCount)

		unfavorited, err := c.UnfavoriteArticle(ctx, slug)
		require.NoError(t, err)
		assert.False(t, unfavorited.Favorited)
		assert.Equal(t, before.FavoritesCount, unfavorited.FavoritesCount)
	}
}

func TestUnfavoriteNeverGoesNegative(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	created, err := c.CreateArticle(ctx, &models.Article{Title: "Zero"})
	require.NoError(t, err)

	for range 2 {
		article, err := c.UnfavoriteArticle(ctx, created.Slug)
		require.NoError(t, err)
		assert.Zero(t, article.FavoritesCount)
	}
}

func TestCanceledContext(t *testing.T) {
	c := newTestCore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.QueryArticles(ctx, query(1, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateSlug(t *testing.T) {
	c := newTestCore(t)

	tests := map[string]string{
		"Introduction to Angular": "introduction-to-angular",
		"What's new?  (2024)":     "whats-new-2024",
		"  ":                      "new-article",
		"":                        "new-article",
	}
	for title, want := range tests {
		assert.Equal(t, want, c.CreateSlug(title), "title %q", title)
	}
}

func TestTags(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.CreateArticle(ctx, &models.Article{Title: "t", TagList: []string{"Angular", "Go"}})
	require.NoError(t, err)

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Angular", "Frontend", "TypeScript", "Backend", "Go"}, tags)
}
