package core

import (
	"context"
	"slices"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/models"
)

// QueryArticles returns the window of articles selected by config.Filter
// among those matching config.Criteria, with the number of matches before
// pagination. A negative offset or one past the end yields an empty page.
func (c *Core) QueryArticles(ctx context.Context, config filter.ArticleListConfig) (*models.ArticlePage, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.articles.mutex.RLock()
	defer c.articles.mutex.RUnlock()

	matching := functional.Filter(c.articles.articles, func(a *models.Article) bool {
		return c.matches(a, config)
	})

	limit := config.Filter.Limit
	if limit <= 0 {
		limit = len(matching)
	}
	offset := config.Filter.Offset

	page := &models.ArticlePage{
		Articles:      []*models.Article{},
		ArticlesCount: len(matching),
	}
	if offset < 0 || offset >= len(matching) {
		return page, nil
	}

	end := offset + min(limit, len(matching)-offset)
	page.Articles = functional.Map(matching[offset:end], c.view)
	return page, nil
}

func (c *Core) matches(a *models.Article, config filter.ArticleListConfig) bool {
	if config.Type == filter.TypeFeed && !c.authorFollowing(a.Author) {
		return false
	}
	criteria := config.Criteria
	if criteria.Tag != "" && !slices.Contains(a.TagList, criteria.Tag) {
		return false
	}
	if criteria.Author != "" && a.Author.Username != criteria.Author {
		return false
	}
	// favorites are tracked for a single viewer, so any non-empty
	// favorited filter selects that viewer's favorites.
	if criteria.Favorited != "" && !a.Favorited {
		return false
	}
	return true
}

func (c *Core) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.articles.mutex.RLock()
	defer c.articles.mutex.RUnlock()

	article, _, found := c.findArticle(slug)
	if !found {
		return nil, xerrors.New(NoRecordFound)
	}
	return c.view(article), nil
}

// CreateArticle appends a new article built from the title, description,
// body and tag list of input. An input without an author username gets
// FixedAuthor.
func (c *Core) CreateArticle(ctx context.Context, input *models.Article) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	now := c.now().UTC()
	article := &models.Article{
		Slug:        c.CreateSlug(input.Title),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		TagList:     slices.Clone(input.TagList),
		CreatedAt:   now,
		UpdatedAt:   now,
		Author:      input.Author,
	}
	if article.TagList == nil {
		article.TagList = []string{}
	}
	if article.Author.Username == "" {
		article.Author = FixedAuthor
	}

	c.articles.mutex.Lock()
	c.articles.articles = append(c.articles.articles, article)
	c.articles.mutex.Unlock()

	c.log.Info("Article created", "slug", article.Slug, "author", article.Author.Username)
	return c.view(article), nil
}

func (c *Core) UpdateArticle(ctx context.Context, patch models.ArticlePatch) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.articles.mutex.Lock()
	defer c.articles.mutex.Unlock()

	article, _, found := c.findArticle(patch.Slug)
	if !found {
		return nil, xerrors.New(NoRecordFound)
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Description != nil {
		article.Description = *patch.Description
	}
	if patch.Body != nil {
		article.Body = *patch.Body
	}
	if patch.TagList != nil {
		article.TagList = slices.Clone(*patch.TagList)
	}
	article.UpdatedAt = c.now().UTC()

	return c.view(article), nil
}

// DeleteArticle removes every article with the slug. Deleting a missing
// slug is not an error.
func (c *Core) DeleteArticle(ctx context.Context, slug string) error {
	if err := ctx.Err(); err != nil {
		return xerrors.New(err)
	}

	c.articles.mutex.Lock()
	defer c.articles.mutex.Unlock()

	before := len(c.articles.articles)
	c.articles.articles = slices.DeleteFunc(c.articles.articles, func(a *models.Article) bool {
		return a.Slug == slug
	})
	if removed := before - len(c.articles.articles); removed > 0 {
		c.log.Info("Article deleted", "slug", slug)
	}
	return nil
}

func (c *Core) FavoriteArticle(ctx context.Context, slug string) (*models.Article, error) {
	return c.setFavorite(ctx, slug, true)
}

// UnfavoriteArticle clears the favorited flag. The count never drops below zero.
func (c *Core) UnfavoriteArticle(ctx context.Context, slug string) (*models.Article, error) {
	return c.setFavorite(ctx, slug, false)
}

func (c *Core) setFavorite(ctx context.Context, slug string, favorited bool) (*models.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.articles.mutex.Lock()
	defer c.articles.mutex.Unlock()

	article, _, found := c.findArticle(slug)
	if !found {
		return nil, xerrors.New(NoRecordFound)
	}

	article.Favorited = favorited
	if favorited {
		article.FavoritesCount++
	} else if article.FavoritesCount > 0 {
		article.FavoritesCount--
	}

	return c.view(article), nil
}

// authorFollowing reports whether the author is followed. The author's
// profile record wins over the copy embedded in the article.
func (c *Core) authorFollowing(author models.Profile) bool {
	c.profiles.mutex.RLock()
	defer c.profiles.mutex.RUnlock()

	if profile, ok := c.profiles.byHandle[author.Username]; ok {
		return profile.Following
	}
	return author.Following
}

// view copies a with the author's current follow state.
func (c *Core) view(a *models.Article) *models.Article {
	v := a.Clone()
	v.Author.Following = c.authorFollowing(a.Author)
	return v
}

// findArticle must be called with the store mutex held.
func (c *Core) findArticle(slug string) (*models.Article, int, bool) {
	return functional.Find(c.articles.articles, func(a *models.Article) bool {
		return a.Slug == slug
	})
}

func (c *Core) CreateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))

	slug = strings.ReplaceAll(slug, " ", "-")
	// Remove common punctuation
	replacements := []string{".", ",", "!", "?", ":", ";", "'", "\"", "(", ")", "[", "]", "{", "}", "/", "\\"}
	for _, char := range replacements {
		slug = strings.ReplaceAll(slug, char, "")
	}

	// Replace multiple consecutive hyphens with single hyphen
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "new-article"
	}

	return slug
}
