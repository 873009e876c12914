package main

import (
	"net/http"
	"strings"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/functional"
	"github.com/siahsang/conduit/internal/validator"
	"github.com/siahsang/conduit/models"
)

const feedSlug = "feed"

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	app.queryArticles(w, r, filter.TypeAll)
}

func (app *application) feedArticlesHandler(w http.ResponseWriter, r *http.Request) {
	app.queryArticles(w, r, filter.TypeFeed)
}

func (app *application) queryArticles(w http.ResponseWriter, r *http.Request, listType string) {
	v := validator.New()
	query := r.URL.Query()

	config := filter.ArticleListConfig{
		Type: listType,
		Criteria: filter.Criteria{
			Tag:       app.readString(query, "tag", ""),
			Author:    app.readString(query, "author", ""),
			Favorited: app.readString(query, "favorited", ""),
		},
		Filter: filter.NewFilter(
			app.readInt(query, "limit", 20, v),
			app.readInt(query, "offset", 0, v),
		),
	}

	filter.ValidateFilters(config.Filter, v)
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	page, err := app.core.QueryArticles(r.Context(), config)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"articles":      page.Articles,
		"articlesCount": page.ArticlesCount,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readParam(r, "slug")
	// the feed shares its path segment with article slugs
	if slug == feedSlug {
		app.requireAuthenticatedUser(app.feedArticlesHandler)(w, r)
		return
	}

	article, err := app.core.GetArticle(r.Context(), slug)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	}

	type CreateArticleRequest struct {
		Article input `json:"article"`
	}

	var request CreateArticleRequest

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	tags := functional.Map(request.Article.TagList, strings.TrimSpace)

	v := validator.New()
	v.CheckNotBlank(request.Article.Title, "title", "must be provided")
	v.CheckNotBlank(request.Article.Description, "description", "must be provided")
	v.CheckNotBlank(request.Article.Body, "body", "must be provided")
	checkTags(v, tags)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), &models.Article{
		Title:       strings.TrimSpace(request.Article.Title),
		Description: request.Article.Description,
		Body:        request.Article.Body,
		TagList:     tags,
		Author: models.Profile{
			Username: user.Username,
			Bio:      user.Bio,
			Image:    user.Image,
		},
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	type UpdateArticleRequest struct {
		Article models.ArticlePatch `json:"article"`
	}

	var request UpdateArticleRequest

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	patch := request.Article
	patch.Slug = app.readParam(r, "slug")

	v := validator.New()
	if patch.Title != nil {
		v.CheckNotBlank(*patch.Title, "title", "must not be blank")
	}
	if patch.TagList != nil {
		checkTags(v, *patch.TagList)
	}
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if !app.authorizeAuthor(w, r, patch.Slug) {
		return
	}

	article, err := app.core.UpdateArticle(r.Context(), patch)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readParam(r, "slug")

	if !app.authorizeAuthor(w, r, slug) {
		return
	}

	if err := app.core.DeleteArticle(r.Context(), slug); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) favoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.FavoriteArticle(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfavoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.UnfavoriteArticle(r.Context(), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, articleResponse(article), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// authorizeAuthor writes an error response and reports false unless the
// signed-in user wrote the article.
func (app *application) authorizeAuthor(w http.ResponseWriter, r *http.Request, slug string) bool {
	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return false
	}

	article, err := app.core.GetArticle(r.Context(), slug)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return false
	}

	if article.Author.Username != user.Username {
		app.forbiddenResponse(w, r)
		return false
	}
	return true
}

func articleResponse(article *models.Article) envelope {
	return envelope{"article": article}
}
