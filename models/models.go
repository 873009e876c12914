package models

import (
	"slices"
	"time"
)

type Profile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type Article struct {
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	Author         Profile   `json:"author"`
}

// Clone returns a copy that shares no slices with a.
func (a *Article) Clone() *Article {
	c := *a
	c.TagList = slices.Clone(a.TagList)
	return &c
}

// ArticlePatch carries the fields of an article update. Nil fields are left untouched.
type ArticlePatch struct {
	Slug        string    `json:"-"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Body        *string   `json:"body"`
	TagList     *[]string `json:"tagList"`
}

// ArticlePage is one page of a query together with the total number of matches.
type ArticlePage struct {
	Articles      []*Article `json:"articles"`
	ArticlesCount int        `json:"articlesCount"`
}
