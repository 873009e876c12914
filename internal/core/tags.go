package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
)

// Tags lists every tag in use, in order of first appearance.
func (c *Core) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.New(err)
	}

	c.articles.mutex.RLock()
	defer c.articles.mutex.RUnlock()

	var all []string
	for _, article := range c.articles.articles {
		all = append(all, article.TagList...)
	}

	return collectionutils.Distinct(all), nil
}
