package core

import (
	"sync"

	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/models"
)

// ArticleStore is the ordered in-memory article collection. The slug is
// the lookup key; uniqueness is not enforced on insert.
type ArticleStore struct {
	mutex    sync.RWMutex
	articles []*models.Article
}

func NewArticleStore(seed ...*models.Article) *ArticleStore {
	store := &ArticleStore{}
	for _, article := range seed {
		store.articles = append(store.articles, article.Clone())
	}
	return store
}

func (s *ArticleStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.articles)
}

type ProfileEntry struct {
	Handle  string
	Profile *models.Profile
}

// ProfileStore maps route handles to profile records.
type ProfileStore struct {
	mutex    sync.RWMutex
	byHandle map[string]*models.Profile
}

func NewProfileStore(entries ...ProfileEntry) *ProfileStore {
	return &ProfileStore{
		byHandle: collectionutils.Associate(entries, func(e ProfileEntry) (string, *models.Profile) {
			p := *e.Profile
			return e.Handle, &p
		}),
	}
}
