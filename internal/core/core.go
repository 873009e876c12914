package core

import (
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"
)

var NoRecordFound = xerrors.Message("No record found")

type Core struct {
	log      *slog.Logger
	articles *ArticleStore
	profiles *ProfileStore
	now      func() time.Time
}

// NewCore wires the services to stores owned by the caller. Passing the same
// stores to two cores makes them share data.
func NewCore(log *slog.Logger, articles *ArticleStore, profiles *ProfileStore) *Core {
	return &Core{
		log:      log,
		articles: articles,
		profiles: profiles,
		now:      time.Now,
	}
}
