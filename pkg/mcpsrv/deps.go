package mcpsrv

import (
	"github.com/usestring/jsonclass/internal/cache"
	"github.com/usestring/jsonclass/internal/config"
	"github.com/usestring/jsonclass/internal/query"
)

// Deps contains the dependencies available to custom tools, the same ones
// the builtin tools use.
type Deps struct {
	Config *config.Config
	Cache  *cache.ResultCache
	Query  *query.Engine
}
