package cache

import (
	"context"

	"github.com/Baaaki/portfolio/internal/models"
)

// NoGeneration is returned when the cache cannot vouch for a later write-back.
// SetProjects ignores lists tagged with it.
const NoGeneration int64 = -1

// ProjectCache holds the public project list between writes.
// Implementations must treat backend failures as a miss: the database is
// always the source of truth.
//
// GetProjects reports the current generation alongside a miss. A caller that
// then reads the database hands that generation back to SetProjects, which
// drops the list if Invalidate ran in between.
type ProjectCache interface {
	GetProjects(ctx context.Context) (projects []models.Project, generation int64, ok bool)
	SetProjects(ctx context.Context, generation int64, projects []models.Project)
	Invalidate(ctx context.Context)

	Close() error
}

// NoopCache is used when no Redis is configured.
type NoopCache struct{}

func (NoopCache) GetProjects(context.Context) ([]models.Project, int64, bool) {
	return nil, NoGeneration, false
}
func (NoopCache) SetProjects(context.Context, int64, []models.Project) {}
func (NoopCache) Invalidate(context.Context)                           {}
func (NoopCache) Close() error                                         { return nil }
