// Package importer copies catalog entities from a paginated source into storage.
package importer

import (
	"context"
	"log/slog"
	"time"

	"holocron/internal/middleware"
	"holocron/internal/models"
	"holocron/internal/observability"
	"holocron/internal/repository"
	"holocron/internal/swapi"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultLimit is used by callers when a limit is not supplied.
const DefaultLimit = 10

// Source fetches one listing page at a time.
type Source interface {
	FirstPage(resource string) string
	FetchPage(ctx context.Context, url string) (*swapi.Page, error)
}

// Options bounds how many new rows each entity type may receive.
// A limit of zero or less skips that type without fetching anything.
type Options struct {
	PlanetsLimit int
	PeopleLimit  int
}

// Result holds the number of rows committed per type.
type Result struct {
	Planets int `json:"planets"`
	People  int `json:"people"`
}

// Importer runs catalog imports.
type Importer struct {
	source     Source
	planetRepo repository.PlanetRepository
	peopleRepo repository.PeopleRepository
}

// New returns an Importer reading from source.
func New(source Source, planetRepo repository.PlanetRepository, peopleRepo repository.PeopleRepository) *Importer {
	return &Importer{source: source, planetRepo: planetRepo, peopleRepo: peopleRepo}
}

// Run imports planets and then people. Each page's new rows are committed in
// one transaction before the next page is fetched, so on failure the returned
// Result is exactly what was persisted and the error says why the run stopped.
func (im *Importer) Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := middleware.Logger.With(slog.String("import_run", runID))

	log.InfoContext(ctx, "Catalog import started",
		slog.Int("planets_limit", opts.PlanetsLimit),
		slog.Int("people_limit", opts.PeopleLimit),
	)

	var result Result
	var err error

	result.Planets, err = importResource(ctx, im.source, log, swapi.ResourcePlanets, opts.PlanetsLimit,
		planetFromItem,
		func(p models.Planet) string { return p.Name },
		im.planetRepo.ExistingNames,
		im.planetRepo.CreateBatch,
	)
	if err == nil {
		result.People, err = importResource(ctx, im.source, log, swapi.ResourcePeople, opts.PeopleLimit,
			personFromItem,
			func(p models.Person) string { return p.Name },
			im.peopleRepo.ExistingNames,
			im.peopleRepo.CreateBatch,
		)
	}

	observability.ObserveImport(start, err)
	if err != nil {
		log.ErrorContext(ctx, "Catalog import failed",
			slog.Int("planets_created", result.Planets),
			slog.Int("people_created", result.People),
			slog.String("error", err.Error()),
		)
		return result, err
	}

	log.InfoContext(ctx, "Catalog import finished",
		slog.Int("planets_created", result.Planets),
		slog.Int("people_created", result.People),
		slog.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func importResource[T any](
	ctx context.Context,
	source Source,
	log *slog.Logger,
	resource string,
	limit int,
	fromItem func(map[string]any) T,
	nameOf func(T) string,
	existingNames func(context.Context, []string) (map[string]struct{}, error),
	commit func(context.Context, []T) error,
) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	seen := make(map[string]struct{})
	committed := 0
	url := source.FirstPage(resource)

	for url != "" && committed < limit {
		n, next, err := importPage(ctx, source, resource, url, limit-committed, seen, fromItem, nameOf, existingNames, commit)
		committed += n
		if err != nil {
			return committed, err
		}
		log.DebugContext(ctx, "Import page committed",
			slog.String("resource", resource),
			slog.String("url", url),
			slog.Int("created", n),
			slog.Int("total", committed),
		)
		url = next
	}
	return committed, nil
}

// importPage fetches url, stages up to room unseen rows and commits them.
// It returns the committed count and the next page address ("" when done).
func importPage[T any](
	ctx context.Context,
	source Source,
	resource, url string,
	room int,
	seen map[string]struct{},
	fromItem func(map[string]any) T,
	nameOf func(T) string,
	existingNames func(context.Context, []string) (map[string]struct{}, error),
	commit func(context.Context, []T) error,
) (int, string, error) {
	span, ctx := observability.NewSpan(ctx, "importer.page")
	defer span.End()
	span.AddAttributes(
		attribute.String("import.resource", resource),
		attribute.String("import.url", url),
	)

	page, err := source.FetchPage(ctx, url)
	if err != nil {
		fetchErr := models.NewExternalFetchError(resource, err)
		span.SetError(fetchErr)
		return 0, "", fetchErr
	}
	observability.ImportPagesFetched.WithLabelValues(resource).Inc()

	rows := make([]T, 0, len(page.Results))
	names := make([]string, 0, len(page.Results))
	for _, item := range page.Results {
		row := fromItem(item)
		rows = append(rows, row)
		names = append(names, nameOf(row))
	}

	stored, err := existingNames(ctx, names)
	if err != nil {
		span.SetError(err)
		return 0, "", err
	}

	staged := make([]T, 0, min(room, len(rows)))
	for _, row := range rows {
		if len(staged) == room {
			break
		}
		name := nameOf(row)
		if _, dup := seen[name]; dup {
			observability.ImportRowsSkipped.WithLabelValues(resource).Inc()
			continue
		}
		if _, dup := stored[name]; dup {
			observability.ImportRowsSkipped.WithLabelValues(resource).Inc()
			continue
		}
		seen[name] = struct{}{}
		staged = append(staged, row)
	}

	if len(staged) > 0 {
		if err := commit(ctx, staged); err != nil {
			span.SetError(err)
			return 0, "", err
		}
		observability.ImportRowsCreated.WithLabelValues(resource).Add(float64(len(staged)))
	}
	span.AddAttributes(attribute.Int("import.created", len(staged)))

	next := ""
	if page.Next != nil {
		next = *page.Next
	}
	return len(staged), next, nil
}

func planetFromItem(item map[string]any) models.Planet {
	return models.Planet{
		Name:       swapi.Text(item["name"]),
		Climate:    swapi.Text(item["climate"]),
		Terrain:    swapi.Text(item["terrain"]),
		Population: swapi.Text(item["population"]),
	}
}

func personFromItem(item map[string]any) models.Person {
	return models.Person{
		Name:      swapi.Text(item["name"]),
		Height:    swapi.Text(item["height"]),
		Mass:      swapi.Text(item["mass"]),
		HairColor: swapi.Text(item["hair_color"]),
		SkinColor: swapi.Text(item["skin_color"]),
		EyeColor:  swapi.Text(item["eye_color"]),
		BirthYear: swapi.Text(item["birth_year"]),
		Gender:    swapi.Text(item["gender"]),
	}
}
