// Package translator decides which recently changed documentation files are
// eligible for translation.
package translator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"

	"github.com/meysamhadeli/doctrans/translator/contracts"
	"github.com/meysamhadeli/doctrans/translator/models"
)

// ContentRoots are the source-language directories queried in the change log
var ContentRoots = []string{
	models.DocumentationSegment + "/" + models.SourceLanguage,
	models.TutorialSegment + "/" + models.SourceLanguage,
	models.UseCaseSegment + "/" + models.SourceLanguage,
}

// CoordinatorDependencies wires a FilesListCoordinator. Fs, ChangeLog and
// Catalog are required; the rest fall back to defaults.
type CoordinatorDependencies struct {
	Fs          afero.Fs
	ChangeLog   contracts.IChangeLogProvider
	Catalog     contracts.ITutorialCatalog
	FrontMatter contracts.IFrontMatterReader
	Products    []string
	Now         func() time.Time
	Logger      *pterm.Logger
}

// FilesListCoordinator resolves the set of translatable files for a window
type FilesListCoordinator struct {
	fs          afero.Fs
	changeLog   contracts.IChangeLogProvider
	catalog     contracts.ITutorialCatalog
	frontMatter contracts.IFrontMatterReader
	products    models.ProductAllowList
	now         func() time.Time
	logger      *pterm.Logger
}

// NewFilesListCoordinator builds a coordinator from deps
func NewFilesListCoordinator(deps CoordinatorDependencies) (*FilesListCoordinator, error) {
	if deps.Fs == nil {
		return nil, errors.New("translator: filesystem is required")
	}
	if deps.ChangeLog == nil {
		return nil, errors.New("translator: change log provider is required")
	}
	if deps.Catalog == nil {
		return nil, errors.New("translator: tutorial catalog is required")
	}
	c := &FilesListCoordinator{
		fs:          deps.Fs,
		changeLog:   deps.ChangeLog,
		catalog:     deps.Catalog,
		frontMatter: deps.FrontMatter,
		now:         deps.Now,
		logger:      deps.Logger,
	}
	if c.frontMatter == nil {
		c.frontMatter = NewFrontMatterReader(deps.Fs)
	}
	if deps.Products == nil {
		c.products = models.NewProductAllowList(models.DefaultAllowedProducts)
	} else {
		c.products = models.NewProductAllowList(deps.Products)
	}
	if c.products.Len() == 0 {
		return nil, errors.New("translator: product allow-list is empty")
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
	}
	return c, nil
}

// Products returns the allow-list the coordinator filters with
func (c *FilesListCoordinator) Products() models.ProductAllowList {
	return c.products
}

// Resolve returns the sorted, deduplicated paths changed in the last days
// days that are eligible for translation.
func (c *FilesListCoordinator) Resolve(ctx context.Context, days int) ([]string, error) {
	report, err := c.Report(ctx, days)
	if err != nil {
		return nil, err
	}
	return report.Eligible, nil
}

// Report runs a resolution and keeps the decision taken for every changed file.
// Any changed path outside the known content roots aborts the run.
func (c *FilesListCoordinator) Report(ctx context.Context, days int) (*models.Report, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, days)
	}
	since := c.now().Add(-time.Duration(days) * 24 * time.Hour)

	records, err := c.changeLog.ChangedFiles(ctx, models.ChangeLogQuery{
		Since: since,
		Paths: append([]string(nil), ContentRoots...),
	})
	if err != nil {
		if errors.Is(err, ErrChangeLogUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrChangeLogUnavailable, err)
	}

	files, err := classifyRecords(records)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("classified changed files", c.logger.Args("days", days, "files", len(files)))

	run := &resolution{coordinator: c}
	report := &models.Report{Days: days, Since: since}
	eligible := make(map[string]struct{})
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		decision, err := run.decide(ctx, file)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("decision", c.logger.Args("path", decision.Path, "kind", decision.KindName, "reason", decision.Reason))
		report.Decisions = append(report.Decisions, decision)
		if decision.Eligible {
			eligible[decision.Path] = struct{}{}
		}
	}

	report.Eligible = make([]string, 0, len(eligible))
	for path := range eligible {
		report.Eligible = append(report.Eligible, path)
	}
	sort.Strings(report.Eligible)

	c.logger.Info("resolved translatable files", c.logger.Args(
		"days", days,
		"changed", len(files),
		"eligible", len(report.Eligible),
	))
	return report, nil
}

// AllowedTutorialFiles returns the prerequisite and task files of every
// tutorial whose products mention an allow-listed product, in catalog order.
func (c *FilesListCoordinator) AllowedTutorialFiles(ctx context.Context) ([]string, error) {
	files, _, err := c.allowedTutorialFileSet(ctx)
	return files, err
}

func (c *FilesListCoordinator) allowedTutorialFileSet(ctx context.Context) ([]string, map[string]struct{}, error) {
	items, err := c.catalog.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrTutorialCatalogUnavailable, err)
	}
	var files []string
	set := make(map[string]struct{})
	add := func(path string) {
		if _, ok := set[path]; ok {
			return
		}
		set[path] = struct{}{}
		files = append(files, path)
	}
	for _, item := range items {
		if _, ok := c.products.Matches(item.ProductsString()); !ok {
			continue
		}
		for _, prereq := range item.Tutorial.Prerequisites {
			add(prereq.Path())
		}
		for _, task := range item.Tutorial.Tasks {
			add(models.TaskPath(task))
		}
	}
	return files, set, nil
}

// classifyRecords dedupes the change log and rejects unknown content roots.
func classifyRecords(records []models.ChangeRecord) ([]models.ChangedFile, error) {
	files := make([]models.ChangedFile, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		path := strings.TrimSpace(record.Path)
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		file := models.NewChangedFile(path)
		if file.Kind == models.KindUnknown {
			return nil, &UnrecognizedFileKindError{Path: path}
		}
		files = append(files, file)
	}
	return files, nil
}

// resolution holds the state of a single Report call. The allowed tutorial
// set is loaded on the first tutorial and discarded with the run.
type resolution struct {
	coordinator      *FilesListCoordinator
	allowedTutorials map[string]struct{}
}

func (r *resolution) decide(ctx context.Context, file models.ChangedFile) (models.Decision, error) {
	c := r.coordinator
	decision := models.Decision{Path: file.Path, Kind: file.Kind, KindName: file.Kind.String()}

	exists, err := afero.Exists(c.fs, file.Path)
	if err != nil {
		return decision, fmt.Errorf("translator: stat %s: %w", file.Path, err)
	}
	if !exists {
		decision.Reason = models.ReasonNotFound
		return decision, nil
	}

	switch file.Kind {
	case models.KindDocumentation:
		decision.Eligible = c.products.Contains(documentationProduct(file.Path))
		if !decision.Eligible {
			decision.Reason = models.ReasonProductNotAllowed
		}
	case models.KindUseCase:
		products, err := c.frontMatter.Products(file.Path)
		if err != nil {
			return decision, err
		}
		decision.Eligible = products.Allowed(c.products)
		if !decision.Eligible {
			decision.Reason = models.ReasonProductNotAllowed
		}
	case models.KindTutorial:
		if r.allowedTutorials == nil {
			_, set, err := c.allowedTutorialFileSet(ctx)
			if err != nil {
				return decision, err
			}
			r.allowedTutorials = set
		}
		_, decision.Eligible = r.allowedTutorials[file.Path]
		if !decision.Eligible {
			decision.Reason = models.ReasonNotInTutorialSet
		}
	default:
		return decision, &UnrecognizedFileKindError{Path: file.Path}
	}

	if decision.Eligible {
		decision.Reason = models.ReasonEligible
	}
	return decision, nil
}

// documentationProduct returns the third path segment, which names the
// product in _documentation/<lang>/<product>/... paths.
func documentationProduct(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[2]
}
