package contracts

import (
	"context"

	"github.com/meysamhadeli/doctrans/translator/models"
)

type IChangeLogProvider interface {
	ChangedFiles(ctx context.Context, query models.ChangeLogQuery) ([]models.ChangeRecord, error)
}

type ITutorialCatalog interface {
	All(ctx context.Context) ([]models.TutorialItem, error)
}

type IFrontMatterReader interface {
	Products(path string) (models.Products, error)
}

type IFilesListCoordinator interface {
	Resolve(ctx context.Context, days int) ([]string, error)
	Report(ctx context.Context, days int) (*models.Report, error)
	AllowedTutorialFiles(ctx context.Context) ([]string, error)
}
