// Package tutorials loads the tutorial catalog: one YAML file per tutorial
// naming its products, prerequisites and tasks.
package tutorials

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/meysamhadeli/doctrans/translator/models"
)

// DefaultCatalogDir is where tutorial definitions live, relative to the docs base path
const DefaultCatalogDir = "config/tutorials/en"

// Catalog reads tutorial definitions from a directory
type Catalog struct {
	fs  afero.Fs
	dir string
}

// NewCatalog reads definitions from dir on fs (DefaultCatalogDir when empty)
func NewCatalog(fs afero.Fs, dir string) *Catalog {
	if dir == "" {
		dir = DefaultCatalogDir
	}
	return &Catalog{fs: fs, dir: dir}
}

// Dir returns the catalog directory
func (c *Catalog) Dir() string {
	return c.dir
}

// All returns every tutorial in the catalog ordered by file name. A missing
// catalog directory yields an empty catalog.
func (c *Catalog) All(ctx context.Context) ([]models.TutorialItem, error) {
	exists, err := afero.DirExists(c.fs, c.dir)
	if err != nil {
		return nil, fmt.Errorf("tutorials: stat %s: %w", c.dir, err)
	}
	if !exists {
		return []models.TutorialItem{}, nil
	}
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		return nil, fmt.Errorf("tutorials: read %s: %w", c.dir, err)
	}
	items := make([]models.TutorialItem, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		content, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return nil, fmt.Errorf("tutorials: read %s: %w", path, err)
		}
		item, err := ParseTutorial(strings.TrimSuffix(entry.Name(), ext), content)
		if err != nil {
			return nil, fmt.Errorf("tutorials: %s: %w", path, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseTutorial decodes one tutorial definition
func ParseTutorial(name string, data []byte) (models.TutorialItem, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.TutorialItem{}, fmt.Errorf("definition is empty")
	}
	var def tutorialDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return models.TutorialItem{}, fmt.Errorf("decode definition: %w", err)
	}
	prereqs := make([]models.PrerequisiteRef, 0, len(def.Prerequisites))
	for _, p := range def.Prerequisites {
		if strings.TrimSpace(p.Name) == "" {
			return models.TutorialItem{}, fmt.Errorf("prerequisite without a name")
		}
		prereqs = append(prereqs, models.NewPrerequisiteRef(p.Root, p.Name))
	}
	tasks := make([]string, 0, len(def.Tasks))
	for _, t := range def.Tasks {
		if t = strings.TrimSpace(t); t != "" {
			tasks = append(tasks, t)
		}
	}
	return models.NewTutorialItem(name, []string(def.Products), models.Tutorial{
		Title:         def.Title,
		Prerequisites: prereqs,
		Tasks:         tasks,
	}), nil
}

type tutorialDefinition struct {
	Title         string                   `yaml:"title"`
	Products      productList              `yaml:"products"`
	Prerequisites []prerequisiteDefinition `yaml:"prerequisites"`
	Tasks         []string                 `yaml:"tasks"`
}

// productList accepts either a YAML list or a single string
type productList []string

func (p *productList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || value.Value == "" {
			*p = nil
			return nil
		}
		*p = productList{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return fmt.Errorf("products must be a string or a list (line %d)", value.Line)
	}
}

// prerequisiteDefinition accepts either a bare name or {root, name}
type prerequisiteDefinition struct {
	Root string `yaml:"root"`
	Name string `yaml:"name"`
}

func (p *prerequisiteDefinition) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.Name = value.Value
		return nil
	}
	type plain prerequisiteDefinition
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*p = prerequisiteDefinition(decoded)
	return nil
}
