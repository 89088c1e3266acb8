package models

import (
	"path"
	"strings"
)

// DefaultPrerequisiteRoot is used when a prerequisite does not name its root
const DefaultPrerequisiteRoot = "_tutorials"

// SourceLanguage is the locale directory translations are produced from
const SourceLanguage = "en"

// PrerequisiteRef points at a file a tutorial depends on
type PrerequisiteRef struct {
	Root string
	Name string
}

// NewPrerequisiteRef fills the default root when none is given
func NewPrerequisiteRef(root, name string) PrerequisiteRef {
	root = strings.TrimSpace(root)
	if root == "" {
		root = DefaultPrerequisiteRoot
	}
	return PrerequisiteRef{Root: root, Name: strings.TrimSpace(name)}
}

// Path returns "<last segment of root>/en/<name>.md"
func (p PrerequisiteRef) Path() string {
	root := strings.TrimRight(p.Root, "/")
	if root == "" {
		root = DefaultPrerequisiteRoot
	}
	return path.Base(root) + "/" + SourceLanguage + "/" + p.Name + ".md"
}

// Tutorial is the ordered definition behind a catalog entry
type Tutorial struct {
	Title         string
	Prerequisites []PrerequisiteRef
	Tasks         []string
}

// TutorialItem is one tutorial catalog entry
type TutorialItem struct {
	Name     string
	Products []string
	Tutorial Tutorial
}

// NewTutorialItem builds an item with non-nil slices
func NewTutorialItem(name string, products []string, tutorial Tutorial) TutorialItem {
	if products == nil {
		products = []string{}
	}
	if tutorial.Prerequisites == nil {
		tutorial.Prerequisites = []PrerequisiteRef{}
	}
	if tutorial.Tasks == nil {
		tutorial.Tasks = []string{}
	}
	return TutorialItem{Name: name, Products: products, Tutorial: tutorial}
}

// ProductsString joins the item's products the way they are matched against
// the allow-list: a product is allowed when it occurs anywhere in this string.
func (t TutorialItem) ProductsString() string {
	return strings.Join(t.Products, " ")
}

// TaskPath returns the tutorial file a task identifier refers to
func TaskPath(task string) string {
	return TutorialSegment + "/" + SourceLanguage + "/" + task + ".md"
}
