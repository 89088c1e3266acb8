package models

import (
	"strings"
	"time"
)

// ContentKind is the content root a changed file belongs to
type ContentKind int

const (
	KindUnknown ContentKind = iota
	KindDocumentation
	KindUseCase
	KindTutorial
)

// Path segments that identify each content root
const (
	DocumentationSegment = "_documentation"
	UseCaseSegment       = "_use_cases"
	TutorialSegment      = "_tutorials"
)

func (k ContentKind) String() string {
	switch k {
	case KindDocumentation:
		return "documentation"
	case KindUseCase:
		return "use_case"
	case KindTutorial:
		return "tutorial"
	default:
		return "unknown"
	}
}

// Classify returns the content kind of a path. Documentation wins over use
// cases, and use cases win over tutorials, when a path mentions several roots.
func Classify(path string) ContentKind {
	switch {
	case strings.Contains(path, DocumentationSegment):
		return KindDocumentation
	case strings.Contains(path, UseCaseSegment):
		return KindUseCase
	case strings.Contains(path, TutorialSegment):
		return KindTutorial
	default:
		return KindUnknown
	}
}

// ChangedFile is a content path paired with its classification
type ChangedFile struct {
	Path string
	Kind ContentKind
}

// NewChangedFile classifies path and wraps it
func NewChangedFile(path string) ChangedFile {
	return ChangedFile{Path: path, Kind: Classify(path)}
}

// ChangeStatus mirrors the git name-status letters kept by --diff-filter=ACM
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "A"
	StatusCopied   ChangeStatus = "C"
	StatusModified ChangeStatus = "M"
)

// ChangeRecord is one entry of the version-control change log
type ChangeRecord struct {
	Path   string
	Status ChangeStatus
}

// ChangeLogQuery restricts the change log to a time window and a set of roots
type ChangeLogQuery struct {
	Since time.Time
	Paths []string
}
