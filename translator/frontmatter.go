package translator

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/meysamhadeli/doctrans/translator/models"
)

var errUnterminatedFrontMatter = errors.New("front matter opened with --- but never closed")

// FrontMatterReader reads the YAML front matter of content files
type FrontMatterReader struct {
	fs afero.Fs
}

// NewFrontMatterReader reads files from fs; paths are relative to its root
func NewFrontMatterReader(fs afero.Fs) *FrontMatterReader {
	return &FrontMatterReader{fs: fs}
}

// Products returns the products declared in path's front matter.
func (r *FrontMatterReader) Products(path string) (models.Products, error) {
	content, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return models.Products{}, fmt.Errorf("translator: read %s: %w", path, err)
	}
	products, err := ParseProducts(content)
	if err != nil {
		return models.Products{}, &MalformedFrontMatterError{Path: path, Err: err}
	}
	return products, nil
}

// ParseProducts extracts the products key from a document. A document that
// starts with a --- fence contributes only its fenced block; any other
// document is parsed whole.
func ParseProducts(content []byte) (models.Products, error) {
	block, err := frontMatterBlock(content)
	if err != nil {
		return models.Products{}, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return models.Products{}, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return models.Products{}, nil
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "products" {
			continue
		}
		return decodeProducts(root.Content[i+1])
	}
	return models.Products{}, nil
}

func decodeProducts(node *yaml.Node) (models.Products, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return models.Products{}, nil
		}
		return models.Products{Values: []string{node.Value}, Present: true, Scalar: true}, nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return models.Products{}, fmt.Errorf("products: %w", err)
		}
		return models.Products{Values: values, Present: true}, nil
	case yaml.MappingNode:
		values := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			values = append(values, node.Content[i].Value)
		}
		return models.Products{Values: values, Present: true}, nil
	default:
		return models.Products{}, fmt.Errorf("products: unsupported yaml node at line %d", node.Line)
	}
}

func frontMatterBlock(content []byte) ([]byte, error) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return normalized, nil
	}
	rest := normalized[4:]
	if bytes.HasPrefix(rest, []byte("---\n")) || bytes.Equal(rest, []byte("---")) {
		return nil, nil
	}
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		if !bytes.HasSuffix(rest, []byte("\n---")) {
			return nil, errUnterminatedFrontMatter
		}
		end = len(rest) - len("\n---")
	}
	return rest[:end], nil
}
