// # internal/parser/parser.go
package parser

import (
	"fmt"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"refscope/internal/errors"
	"refscope/internal/observability"
)

type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
}

// Extractor walks a parsed tree and classifies every symbol reference.
type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*File, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
	}
	p.RegisterExtractor("go", &GoExtractor{})
	p.RegisterExtractor("python", &PythonExtractor{})
	p.RegisterExtractor("java", &JavaExtractor{})
	return p
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) SupportedExtensions() []string {
	return p.loader.SupportedExtensions()
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	lang := p.loader.DetectLanguage(path)
	if lang == "" {
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unsupported language"), errors.CtxPath, path)
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("no extractor for: %s", lang))
	}

	start := time.Now()

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	file, err := extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxLanguage, lang)
	}

	observability.ParsingDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	for _, ref := range file.References {
		for _, label := range ref.Usage.Labels() {
			observability.ReferencesClassified.WithLabelValues(lang, label).Inc()
		}
	}

	return file, nil
}
