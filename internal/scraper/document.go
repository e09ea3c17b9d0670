package scraper

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanDocument: копия страницы без декоративных узлов
type CleanDocument struct {
	*goquery.Document
}

func ParseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func ParseHTML(body []byte) (*goquery.Document, error) {
	return ParseDocument(bytes.NewReader(body))
}

// Clean возвращает новый документ без декоративных узлов, исходный не меняется
func (s *Scraper) Clean(doc *goquery.Document) (*CleanDocument, error) {
	html, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}

	clone, err := ParseDocument(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	clone.Find(s.rules.DecorativeNode).Remove()

	return &CleanDocument{Document: clone}, nil
}
