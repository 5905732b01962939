package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Sai-kurakula/banks-etl/internal/apperrors"
	"github.com/Sai-kurakula/banks-etl/internal/core/domain"
	portssvc "github.com/Sai-kurakula/banks-etl/internal/core/ports/services"
)

// NameRule extracts the canonical bank name from the name cell of a data
// row. It is isolated as a named rule because it encodes a structural
// assumption about one specific document's markup and may need swapping if
// the source format changes.
type NameRule func(nameCell *goquery.Selection) (string, error)

// SecondLinkTitle is the default NameRule: each bank is linked twice in its
// name cell and the second hyperlink carries the human-readable title. The
// first link is deliberately ignored; the title attribute is preferred,
// falling back to the link text when absent.
func SecondLinkTitle(nameCell *goquery.Selection) (string, error) {
	links := nameCell.Find("a")
	if links.Length() < 2 {
		return "", fmt.Errorf("%w: expected two hyperlinks in name cell, found %d", apperrors.ErrParse, links.Length())
	}
	link := links.Eq(1)
	if title, ok := link.Attr("title"); ok && title != "" {
		return title, nil
	}
	return strings.TrimSpace(link.Text()), nil
}

// ExtractService pulls the largest-banks table out of the source document.
type ExtractService struct {
	fetcher  portssvc.PageFetcher
	nameRule NameRule
	logger   *slog.Logger
}

// NewExtractService creates a new ExtractService. A nil nameRule falls back
// to SecondLinkTitle.
func NewExtractService(fetcher portssvc.PageFetcher, nameRule NameRule, logger *slog.Logger) *ExtractService {
	if nameRule == nil {
		nameRule = SecondLinkTitle
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractService{fetcher: fetcher, nameRule: nameRule, logger: logger}
}

var _ portssvc.ExtractorSvcFacade = (*ExtractService)(nil)

// Extract fetches the document at url and parses the first table body into
// raw bank records. The first row is a header and is skipped; rows with one
// or fewer cells are treated as non-data rows (e.g. a trailing summary) and
// excluded. Market-cap text is kept raw; coercion is the transformer's job.
func (s *ExtractService) Extract(ctx context.Context, url string) ([]domain.BankRecord, error) {
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrParse, err)
	}

	body := doc.Find("tbody").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("%w: no table body found in document", apperrors.ErrParse)
	}

	var records []domain.BankRecord
	var rowErr error
	rows := body.Find("tr")
	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			// Header row.
			return true
		}
		cells := row.Find("td")
		if cells.Length() <= 1 {
			return true
		}
		if cells.Length() < 3 {
			rowErr = fmt.Errorf("%w: data row %d has %d cells, expected at least 3", apperrors.ErrParse, i, cells.Length())
			return false
		}

		name, err := s.nameRule(cells.Eq(1))
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", i, err)
			return false
		}

		records = append(records, domain.BankRecord{
			Name:         name,
			MarketCapUSD: strings.TrimSpace(cells.Eq(2).Text()),
		})
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	s.logger.Info("extraction complete", slog.Int("rows", len(records)))
	return records, nil
}
