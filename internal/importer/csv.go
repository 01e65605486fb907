// Package importer bulk-loads campaigns from CSV files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kkapil94/outflo-assignment/internal/models"
	"go.uber.org/zap"
)

// CampaignCreator is the write path rows go through, so every row gets the same validation
type CampaignCreator interface {
	CreateCampaign(ctx context.Context, in models.CreateCampaignInput) (*models.Campaign, error)
}

// Row is one parsed data line. Line is 1-based and counts the header.
type Row struct {
	Line  int
	Input models.CreateCampaignInput
}

// RowError records a row that was skipped
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result summarizes an import
type Result struct {
	TotalRows int
	Created   []*models.Campaign
	Errors    []RowError
}

var (
	nameColumns        = []string{"name", "campaign", "campaign name"}
	descriptionColumns = []string{"description", "desc"}
	statusColumns      = []string{"status"}
	leadsColumns       = []string{"leads", "lead urls", "linkedin"}
	accountColumns     = []string{"accountids", "account ids", "accounts"}
)

// ParseRows reads a CSV with a header row. Multi-valued cells separate entries with ';' or '|'.
func ParseRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("CSV file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	nameIdx := findColumnIndex(header, nameColumns)
	descIdx := findColumnIndex(header, descriptionColumns)
	statusIdx := findColumnIndex(header, statusColumns)
	leadsIdx := findColumnIndex(header, leadsColumns)
	accountsIdx := findColumnIndex(header, accountColumns)
	if nameIdx == -1 || descIdx == -1 {
		return nil, errors.New("CSV must have name and description columns")
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		in := models.CreateCampaignInput{
			Name:        cell(record, nameIdx),
			Description: cell(record, descIdx),
			Leads:       splitMulti(cell(record, leadsIdx)),
			AccountIDs:  splitMulti(cell(record, accountsIdx)),
		}
		if s := cell(record, statusIdx); s != "" {
			in.Status = models.CampaignStatus(strings.ToUpper(s))
		}
		rows = append(rows, Row{Line: line, Input: in})
	}
	return rows, nil
}

// Importer creates campaigns from CSV rows
type Importer struct {
	creator CampaignCreator
	logger  *zap.Logger
}

// NewImporter creates a new Importer
func NewImporter(creator CampaignCreator, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{creator: creator, logger: logger.Named("importer")}
}

// Import parses r and creates one campaign per row. Rows that fail are recorded and skipped;
// only unreadable input or a cancelled context stop the import.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	rows, err := ParseRows(r)
	if err != nil {
		return nil, err
	}

	result := &Result{TotalRows: len(rows)}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		campaign, err := i.creator.CreateCampaign(ctx, row.Input)
		if err != nil {
			i.logger.Warn("Skipping row", zap.Int("line", row.Line), zap.Error(err))
			result.Errors = append(result.Errors, RowError{Line: row.Line, Err: err})
			continue
		}
		result.Created = append(result.Created, campaign)
	}

	i.logger.Info("Import finished",
		zap.Int("rows", result.TotalRows),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Errors)))
	return result, nil
}

func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if name == h {
				return i
			}
		}
	}
	return -1
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func splitMulti(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
