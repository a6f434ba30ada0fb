package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/query"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const (
	ExportSheet     = "Receipts"
	exportDateStyle = "yyyy-mm-dd hh:mm"
)

var exportHeaders = []string{"ID", "Date", "Expense Type", "Location", "Description", "Sum"}

type exportService struct {
	store receiptLoader
}

func NewExportService(store receiptLoader) *exportService {
	return &exportService{store: store}
}

// ExportReceiptsXLSX renders the filtered, ordered receipts as a workbook
// with a trailing total row.
func (s *exportService) ExportReceiptsXLSX(ctx context.Context, args dto.ExportReceiptsArgs) ([]byte, error) {
	start := time.Now()
	if err := validateFilter(args.Filter); err != nil {
		return nil, err
	}

	receipts, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	receipts = query.Order(query.Filter(receipts, args.Filter), args.OrderBy)

	b, err := buildWorkbook(receipts)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("receipts exported",
		"rows", len(receipts),
		"elapsed_ms", time.Since(start).Milliseconds())
	return b, nil
}

func buildWorkbook(receipts []models.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	dateFmt := exportDateStyle
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("date style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	total := decimal.Zero
	row := 2
	for _, r := range receipts {
		values := []any{r.ID.String(), r.Date, r.ExpenseType.String(), r.Location, r.Description, r.Sum}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(ExportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
		total = total.Add(decimal.NewFromFloat(r.Sum))
		row++
	}
	last := row - 1

	labelCell, _ := excelize.CoordinatesToCellName(5, row)
	totalCell, _ := excelize.CoordinatesToCellName(6, row)
	_ = f.SetCellValue(ExportSheet, labelCell, "Total")
	_ = f.SetCellValue(ExportSheet, totalCell, total.Round(2).InexactFloat64())

	if last >= 2 {
		_ = f.SetCellStyle(ExportSheet, "B2", fmt.Sprintf("B%d", last), dateStyle)
	}
	_ = f.SetCellStyle(ExportSheet, "F2", totalCell, moneyStyle)

	_ = f.SetColWidth(ExportSheet, "A", "A", 38)
	_ = f.SetColWidth(ExportSheet, "B", "B", 18)
	_ = f.SetColWidth(ExportSheet, "C", "D", 18)
	_ = f.SetColWidth(ExportSheet, "E", "E", 40)
	_ = f.SetColWidth(ExportSheet, "F", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
