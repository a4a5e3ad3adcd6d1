package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/models"
	"github.com/AmazyanAyoub/ai-deal-flow-scanner/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ReportService writes the run report and exports the judgment ledger
type ReportService struct {
	judgmentRepo *repositories.JudgmentRepository
}

func NewReportService(judgmentRepo *repositories.JudgmentRepository) *ReportService {
	return &ReportService{judgmentRepo: judgmentRepo}
}

// WriteJSON writes the full run report to path
func (s *ReportService) WriteJSON(report *models.RunReport, path string) error {
	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ExportLedger writes the whole judgment ledger to an Excel workbook at path
func (s *ReportService) ExportLedger(path string) error {
	judgments, err := s.judgmentRepo.List()
	if err != nil {
		return fmt.Errorf("failed to load judgments: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Judgments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{"Decision", "Score", "Velocity", "Prod Score", "Stars", "Title", "URL", "Judged At"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for row, judgment := range judgments {
		values := []interface{}{
			judgment.Decision,
			judgment.Score,
			judgment.Velocity,
			judgment.ProdScore,
			judgment.StarsTotal,
			judgment.Title,
			judgment.RepoURL,
			judgment.JudgedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save ledger export: %w", err)
	}
	return nil
}
