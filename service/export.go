package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"nairatrack/config"
	"nairatrack/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportWorker owns export job rows after creation: it renders the file,
// then moves the job processing → done|failed. It is the only writer of job
// status.
type ExportWorker struct {
	db    *gorm.DB
	cfg   *config.Config
	email *EmailService
	jobs  chan string
}

// NewExportWorker creates the worker. Call Start to begin draining jobs.
func NewExportWorker(db *gorm.DB, cfg *config.Config) *ExportWorker {
	return &ExportWorker{
		db:    db,
		cfg:   cfg,
		email: NewEmailService(&cfg.Email),
		jobs:  make(chan string, 64),
	}
}

// Start launches the background loop.
func (w *ExportWorker) Start() {
	go func() {
		for id := range w.jobs {
			w.process(id)
		}
	}()
}

// Enqueue hands a freshly created job to the worker. A full queue fails the
// job immediately rather than blocking the request.
func (w *ExportWorker) Enqueue(exportID string) {
	select {
	case w.jobs <- exportID:
	default:
		w.fail(exportID, "export queue is full, try again later")
	}
}

func (w *ExportWorker) process(exportID string) {
	var job models.Export
	if err := w.db.First(&job, "id = ?", exportID).Error; err != nil {
		log.Printf("export %s: load job: %v", exportID, err)
		return
	}

	var txns []models.Transaction
	if err := w.db.Preload("Category").
		Where("user_id = ?", job.UserID).
		Order("date DESC, created_at DESC").
		Find(&txns).Error; err != nil {
		w.fail(job.ID, fmt.Sprintf("load transactions: %v", err))
		return
	}

	var content []byte
	var err error
	switch job.Type {
	case models.ExportTypeCSV:
		content, err = renderCSV(txns)
	case models.ExportTypeXLSX:
		content, err = renderXLSX(txns)
	default:
		w.fail(job.ID, fmt.Sprintf("unsupported export type %q", job.Type))
		return
	}
	if err != nil {
		w.fail(job.ID, err.Error())
		return
	}

	if err := os.MkdirAll(w.cfg.Export.Dir, 0o755); err != nil {
		w.fail(job.ID, fmt.Sprintf("create export dir: %v", err))
		return
	}
	filename := fmt.Sprintf("%s.%s", job.ID, job.Type)
	path := filepath.Join(w.cfg.Export.Dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		w.fail(job.ID, fmt.Sprintf("write export file: %v", err))
		return
	}

	downloadURL := fmt.Sprintf("%s/exports/files/%s", w.cfg.Server.BaseURL, filename)
	size := int64(len(content))
	expires := time.Now().Add(time.Duration(w.cfg.Export.TTLHours) * time.Hour)
	if err := w.db.Model(&models.Export{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"status":       models.ExportStatusDone,
		"download_url": downloadURL,
		"file_size":    size,
		"expires_at":   expires,
	}).Error; err != nil {
		log.Printf("export %s: mark done: %v", job.ID, err)
		return
	}

	w.notify(job.UserID, downloadURL)
}

func (w *ExportWorker) fail(exportID, message string) {
	if err := w.db.Model(&models.Export{}).Where("id = ?", exportID).Updates(map[string]interface{}{
		"status": models.ExportStatusFailed,
		"error":  message,
	}).Error; err != nil {
		log.Printf("export %s: mark failed: %v", exportID, err)
	}
}

func (w *ExportWorker) notify(userID, downloadURL string) {
	if !w.cfg.Email.Enabled {
		return
	}
	var user models.User
	if err := w.db.First(&user, "id = ?", userID).Error; err != nil || user.Email == "" {
		return
	}
	if err := w.email.SendExportReady(user.Email, user.FirstName, downloadURL); err != nil {
		log.Printf("export notify %s: %v", user.Email, err)
	}
}

// renderCSV writes the transaction list as UTF-8 CSV with a BOM so Excel
// opens it cleanly.
func renderCSV(txns []models.Transaction) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	headers := []string{"Date", "Description", "Merchant", "Amount", "Type", "Category", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range txns {
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		row := []string{
			t.Date.Format("2006-01-02"),
			t.Description,
			t.MerchantName,
			fmt.Sprintf("%.2f", t.Amount),
			t.Type,
			category,
			t.Notes,
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// renderXLSX writes the transaction list as a styled spreadsheet.
func renderXLSX(txns []models.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Transactions"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"15803D"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "D", 14)
	f.SetColWidth(sheetName, "E", "E", 10)
	f.SetColWidth(sheetName, "F", "F", 20)
	f.SetColWidth(sheetName, "G", "G", 30)

	headers := []string{"Date", "Description", "Merchant", "Amount", "Type", "Category", "Notes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, t := range txns {
		row := i + 2
		category := ""
		if t.Category != nil {
			category = t.Category.Name
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.MerchantName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), category)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), t.Notes)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
