package service

import (
	"bytes"
	"fmt"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/xuri/excelize/v2"
)

// MenuSheet is the worksheet name used by BuildMenuWorkbook.
const MenuSheet = "Menu"

var menuHeader = []interface{}{"ID", "Name", "Category", "Price", "Status", "Image"}

// BuildMenuWorkbook renders the menu as an xlsx workbook with one header row
// followed by one row per item.
func BuildMenuWorkbook(items []models.MenuItem) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), MenuSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(MenuSheet, "A1", &menuHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(MenuSheet, "A1", "F1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, item := range items {
		image := ""
		if item.Image != nil {
			image = *item.Image
		}
		row := []interface{}{item.ID, item.Name, string(item.Category), item.Price, string(item.Status), image}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(MenuSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write menu item %d: %w", item.ID, err)
		}
	}

	if err := f.SetColWidth(MenuSheet, "B", "B", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}
