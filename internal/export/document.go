package export

import (
	"os"

	"github.com/fumiama/go-docx"
	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// pdfWrapWidth is the fixed character width used for PDF line wrapping.
const pdfWrapWidth = 90

func writePDF(path, title string, req Request) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	pdf.SetFont("Courier", "", 10)
	for _, line := range wrapFixed(bodyText(req), pdfWrapWidth) {
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}

func writeDOCX(path, title string, req Request) error {
	doc := docx.New().WithDefaultTheme()

	if title != "" {
		doc.AddParagraph().AddText(title).Size("32").Bold()
	}
	for _, line := range wrapFixed(bodyText(req), 200) {
		doc.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = doc.WriteTo(f)
	return err
}

func writeXLSX(path string, req Request) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	if len(req.Rows) > 0 {
		header := RowHeader(req.Rows)
		for col, key := range header {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, key); err != nil {
				return err
			}
		}
		for i, row := range req.Rows {
			for col, key := range header {
				v, ok := row[key]
				if !ok || v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(col+1, i+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return err
				}
			}
		}
	} else {
		for i, line := range wrapFixed(req.Content, 200) {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, line); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
