// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// pdfRenderer lays out an A4 document with the core Helvetica font. Text
// is translated to cp1252; characters outside it render as '?'.
type pdfRenderer struct{}

func (pdfRenderer) Extension() string { return "pdf" }

func (pdfRenderer) Render(w io.Writer, rep Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := rep.heading()
	pdf.SetTitle(title, true)
	pdf.SetCreator("arxiv-digest", true)
	pdf.SetCreationDate(rep.GeneratedAt)
	pdf.SetModificationDate(rep.GeneratedAt)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(title), "", "C", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	meta := fmt.Sprintf("Keyword: %s  |  Generated %s  |  %d paper(s)",
		rep.Keyword, rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), len(rep.Items))
	pdf.MultiCell(0, 6, tr(meta), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)

	if len(rep.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 6, "No new papers.", "", "C", false)
	}

	for i, it := range rep.Items {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("%d. %s", i+1, it.Title)), "", "L", false)
		pdf.Ln(1)

		field := func(label, value string) {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.Write(5, tr(label+": "))
			pdf.SetFont("Helvetica", "", 10)
			pdf.Write(5, tr(value))
			pdf.Ln(6)
		}
		field("Authors", joinAuthors(it.Authors))
		field("Published", it.PublishedDate())

		pdf.SetFont("Helvetica", "B", 10)
		pdf.Write(5, "Link: ")
		pdf.SetFont("Helvetica", "U", 10)
		pdf.SetTextColor(0, 0, 200)
		pdf.WriteLinkString(5, it.URL, it.URL)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)

		pdf.SetFont("Helvetica", "B", 10)
		pdf.Write(5, "Abstract: ")
		pdf.SetFont("Helvetica", "", 10)
		pdf.Write(5, tr(it.Summary))
		pdf.Ln(12)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("building PDF: %w", err)
	}
	return pdf.Output(w)
}
