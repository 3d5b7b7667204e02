package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator is an interface so report handlers can be tested with a stub.
type Generator interface {
	GenerateStatement(data StatementData) (string, error)
}

// StatementGenerator renders billing statements to disk.
type StatementGenerator struct {
	RootDir  string // output root, e.g. "./files"
	fontName string
}

type StatementLine struct {
	Description string
	DueDate     *time.Time
	Paid        bool
}

type StatementData struct {
	ClientName  string
	GeneratedAt time.Time
	Lines       []StatementLine // completed tasks for the client
	Filename    string          // basename only; generated when empty
}

func NewStatementGenerator(rootDir string) *StatementGenerator {
	return &StatementGenerator{
		RootDir:  filepath.Clean(rootDir),
		fontName: "Helvetica",
	}
}

// GenerateStatement writes the PDF and returns its absolute path.
func (g *StatementGenerator) GenerateStatement(data StatementData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("statement_%s.pdf", data.GeneratedAt.Format("20060102_150405"))
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Statement - %s", data.ClientName), false)
	pdf.SetAuthor("workboard", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "WORK STATEMENT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  -  %s", data.ClientName, data.GeneratedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Summary
	unpaid := 0
	for _, l := range data.Lines {
		if !l.Paid {
			unpaid++
		}
	}
	g.sectionTitle(pdf, "Summary")
	g.kvLine(pdf, "Completed items", fmt.Sprintf("%d", len(data.Lines)))
	g.kvLine(pdf, "Awaiting payment", fmt.Sprintf("%d", unpaid))
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Items
	g.sectionTitle(pdf, "Completed work")
	pdf.SetFont(g.fontName, "", 11)
	if len(data.Lines) == 0 {
		pdf.MultiCell(0, 6, "No completed work recorded for this client.", "", "L", false)
	}
	for i, l := range data.Lines {
		due := ""
		if l.DueDate != nil {
			due = "  (due " + l.DueDate.Format("02.01.2006") + ")"
		}
		mark := "UNPAID"
		if l.Paid {
			mark = "paid"
		}
		line := fmt.Sprintf("%d. %s%s - %s", i+1, l.Description, due, mark)
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Page numbering
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *StatementGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *StatementGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *StatementGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *StatementGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create statements dir: %w", err)
	}
	filename = filepath.Base(filename) // safety
	return filepath.Join(g.RootDir, filename), nil
}
