package infra

// pdf.go — Rendering of validated informes and complementarios to PDF using
// go-pdf/fpdf. A4 portrait with:
//   - Program header and informe title
//   - Case metadata block (comedor, convenio, variante, fecha)
//   - One titled block per report section
//   - Meal-count line derived from the anexo (may be empty)
//
// Output files land under the artefactos storage path; callers pass the
// final absolute path.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// SeccionInforme is one titled block of a rendered informe.
type SeccionInforme struct {
	Titulo string
	Texto  string
}

// ContenidoInforme is the presentation-only payload of an artifact build:
// everything the templates need, already derived from the domain rows.
type ContenidoInforme struct {
	Titulo     string
	Comedor    string
	Convenio   string
	Variante   string
	Raciones   string // derived from the anexo; empty when derivation failed
	Secciones  []SeccionInforme
	GeneradoEl time.Time
}

// TextoPlano flattens the contenido for the text-only DOCX fallback and the
// debug dump: one line per heading or paragraph line, blanks dropped.
func (c *ContenidoInforme) TextoPlano() []string {
	lineas := []string{c.Titulo,
		"Comedor: " + c.Comedor,
		"Convenio: " + c.Convenio,
		"Variante: " + c.Variante,
	}
	if c.Raciones != "" {
		lineas = append(lineas, c.Raciones)
	}
	for _, s := range c.Secciones {
		lineas = append(lineas, s.Titulo)
		for _, l := range strings.Split(s.Texto, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lineas = append(lineas, l)
			}
		}
	}
	return lineas
}

// GenerarInformePDF renders a validated informe to filePath and returns an
// error when the produced document would be empty.
func GenerarInformePDF(contenido *ContenidoInforme, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("pdf: create storage dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "SISOC", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, contenido.Titulo, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Case metadata ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Comedor: "+contenido.Comedor, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Convenio: "+contenido.Convenio, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Variante: "+contenido.Variante, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Fecha: "+contenido.GeneradoEl.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if contenido.Raciones != "" {
		pdf.CellFormat(contentW, 6, contenido.Raciones, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(4)

	// ── Sections ──────────────────────────────────────────────────────────────
	for _, s := range contenido.Secciones {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, s.Titulo, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, s.Texto, "", "L", false)
		pdf.Ln(3)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("pdf: write %s: %w", filePath, err)
	}

	// Non-empty output is required: a truncated render must fail the build.
	fi, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("pdf: stat %s: %w", filePath, err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("pdf: render vacio en %s", filePath)
	}
	return nil
}

// RespuestaRender is one (campo, valor) row of a complementario.
type RespuestaRender struct {
	Campo string
	Valor string
}

// GenerarComplementarioPDF renders the subsanation answers of a
// complementario as a simple two-column table.
func GenerarComplementarioPDF(titulo string, respuestas []RespuestaRender, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("pdf: create storage dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40
	col1 := contentW * 0.35
	col2 := contentW * 0.65

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 6, "Campo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Respuesta", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range respuestas {
		y := pdf.GetY()
		pdf.MultiCell(col1, 5, r.Campo, "", "L", false)
		yCampo := pdf.GetY()
		pdf.SetXY(20+col1, y)
		pdf.MultiCell(col2, 5, r.Valor, "", "L", false)
		if pdf.GetY() < yCampo {
			pdf.SetY(yCampo)
		}
		pdf.Ln(1)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return nil
}
