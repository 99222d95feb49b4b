package infra

// docx.go — DOCX rendering of validated informes using fumiama/go-docx.
// The DOCX is a best-effort companion to the PDF: the full render styles
// headings and section bodies; when it fails, a second attempt writes every
// line as a plain paragraph; when that fails too, the artifact keeps only
// its PDF.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fumiama/go-docx"
)

// GenerarInformeDOCX writes the styled DOCX for a validated informe.
func GenerarInformeDOCX(contenido *ContenidoInforme, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("docx: create storage dir: %w", err)
	}

	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText(contenido.Titulo).Size("28").Bold()
	doc.AddParagraph().AddText("Comedor: " + contenido.Comedor)
	doc.AddParagraph().AddText("Convenio: " + contenido.Convenio)
	doc.AddParagraph().AddText("Variante: " + contenido.Variante)
	doc.AddParagraph().AddText("Fecha: " + contenido.GeneradoEl.Format("02/01/2006 15:04"))
	if contenido.Raciones != "" {
		doc.AddParagraph().AddText(contenido.Raciones)
	}
	doc.AddParagraph()

	for _, s := range contenido.Secciones {
		doc.AddParagraph().AddText(s.Titulo).Size("24").Bold()
		doc.AddParagraph().AddText(s.Texto)
		doc.AddParagraph()
	}

	return escribirDOCX(doc, filePath)
}

// GenerarInformeDOCXPlano is the degraded fallback: every line of the
// contenido as an unstyled paragraph.
func GenerarInformeDOCXPlano(contenido *ContenidoInforme, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("docx: create storage dir: %w", err)
	}

	doc := docx.New().WithDefaultTheme()
	for _, linea := range contenido.TextoPlano() {
		doc.AddParagraph().AddText(linea)
	}

	return escribirDOCX(doc, filePath)
}

func escribirDOCX(doc *docx.Docx, filePath string) error {
	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("docx: create %s: %w", filePath, err)
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		// Remove the partial file so a later stat does not mistake it for a
		// finished artifact.
		os.Remove(filePath)
		return fmt.Errorf("docx: write %s: %w", filePath, err)
	}
	return nil
}
