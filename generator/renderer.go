package generator

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Output carries the rendered document bytes. PDF is always present; PNG only
// when the raster path produced one.
type Output struct {
	PDF []byte
	PNG []byte
}

// Renderer composes one certificate document. Implementations must treat
// missing assets and QR failures as fallbacks, not errors; Render only fails
// when the output itself cannot be produced.
type Renderer interface {
	Render(d Data, tpl TemplateInfo, templateFound bool, refNo, verifyURL string) (*Output, error)
	Method() string
}

// NewRenderer probes the rendering capability once at startup. Raster
// composition needs a loadable TTF face to measure and draw text; when the
// font is absent the PDF-primitive renderer takes over, which ships its own
// core fonts.
func NewRenderer(fontDir string) Renderer {
	fontPath := filepath.Join(fontDir, "times.ttf")
	if err := gg.NewContext(1, 1).LoadFontFace(fontPath, 16); err != nil {
		log.Printf("Raster fonts unavailable (%v), using PDF-only generation", err)
		return &pdfRenderer{}
	}
	return &rasterRenderer{fontPath: fontPath, fallback: &pdfRenderer{}}
}

// Page geometry: A4 landscape in points for PDF, 1191x842 px for raster.
const (
	pdfPageW = 841.89
	pdfPageH = 595.28

	canvasW = 1191
	canvasH = 842
)

// ---------------------------------------------------------------------------
// Raster renderer (full composition: background image + text + QR)

type rasterRenderer struct {
	fontPath string
	fallback *pdfRenderer
}

func (r *rasterRenderer) Method() string { return "canvas" }

type ggMeasurer struct {
	dc       *gg.Context
	fontPath string
}

func (m *ggMeasurer) Width(text string, size float64) float64 {
	if err := m.dc.LoadFontFace(m.fontPath, size); err != nil {
		return 0
	}
	w, _ := m.dc.MeasureString(text)
	return w
}

func (r *rasterRenderer) Render(d Data, tpl TemplateInfo, templateFound bool, refNo, verifyURL string) (*Output, error) {
	// Without the background asset the raster path has nothing to draw on;
	// the PDF renderer owns the template-missing fallback page.
	if !templateFound {
		return r.fallback.Render(d, tpl, false, refNo, verifyURL)
	}

	background, err := gg.LoadImage(tpl.Path)
	if err != nil {
		log.Printf("Template %s unreadable (%v), using PDF fallback", tpl.Filename, err)
		return r.fallback.Render(d, tpl, false, refNo, verifyURL)
	}

	dc := gg.NewContext(canvasW, canvasH)
	dc.Push()
	dc.Scale(
		float64(canvasW)/float64(background.Bounds().Dx()),
		float64(canvasH)/float64(background.Bounds().Dy()),
	)
	dc.DrawImage(background, 0, 0)
	dc.Pop()

	m := &ggMeasurer{dc: dc, fontPath: r.fontPath}

	// Holder name, shrink-to-fit, centered at 45% height.
	nameMax := float64(canvasW) * 0.6
	size, fits := FitLine(m, d.Name, nameMax, NameStartSize, NameFloorSize, NameStepSize)
	if err := dc.LoadFontFace(r.fontPath, size); err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	nameY := float64(canvasH) * 0.45
	if fits {
		drawShadowed(dc, d.Name, float64(canvasW)/2, nameY, 0.5)
	} else {
		// Even the floor size overflows; draw left-clamped instead of failing.
		drawShadowed(dc, d.Name, float64(canvasW)*0.05, nameY, 0)
	}

	// Narrative paragraph, greedy-wrapped.
	const bodySize = 16.0
	const lineHeight = 24.0
	startX := float64(canvasW) * 0.1
	y := float64(canvasH) * 0.55
	lines := WrapWords(m, Narrative(d), bodySize, float64(canvasW)*0.8)
	if err := dc.LoadFontFace(r.fontPath, bodySize); err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	dc.SetRGB(0, 0, 0)
	for _, line := range lines {
		dc.DrawString(line, startX, y)
		y += lineHeight
	}

	r.drawQR(dc, verifyURL)

	// Reference footer.
	if err := dc.LoadFontFace(r.fontPath, 10); err == nil {
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored("Reference No: "+refNo, float64(canvasW)/2, float64(canvasH)-25, 0.5, 0.5)
		dc.DrawStringAnchored("Verify at: "+verifyURL, float64(canvasW)/2, float64(canvasH)-10, 0.5, 0.5)
	}

	var pngBuf bytes.Buffer
	if err := dc.EncodePNG(&pngBuf); err != nil {
		return nil, fmt.Errorf("encode certificate png: %w", err)
	}

	pdfBytes, err := wrapPNGInPDF(pngBuf.Bytes())
	if err != nil {
		return nil, err
	}
	return &Output{PDF: pdfBytes, PNG: pngBuf.Bytes()}, nil
}

// drawShadowed draws text with a light offset behind it so it stays readable
// over busy template art. ax 0.5 centers on x, 0 left-aligns.
func drawShadowed(dc *gg.Context, text string, x, y, ax float64) {
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawStringAnchored(text, x+1, y+1, ax, 0.5)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(text, x, y, ax, 0.5)
}

func (r *rasterRenderer) drawQR(dc *gg.Context, verifyURL string) {
	const qrSize = 80
	qrX := float64(canvasW-qrSize) / 2
	qrY := float64(canvasH - qrSize - 40)

	qrImg, err := buildQRImage(verifyURL, qrSize)
	if err != nil {
		log.Printf("QR code generation failed (%v), drawing placeholder", err)
		dc.SetRGB(0.94, 0.94, 0.94)
		dc.DrawRectangle(qrX, qrY, qrSize, qrSize)
		dc.Fill()
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.DrawRectangle(qrX, qrY, qrSize, qrSize)
		dc.Stroke()
		if err := dc.LoadFontFace(r.fontPath, 12); err == nil {
			dc.SetRGB(0.4, 0.4, 0.4)
			dc.DrawStringAnchored("QR Code", qrX+qrSize/2, qrY+qrSize/2, 0.5, 0.5)
		}
		return
	}

	// White backing so the code scans over dark template regions.
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(qrX-5, qrY-5, qrSize+10, qrSize+10)
	dc.Fill()
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	dc.DrawRectangle(qrX-5, qrY-5, qrSize+10, qrSize+10)
	dc.Stroke()
	dc.DrawImage(qrImg, int(qrX), int(qrY))
}

func buildQRImage(content string, size int) (image.Image, error) {
	qr, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return nil, err
	}
	return qr.Image(size), nil
}

func wrapPNGInPDF(pngBytes []byte) ([]byte, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, bytes.NewReader(pngBytes))
	pdf.ImageOptions("certificate", 0, 0, pdfPageW, pdfPageH, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write certificate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// PDF-primitive renderer (no raster capability, or no template asset)

type pdfRenderer struct{}

func (p *pdfRenderer) Method() string { return "pdfkit" }

type pdfMeasurer struct {
	pdf *gofpdf.Fpdf
}

func (m *pdfMeasurer) Width(text string, size float64) float64 {
	m.pdf.SetFontSize(size)
	return m.pdf.GetStringWidth(text)
}

func (p *pdfRenderer) Render(d Data, tpl TemplateInfo, templateFound bool, refNo, verifyURL string) (*Output, error) {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.AddPage()

	if templateFound {
		pdf.ImageOptions(tpl.Path, 0, 0, pdfPageW, pdfPageH, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		drawTemplateMissingPage(pdf, tpl.Filename)
	}

	// Holder name, shrink-to-fit, centered.
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Times", "B", NameStartSize)
	m := &pdfMeasurer{pdf: pdf}
	nameMax := pdfPageW * 0.6
	size, fits := FitLine(m, d.Name, nameMax, NameStartSize, NameFloorSize, NameStepSize)
	pdf.SetFontSize(size)
	nameY := 250.0
	if fits {
		pdf.Text((pdfPageW-pdf.GetStringWidth(d.Name))/2, nameY, d.Name)
	} else {
		pdf.Text(40, nameY, d.Name)
	}

	// Narrative paragraph.
	pdf.SetFont("Times", "", 14)
	lines := WrapWords(m, Narrative(d), 14, pdfPageW*0.8)
	y := 300.0
	for _, line := range lines {
		pdf.Text(pdfPageW*0.1, y, line)
		y += 20
	}

	addQRToPDF(pdf, verifyURL)

	// Reference footer.
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Times", "", 10)
	ref := "Reference No: " + refNo
	pdf.Text((pdfPageW-pdf.GetStringWidth(ref))/2, pdfPageH-40, ref)
	pdf.SetFontSize(8)
	verify := "Verify at: " + verifyURL
	pdf.Text((pdfPageW-pdf.GetStringWidth(verify))/2, pdfPageH-25, verify)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write certificate pdf: %w", err)
	}
	return &Output{PDF: buf.Bytes()}, nil
}

// drawTemplateMissingPage produces the clearly-labeled fallback page: the
// certificate stays usable but visually flags the asset gap.
func drawTemplateMissingPage(pdf *gofpdf.Fpdf, templateName string) {
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(0, 0, pdfPageW, pdfPageH, "F")
	pdf.SetDrawColor(0, 0, 0)
	pdf.Rect(20, 20, pdfPageW-40, pdfPageH-40, "D")

	// Rotated red watermark across the middle of the page.
	pdf.SetAlpha(0.15, "Normal")
	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont("Helvetica", "B", 48)
	pdf.TransformBegin()
	pdf.TransformRotate(30, pdfPageW/2, pdfPageH/2)
	wm := "TEMPLATE MISSING"
	pdf.Text(pdfPageW/2-pdf.GetStringWidth(wm)/2, pdfPageH/2, wm)
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")

	pdf.SetTextColor(255, 0, 0)
	pdf.SetFont("Helvetica", "", 12)
	missing := "Missing Template: " + templateName
	pdf.Text((pdfPageW-pdf.GetStringWidth(missing))/2, 50, missing)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Times", "B", 32)
	org := "SURE Trust"
	pdf.Text((pdfPageW-pdf.GetStringWidth(org))/2, 110, org)
	pdf.SetFont("Times", "", 14)
	sub := "(Skill Upgradation for Rural - Youth Empowerment)"
	pdf.Text((pdfPageW-pdf.GetStringWidth(sub))/2, 140, sub)
}

func addQRToPDF(pdf *gofpdf.Fpdf, verifyURL string) {
	const qrSize = 70.0
	qrX := (pdfPageW - qrSize) / 2
	qrY := pdfPageH - qrSize - 50

	qrPNG, err := qrcode.Encode(verifyURL, qrcode.High, 256)
	if err != nil {
		log.Printf("QR code generation failed (%v), drawing placeholder", err)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetDrawColor(204, 204, 204)
		pdf.Rect(qrX, qrY, qrSize, qrSize, "FD")
		pdf.SetTextColor(102, 102, 102)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(qrX+qrSize/2-pdf.GetStringWidth("QR Code")/2, qrY+qrSize/2, "QR Code")
		return
	}

	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(204, 204, 204)
	pdf.Rect(qrX-5, qrY-5, qrSize+10, qrSize+10, "FD")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("verification-qr", qrX, qrY, qrSize, qrSize, false, opts, 0, "")
}
