package generator

import (
	"fmt"
	"log"
	"strings"
	"time"

	"certgen/config"

	"github.com/google/uuid"
)

// Data is the processed input to one composition. Callers build it from a
// stored submission; Prepare fills the defaults.
type Data struct {
	Name      string
	Course    string
	Batch     string
	StartDate string
	EndDate   string
	GPA       string
	Type      string
}

// Result is one produced certificate document. Immutable once returned:
// regenerating for the same submission mints a new reference number instead
// of mutating this one.
type Result struct {
	CertificateID   string       `json:"certificateId"`
	ReferenceNo     string       `json:"referenceNumber"`
	VerificationURL string       `json:"verificationUrl"`
	Template        TemplateInfo `json:"template"`
	TemplateFound   bool         `json:"templateExists"`
	Method          string       `json:"generationMethod"`
	IssuedAt        time.Time    `json:"issuedDate"`
	Output          *Output      `json:"-"`
}

// Generator drives the composition pipeline: resolve template, lay out text,
// render, with the renderer chosen once at startup.
type Generator struct {
	renderer    Renderer
	templateDir string
	verifyBase  string
}

// Default is the global generator instance.
var Default *Generator

// Setup builds the global generator from configuration.
func Setup() {
	Default = New(config.AppConfig.TemplateDir, config.AppConfig.FontDir, config.AppConfig.VerifyBaseURL)
	log.Printf("Certificate generator ready (method=%s)", Default.renderer.Method())
}

// New builds a generator, probing rendering capability once.
func New(templateDir, fontDir, verifyBase string) *Generator {
	return &Generator{
		renderer:    NewRenderer(fontDir),
		templateDir: templateDir,
		verifyBase:  verifyBase,
	}
}

// Prepare normalizes raw submission values into composition input, applying
// the defaults the artwork expects.
func Prepare(name, course, batch, startDate, endDate, gpa, certType string) Data {
	d := Data{
		Name:      strings.TrimSpace(name),
		Course:    strings.ToUpper(strings.TrimSpace(course)),
		Batch:     strings.ToUpper(strings.TrimSpace(batch)),
		StartDate: startDate,
		EndDate:   endDate,
		GPA:       gpa,
		Type:      strings.ToLower(strings.TrimSpace(certType)),
	}
	if d.Name == "" {
		d.Name = "Certificate Holder"
	}
	if d.Course == "" {
		d.Course = "GENERAL COURSE"
	}
	if d.Batch == "" {
		d.Batch = "GEN"
	}
	if d.GPA == "" {
		d.GPA = "8.5"
	}
	if d.Type == "" {
		d.Type = "completion"
	}
	return d
}

// Generate composes one certificate document for the given data. Missing
// template assets and QR failures degrade to documented fallbacks; an error
// here means the document itself could not be produced.
func (g *Generator) Generate(d Data) (*Result, error) {
	refNo := ReferenceNumber(d.Type, d.Course, d.Batch)
	verifyURL := VerificationURL(g.verifyBase, refNo)

	tpl := ResolveTemplate(d.Course, g.templateDir)
	found := templateExists(tpl)
	if !found {
		log.Printf("Template not found: %s (keyword %s)", tpl.Filename, tpl.Keyword)
	}

	out, err := g.renderer.Render(d, tpl, found, refNo, verifyURL)
	if err != nil {
		return nil, fmt.Errorf("compose certificate %s: %w", refNo, err)
	}

	return &Result{
		CertificateID:   uuid.NewString(),
		ReferenceNo:     refNo,
		VerificationURL: verifyURL,
		Template:        tpl,
		TemplateFound:   found,
		Method:          g.renderer.Method(),
		IssuedAt:        time.Now().UTC(),
		Output:          out,
	}, nil
}
