package generator

import (
	"os"
	"path/filepath"
	"strings"
)

// TemplateInfo identifies the background asset chosen for a certificate.
type TemplateInfo struct {
	Filename string `json:"filename"`
	Keyword  string `json:"keyword"`
	Path     string `json:"-"`
}

// DefaultTemplate is used when no keyword matches the course text.
const (
	DefaultTemplate = "CC.jpg"
	DefaultKeyword  = "DEFAULT"
)

// templateEntry pairs a course keyword with its background asset.
type templateEntry struct {
	Keyword  string
	Filename string
}

// templateCatalog is the closed, hand-curated keyword table. Entries are
// scanned in order and the first keyword found as a substring of the course
// text wins, so the ordering here is part of the contract: PYTHON must be
// seen before the generic CS/DS entries, and VLSI before its batch variants.
var templateCatalog = []templateEntry{
	// Programming languages
	{"PYTHON", "G28 Python.jpg"},
	{"JAVA", "G12 Java.jpg"},
	{"SQL", "G12 SQL.jpg"},

	// Technologies and domains
	{"CLOUD", "CC.jpg"},
	{"COMPUTING", "CC.jpg"},
	{"DATA", "DSA.jpg"},
	{"STRUCTURES", "DSA.jpg"},
	{"DSA", "DSA.jpg"},
	{"ALGORITHMS", "DSA.jpg"},
	{"ROBOTICS", "ROBOTICS.jpg"},
	{"ANDROID", "AAD.jpg"},
	{"AAD", "AAD.jpg"},
	{"AUTOCAD", "Autocad.jpg"},
	{"SAP", "SAP FICO.jpg"},
	{"FICO", "SAP FICO.jpg"},
	{"SOFTWARE", "ST&T.jpg"},
	{"TESTING", "ST&T.jpg"},

	// VLSI variants
	{"VLSI", "G10 VLSI.jpg"},
	{"G10", "G10 VLSI.jpg"},
	{"G13", "G13 VLSI.jpg"},
	{"G14", "G14 VLSI.jpg"},
	{"G15", "G15 VLSI.jpg"},
	{"G16", "G16 VLSI.jpg"},

	// Computer science and engineering
	{"CYBER", "G6 CS.jpg"},
	{"SECURITY", "G6 CS.jpg"},
	{"CS", "G6 CS.jpg"},
	{"EMBEDDED", "G7 ES.jpg"},
	{"ES", "G7 ES.jpg"},
	{"SCIENCE", "G8 DS.jpg"},
	{"DS", "G8 DS.jpg"},
}

// ResolveTemplate keyword-matches the free-text course string against the
// catalog. Falls back to the default asset with the sentinel keyword.
func ResolveTemplate(course, templateDir string) TemplateInfo {
	needle := strings.ToUpper(strings.TrimSpace(course))

	for _, entry := range templateCatalog {
		if strings.Contains(needle, entry.Keyword) {
			return TemplateInfo{
				Filename: entry.Filename,
				Keyword:  entry.Keyword,
				Path:     filepath.Join(templateDir, entry.Filename),
			}
		}
	}
	return TemplateInfo{
		Filename: DefaultTemplate,
		Keyword:  DefaultKeyword,
		Path:     filepath.Join(templateDir, DefaultTemplate),
	}
}

// CatalogFilenames returns the distinct asset filenames the catalog can
// resolve to, default included. Used by the startup asset sync.
func CatalogFilenames() []string {
	seen := map[string]bool{DefaultTemplate: true}
	names := []string{DefaultTemplate}
	for _, entry := range templateCatalog {
		if !seen[entry.Filename] {
			seen[entry.Filename] = true
			names = append(names, entry.Filename)
		}
	}
	return names
}

func templateExists(tpl TemplateInfo) bool {
	info, err := os.Stat(tpl.Path)
	return err == nil && !info.IsDir()
}
