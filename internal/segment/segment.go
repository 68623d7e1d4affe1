// Package segment turns raw tender text into titled sections using the
// layout heuristics that Chilean public tenders tend to follow.
package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Document is an ordered set of titled sections. Insertion order is
// preserved through JSON round trips.
type Document struct {
	titles   []string
	sections map[string]string
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{sections: map[string]string{}}
}

// Add appends a section. A repeated title gets an index suffix so both
// occurrences stay visible instead of the later one overwriting the
// earlier.
func (d *Document) Add(title, body string) {
	key := title
	for n := 2; ; n++ {
		if _, exists := d.sections[key]; !exists {
			break
		}
		key = fmt.Sprintf("%s (%d)", title, n)
	}
	d.titles = append(d.titles, key)
	d.sections[key] = body
}

// Titles returns the section titles in insertion order.
func (d *Document) Titles() []string {
	out := make([]string, len(d.titles))
	copy(out, d.titles)
	return out
}

// Body returns the body for a title.
func (d *Document) Body(title string) (string, bool) {
	body, ok := d.sections[title]
	return body, ok
}

// Len returns the number of sections.
func (d *Document) Len() int { return len(d.titles) }

// String renders the document as "TITLE:\nbody" blocks, the shape fed
// into collaborator prompts.
func (d *Document) String() string {
	var b strings.Builder
	for _, t := range d.titles {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t + ":\n" + d.sections[t])
	}
	return b.String()
}

// MarshalJSON emits a JSON object with keys in insertion order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range d.titles {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.sections[t])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving key order.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("segment: expected JSON object")
	}
	d.titles = nil
	d.sections = map[string]string{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var val string
		if err := dec.Decode(&val); err != nil {
			return err
		}
		d.titles = append(d.titles, key)
		d.sections[key] = val
	}
	_, err = dec.Token()
	return err
}

var (
	colonTitleRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑa-záéíóúñ\s]+:$`)
	numberedRe   = regexp.MustCompile(`^\d+\.\s*[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑa-záéíóúñ\s]+$`)
	romanRe      = regexp.MustCompile(`^[IVX]+\.\s*[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑa-záéíóúñ\s]+$`)
	letteredRe   = regexp.MustCompile(`^[A-Z]\.\s*[A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑa-záéíóúñ\s]+$`)
	percentRe    = regexp.MustCompile(`\d+%`)
	manyBlanksRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

var domainKeywords = []string{
	"OBJETIVO", "ALCANCE", "REQUISITOS", "ESPECIFICACIONES", "PLAZOS",
	"PRESUPUESTO", "CRITERIOS", "EVALUACIÓN", "CONDICIONES", "GARANTÍAS",
	"METODOLOGÍA", "EQUIPO", "EXPERIENCIA", "REFERENCIAS", "ENTREGABLES",
	"CRONOGRAMA", "FACTORES", "RIESGOS", "CALIDAD", "SOPORTE",
	"DESCRIPCIÓN", "CARACTERÍSTICAS", "FUNCIONALIDADES", "USUARIOS",
	"PERFILES", "ROLES", "PERMISOS", "INTEGRACIÓN", "DESARROLLO",
	"IMPLEMENTACIÓN", "CAPACITACIÓN", "DOCUMENTACIÓN", "PRUEBAS",
	"DESPLIEGUE", "MANTENIMIENTO", "SERVICIOS", "PRODUCTOS", "SOLUCIÓN",
	"SISTEMA", "PLATAFORMA", "APLICACIÓN", "SOFTWARE", "HARDWARE",
	"INFRAESTRUCTURA", "TECNOLOGÍA", "ARQUITECTURA", "BASE DE DATOS",
	"INTERFAZ", "API", "WEB", "MÓVIL", "CLOUD", "SEGURIDAD", "BACKUP",
	"RESPALDO", "MONITOREO", "REPORTES", "ANÁLISIS", "ESTUDIO",
	"DIAGNÓSTICO", "PLAN", "ESTRATEGIA", "PROCESO", "PROCEDIMIENTO",
	"POLÍTICA", "ESTÁNDAR", "NORMATIVA",
}

var tenderTerms = []string{
	"LICITACIÓN", "CONCURSO", "CONVOCATORIA", "BASES", "TÉRMINOS",
	"CONDICIONES", "REQUISITOS", "ESPECIFICACIONES", "PLIEGO",
	"PROPUESTA", "OFERTA", "PRESENTACIÓN", "EVALUACIÓN", "SELECCIÓN",
}

// Segment splits raw document text into titled sections. It never
// returns an empty document for non-empty input: fallbacks degrade
// from paragraph splitting down to a single whole-content section.
func Segment(text string) *Document {
	doc := NewDocument()
	current := ""
	var buf []string

	commit := func() {
		if current == "" {
			return
		}
		body := strings.TrimSpace(strings.Join(buf, "\n"))
		if utf8.RuneCountInString(body) > 10 {
			doc.Add(current, body)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeTitle(line) {
			commit()
			current = strings.TrimRight(line, ":")
			buf = buf[:0]
		} else {
			buf = append(buf, line)
		}
	}
	commit()

	if doc.Len() == 0 {
		doc = paragraphFallback(text)
	}

	doc = cleanup(doc)
	if doc.Len() == 0 && strings.TrimSpace(text) != "" {
		doc = NewDocument()
		doc.Add("contenido_completo", strings.TrimSpace(text))
	}
	return doc
}

func looksLikeTitle(line string) bool {
	if isAllUpper(line) && utf8.RuneCountInString(line) > 3 {
		return true
	}
	if colonTitleRe.MatchString(line) || numberedRe.MatchString(line) ||
		romanRe.MatchString(line) || letteredRe.MatchString(line) {
		return true
	}
	// Keyword matches only count for title-shaped lines; otherwise any
	// prose sentence mentioning "sistema" would start a new section.
	if titleShaped(line) {
		upper := strings.ToUpper(line)
		for _, kw := range domainKeywords {
			if strings.Contains(upper, kw) {
				return true
			}
		}
		for _, kw := range tenderTerms {
			if strings.Contains(upper, kw) {
				return true
			}
		}
	}
	return shortTitleLine(line)
}

// isAllUpper mirrors the "no lowercase letters, at least one letter"
// notion of an uppercase line.
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func titleShaped(line string) bool {
	return utf8.RuneCountInString(line) < 100 &&
		!strings.HasSuffix(line, ".") &&
		!strings.HasSuffix(line, ",")
}

func shortTitleLine(line string) bool {
	if utf8.RuneCountInString(line) >= 100 || len(strings.Fields(line)) > 8 {
		return false
	}
	first, _ := utf8.DecodeRuneInString(line)
	if !unicode.IsUpper(first) {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") {
		return false
	}
	return !percentRe.MatchString(line)
}

func paragraphFallback(text string) *Document {
	doc := NewDocument()
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) > 1 {
		n := 0
		for _, p := range paragraphs {
			if n >= 10 {
				break
			}
			p = strings.TrimSpace(p)
			if utf8.RuneCountInString(p) > 50 {
				n++
				doc.Add(fmt.Sprintf("Sección_%d", n), p)
			}
		}
	}
	if doc.Len() == 0 {
		trimmed := strings.TrimSpace(text)
		if utf8.RuneCountInString(trimmed) > 200 {
			doc.Add("contenido", trimmed)
		}
	}
	return doc
}

// cleanup drops near-empty sections and normalizes runs of blank lines.
func cleanup(doc *Document) *Document {
	out := NewDocument()
	for _, title := range doc.titles {
		body := strings.TrimSpace(doc.sections[title])
		if utf8.RuneCountInString(body) <= 20 {
			continue
		}
		out.Add(title, manyBlanksRe.ReplaceAllString(body, "\n\n"))
	}
	return out
}
