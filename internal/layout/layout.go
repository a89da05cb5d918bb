package layout

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	PlaceholderDateLong    = "dateLong"
	PlaceholderDateNumeric = "dateNumeric"
)

//go:embed offer_letter.yaml
var offerLetterYAML []byte

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z]+)\}`)

// Entry places one text expression on the page. Values are millimetres and
// points; the zero value is never valid.
type Entry struct {
	text string
	x    float64
	y    float64
	size float64
}

func NewEntry(text string, x, y, size float64) Entry {
	return Entry{text: text, x: x, y: y, size: size}
}

func (e Entry) Text() string      { return e.text }
func (e Entry) X() float64        { return e.x }
func (e Entry) Y() float64        { return e.y }
func (e Entry) FontSize() float64 { return e.size }

// Placeholders lists the names referenced by the entry's text expression.
func (e Entry) Placeholders() []string {
	var names []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(e.text, -1) {
		names = append(names, match[1])
	}
	return names
}

// Render substitutes every {name} with values[name]. Unknown names render as
// empty strings.
func (e Entry) Render(values map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(e.text, func(token string) string {
		return values[token[1:len(token)-1]]
	})
}

// Table is an ordered, read-only list of entries plus the page geometry they
// were authored against.
type Table struct {
	pageWidth  float64
	pageHeight float64
	fontFamily string
	fontStyle  string
	entries    []Entry
}

func (t Table) PageWidth() float64  { return t.pageWidth }
func (t Table) PageHeight() float64 { return t.pageHeight }
func (t Table) FontFamily() string  { return t.fontFamily }
func (t Table) FontStyle() string   { return t.fontStyle }
func (t Table) Len() int            { return len(t.entries) }

// Entries returns a copy so callers cannot reorder the table.
func (t Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

type document struct {
	Page struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"page"`
	Font struct {
		Family string `yaml:"family"`
		Style  string `yaml:"style"`
	} `yaml:"font"`
	Entries []struct {
		Text string  `yaml:"text"`
		X    float64 `yaml:"x"`
		Y    float64 `yaml:"y"`
		Size float64 `yaml:"size"`
	} `yaml:"entries"`
}

// Default returns the table that ships with the binary.
func Default() (Table, error) {
	return Parse(offerLetterYAML, nil)
}

// Load reads a table from path, or the embedded table when path is empty.
// allowed limits which placeholders entries may reference; nil allows any.
func Load(path string, allowed []string) (Table, error) {
	if path == "" {
		return Parse(offerLetterYAML, allowed)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	return Parse(raw, allowed)
}

func Parse(raw []byte, allowed []string) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Table{}, fmt.Errorf("failed to parse layout: %w", err)
	}

	if doc.Page.Width <= 0 || doc.Page.Height <= 0 {
		return Table{}, fmt.Errorf("layout page size must be positive")
	}
	if len(doc.Entries) == 0 {
		return Table{}, fmt.Errorf("layout has no entries")
	}

	table := Table{
		pageWidth:  doc.Page.Width,
		pageHeight: doc.Page.Height,
		fontFamily: doc.Font.Family,
		fontStyle:  doc.Font.Style,
		entries:    make([]Entry, 0, len(doc.Entries)),
	}
	if table.fontFamily == "" {
		table.fontFamily = "Helvetica"
	}

	for i, raw := range doc.Entries {
		entry := NewEntry(raw.Text, raw.X, raw.Y, raw.Size)
		if entry.text == "" {
			return Table{}, fmt.Errorf("layout entry %d has no text", i)
		}
		if entry.size <= 0 {
			return Table{}, fmt.Errorf("layout entry %d has no font size", i)
		}
		if entry.x < 0 || entry.x > table.pageWidth || entry.y < 0 || entry.y > table.pageHeight {
			return Table{}, fmt.Errorf("layout entry %d at (%v, %v) is off the page", i, entry.x, entry.y)
		}
		if allowed != nil {
			for _, name := range entry.Placeholders() {
				if !slices.Contains(allowed, name) {
					return Table{}, fmt.Errorf("layout entry %d references unknown field %q", i, name)
				}
			}
		}
		table.entries = append(table.entries, entry)
	}

	return table, nil
}
