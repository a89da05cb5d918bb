package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var letterPlaceholders = []string{
	"employeeName", "positionTitle", "department", "companyName", "joiningDate", "salary",
	PlaceholderDateLong, PlaceholderDateNumeric,
}

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 210.0, table.PageWidth())
	assert.Equal(t, 297.0, table.PageHeight())
	assert.Equal(t, "Helvetica", table.FontFamily())
	assert.Equal(t, "B", table.FontStyle())
	assert.Equal(t, 12, table.Len())

	entries := table.Entries()
	first := entries[0]
	assert.Equal(t, "{dateLong}", first.Text())
	assert.Equal(t, 24.0, first.X())
	assert.Equal(t, 80.0, first.Y())
	assert.Equal(t, 12.0, first.FontSize())

	assert.Equal(t, 11.0, entries[1].FontSize())

	last := entries[len(entries)-1]
	assert.Equal(t, "{dateNumeric}", last.Text())
	assert.Equal(t, 145.0, last.X())
	assert.Equal(t, 266.0, last.Y())
}

func TestDefault_OnlyKnownPlaceholders(t *testing.T) {
	_, err := Load("", letterPlaceholders)
	assert.NoError(t, err)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	entries := table.Entries()
	entries[0] = NewEntry("tampered", 1, 1, 1)

	assert.Equal(t, "{dateLong}", table.Entries()[0].Text())
}

func TestEntry_Render(t *testing.T) {
	values := map[string]string{"positionTitle": "Engineer", "companyName": "Acme"}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "suffix punctuation", text: "{positionTitle}.", want: "Engineer."},
		{name: "two placeholders", text: "{positionTitle} at {companyName}", want: "Engineer at Acme"},
		{name: "unknown placeholder", text: "{salary},", want: ","},
		{name: "literal", text: "Sincerely", want: "Sincerely"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewEntry(tt.text, 0, 0, 12).Render(values))
		})
	}
}

func TestEntry_Placeholders(t *testing.T) {
	entry := NewEntry("{employeeName} joins {companyName}.", 0, 0, 12)
	assert.Equal(t, []string{"employeeName", "companyName"}, entry.Placeholders())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		errorMsg string
	}{
		{name: "bad yaml", yaml: "page: [", errorMsg: "failed to parse layout"},
		{name: "no page", yaml: "entries: [{text: a, x: 1, y: 1, size: 1}]", errorMsg: "page size"},
		{name: "no entries", yaml: "page: {width: 210, height: 297}", errorMsg: "no entries"},
		{
			name:     "missing size",
			yaml:     "page: {width: 210, height: 297}\nentries: [{text: a, x: 1, y: 1}]",
			errorMsg: "no font size",
		},
		{
			name:     "off page",
			yaml:     "page: {width: 210, height: 297}\nentries: [{text: a, x: 300, y: 1, size: 12}]",
			errorMsg: "off the page",
		},
		{
			name:     "unknown placeholder",
			yaml:     "page: {width: 210, height: 297}\nentries: [{text: '{bonus}', x: 1, y: 1, size: 12}]",
			errorMsg: "unknown field \"bonus\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml), letterPlaceholders)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	content := "page: {width: 100, height: 148}\nentries:\n  - {text: '{employeeName}', x: 10, y: 20, size: 9}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := Load(path, letterPlaceholders)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "Helvetica", table.FontFamily())

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}
