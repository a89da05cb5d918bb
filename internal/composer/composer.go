package composer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"offerdesk/internal/assets"
	"offerdesk/internal/layout"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/utils"

	"github.com/go-pdf/fpdf"
)

const templateImageName = "offer-letter-template"

var ErrComposition = errors.New("offer letter composition failed")

// Document is a finished offer letter held in memory until it is saved.
type Document struct {
	Filename    string
	Content     []byte
	GeneratedAt time.Time
}

type Composer struct {
	table    layout.Table
	template assets.TemplateSource
	now      func() time.Time
	compress bool
	log      logger.Logger
}

type Option func(*Composer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithCompression toggles page stream compression. It is on by default.
func WithCompression(on bool) Option {
	return func(c *Composer) {
		c.compress = on
	}
}

// New builds a composer. template may be nil, in which case every letter is
// drawn without a background.
func New(table layout.Table, template assets.TemplateSource, opts ...Option) *Composer {
	c := &Composer{
		table:    table,
		template: template,
		now:      time.Now,
		compress: true,
		log:      logger.New("composer"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose draws fields onto the template using the layout table. Callers
// validate the fields first; Compose does not reject blanks.
func (c *Composer) Compose(ctx context.Context, fields OfferLetterFields) (Document, error) {
	log := c.log.Function("Compose")

	if err := ctx.Err(); err != nil {
		return Document{}, log.Err("composition cancelled before start", err)
	}

	now := c.now()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: c.table.PageWidth(), Ht: c.table.PageHeight()},
	})
	pdf.SetCompression(c.compress)
	pdf.SetCreator("offerdesk", true)
	pdf.SetTitle("Offer Letter", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	c.drawTemplate(ctx, pdf)

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(c.table.FontFamily(), c.table.FontStyle(), 12)

	values := placeholderValues(fields, now)
	for _, entry := range c.table.Entries() {
		pdf.SetFontSize(entry.FontSize())
		pdf.Text(entry.X(), entry.Y(), translate(entry.Render(values)))
	}

	if err := pdf.Error(); err != nil {
		return Document{}, log.Err("failed to draw offer letter", fmt.Errorf("%w: %w", ErrComposition, err))
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return Document{}, log.Err("failed to write offer letter", fmt.Errorf("%w: %w", ErrComposition, err))
	}

	doc := Document{
		Filename:    Filename(fields.EmployeeName, now),
		Content:     out.Bytes(),
		GeneratedAt: now,
	}
	log.Info("composed offer letter", "filename", doc.Filename, "bytes", len(doc.Content))
	return doc, nil
}

// drawTemplate paints the background across the whole page. Any failure
// leaves the page blank and composition carries on.
func (c *Composer) drawTemplate(ctx context.Context, pdf *fpdf.Fpdf) {
	log := c.log.Function("drawTemplate")

	if c.template == nil {
		log.Warn("no template image configured, proceeding without background")
		return
	}

	img, err := c.template.Load(ctx)
	if err != nil {
		log.Warn("could not load template image, proceeding without background", "error", err)
		return
	}

	options := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(templateImageName, options, bytes.NewReader(img.PNG))
	if !pdf.Ok() {
		log.Warn("could not embed template image, proceeding without background", "error", pdf.Error())
		pdf.ClearError()
		return
	}

	pdf.ImageOptions(templateImageName, 0, 0, c.table.PageWidth(), c.table.PageHeight(), false, options, 0, "")
}

func placeholderValues(fields OfferLetterFields, now time.Time) map[string]string {
	values := fields.Values()
	for name, value := range values {
		values[name] = strings.TrimSpace(value)
	}
	values[layout.PlaceholderDateLong] = utils.LongDate(now)
	values[layout.PlaceholderDateNumeric] = utils.NumericDate(now)
	return values
}

// Placeholders lists every name a layout entry may reference.
func Placeholders() []string {
	names := append([]string{}, OfferLetterFieldNames...)
	return append(names, layout.PlaceholderDateLong, layout.PlaceholderDateNumeric)
}
