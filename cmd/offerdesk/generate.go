package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"offerdesk/internal/assets"
	"offerdesk/internal/composer"
	letterController "offerdesk/internal/controllers/letter"
	"offerdesk/internal/forms"
	"offerdesk/internal/layout"
	"offerdesk/internal/logger"
	. "offerdesk/internal/models"
	"offerdesk/internal/services"
	"offerdesk/internal/utils"
	"offerdesk/internal/validation"

	"github.com/spf13/cobra"
)

func (c *cli) generateCmd() *cobra.Command {
	var (
		fields OfferLetterFields
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compose an offer letter PDF into a file",
		Example: `  offerdesk generate --employee-name "Jane Doe" --position-title "Software Engineer" \
    --department Engineering --company-name "Acme Corp" --joining-date 2026-11-02 \
    --salary "$50,000 per annum" --out ./letters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.generate(cmd, fields, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fields.EmployeeName, "employee-name", "", "employee name")
	flags.StringVar(&fields.PositionTitle, "position-title", "", "position title")
	flags.StringVar(&fields.Department, "department", "", "department")
	flags.StringVar(&fields.CompanyName, "company-name", "", "company name")
	flags.StringVar(&fields.JoiningDate, "joining-date", "", "joining date, e.g. 2026-11-02 or 11/2/2026")
	flags.StringVar(&fields.Salary, "salary", "", "salary text as it should appear")
	flags.StringVar(&outDir, "out", ".", "directory to write the PDF into")

	return cmd
}

func (c *cli) generate(cmd *cobra.Command, fields OfferLetterFields, outDir string) (string, error) {
	log := logger.New("main").Function("generate")

	if missing := validation.MissingOfferLetterFields(fields); len(missing) > 0 {
		return "", fmt.Errorf("%s: missing %s", validation.MissingFieldsMessage, strings.Join(missing, ", "))
	}

	// The browser's date input always posts YYYY-MM-DD; bring typed dates to
	// the same form so both paths print identical letters.
	date := utils.NewDateValidator().ValidateAndConvert(fields.JoiningDate)
	if !date.IsValid {
		return "", fmt.Errorf("unrecognised joining date %q", fields.JoiningDate)
	}
	fields.JoiningDate = date.StandardFormat

	table, err := layout.Load(c.config.LayoutPath, composer.Placeholders())
	if err != nil {
		return "", log.Err("failed to load layout table", err, "path", c.config.LayoutPath)
	}

	controller := letterController.New(
		composer.New(table, assets.NewFileTemplate(c.config.TemplateImagePath)),
		services.NewMemoryGuard(),
		forms.NewStore(c.config.FormIdleTTL),
		nil,
	)

	result, err := controller.Generate(cmd.Context(), "", fields)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", log.Err("failed to create output directory", err, "dir", outDir)
	}
	path := filepath.Join(outDir, result.Document.Filename)
	if err := os.WriteFile(path, result.Document.Content, 0o644); err != nil {
		return "", log.Err("failed to write offer letter", err, "path", path)
	}

	log.Info("Offer letter written", "path", path, "bytes", len(result.Document.Content))
	return path, nil
}
