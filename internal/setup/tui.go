package setup

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/config"
	"gopkg.in/yaml.v3"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard.
func RunTUI() error {
	var (
		inputPath   string
		outputDir   string
		pair        string
		apiURL      string
		timeoutStr  string
		fallbackStr string
		s3Bucket    string
		s3Prefix    string
		confirm     bool
	)

	// defaults
	inputPath = "data/orders.csv"
	outputDir = "pipeline_outputs"
	pair = "BRL_USD"
	apiURL = "https://api.exchangerate.host"
	timeoutStr = "10s"
	fallbackStr = "0.25"
	s3Prefix = "processed"

	// step 1: welcome
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("SALESFX CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's wire up your sales pipeline.\n"))

	// files
	fmt.Println(stepStyle.Render("STEP 1: FILES"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Orders File").
				Description("CSV or XLSX with order_id, order_purchase_timestamp and an amount column").
				Value(&inputPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("input path cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output Directory").
				Description("Reports and the rate cache are written here").
				Value(&outputDir),
		),
	).Run()
	if err != nil {
		return err
	}

	// currencies
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SALESFX CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: CURRENCIES"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Currency Pair").
				Description("Must contain underscore (e.g. BRL_USD)").
				Value(&pair).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("pair cannot be empty")
					}
					if !containsUnderscore(s) {
						return fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. BRL_USD)")
					}
					return nil
				}),
			huh.NewInput().
				Title("Fallback Rate").
				Description("Fixed rate for months without API data (e.g. 0.25)").
				Value(&fallbackStr).
				Validate(validateFallbackRate),
		),
	).Run()
	if err != nil {
		return err
	}

	// rates API
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SALESFX CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: RATES API"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API URL").
				Description("exchangerate.host compatible endpoint").
				Value(&apiURL),
			huh.NewInput().
				Title("Request Timeout").
				Description("Duration string (e.g. 10s, 1m)").
				Value(&timeoutStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// upload (optional)
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SALESFX CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: S3 UPLOAD"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("S3 Bucket").
				Description("Leave empty to skip uploading").
				Value(&s3Bucket),
			huh.NewInput().
				Title("Key Prefix").
				Value(&s3Prefix),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("SALESFX CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	// show summary
	summary := fmt.Sprintf(
		"Input: %s\nOutput: %s\nPair: %s\nAPI: %s\nFallback Rate: %s\n",
		inputPath, outputDir, pair, apiURL, fallbackStr,
	)
	if s3Bucket != "" {
		summary += fmt.Sprintf("S3: s3://%s/%s\n", s3Bucket, s3Prefix)
	}
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	cfgTmp := config.ConfigTmp{
		InputPath:         inputPath,
		OutputDir:         outputDir,
		Pair:              pair,
		RatesAPIURL:       apiURL,
		RequestTimeoutStr: timeoutStr,
		FallbackRateStr:   fallbackStr,
		S3Bucket:          s3Bucket,
		S3Prefix:          s3Prefix,
	}

	data, err := yaml.Marshal(cfgTmp)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	// write to config.gen.yaml
	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nRun the pipeline with: salesfx run --config %s", filename, filename)))
	return nil
}

func validateFallbackRate(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func containsUnderscore(s string) bool {
	for _, r := range s {
		if r == '_' {
			return true
		}
	}
	return false
}
