// Package config holds the run configuration shared by the entrypoints.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

const packageName = "daily-sales-report"

// ColumnRule renames every source column whose header contains Substring to Canonical.
type ColumnRule struct {
	Substring string `json:"substring" mapstructure:"substring"`
	Canonical string `json:"canonical" mapstructure:"canonical"`
}

type Config struct {
	// source selection
	SourceDir         string `json:"source_dir,omitempty" mapstructure:"source_dir"`
	SourceFilePattern string `json:"source_file_pattern,omitempty" mapstructure:"source_file_pattern"`
	WorkDir           string `json:"work_dir,omitempty" mapstructure:"work_dir"`

	// loading
	HeaderProbeRows int          `json:"header_probe_rows,omitempty" mapstructure:"header_probe_rows"`
	ColumnRules     []ColumnRule `json:"column_rules,omitempty" mapstructure:"column_rules"`

	// report composition
	OutputDir       string    `json:"output_dir,omitempty" mapstructure:"output_dir"`
	ExcludedColumns []string  `json:"excluded_columns,omitempty" mapstructure:"excluded_columns"`
	ColumnWidths    []float64 `json:"column_widths,omitempty" mapstructure:"column_widths"`
	LogoPath        string    `json:"logo_path,omitempty" mapstructure:"logo_path"`
	ReportTitle     string    `json:"report_title,omitempty" mapstructure:"report_title"`

	// recipients and dispatch
	LookupFile        string  `json:"lookup_file,omitempty" mapstructure:"lookup_file"`
	LookupNameColumn  string  `json:"lookup_name_column,omitempty" mapstructure:"lookup_name_column"`
	LookupEmailColumn string  `json:"lookup_email_column,omitempty" mapstructure:"lookup_email_column"`
	EmailProvider     string  `json:"email_provider,omitempty" mapstructure:"email_provider"`
	SenderAddress     string  `json:"sender_address,omitempty" mapstructure:"sender_address"`
	EmailBody         string  `json:"email_body,omitempty" mapstructure:"email_body"`
	SendRatePerSecond float64 `json:"send_rate_per_second,omitempty" mapstructure:"send_rate_per_second"`
}

func DefaultValueConfig() Config {
	return Config{
		SourceDir:         ".",
		SourceFilePattern: `^Verrichtingen.*?(\d{2}-\d{2}-\d{4}).*\.csv$`,
		WorkDir:           ".",
		HeaderProbeRows:   5,
		ColumnRules: []ColumnRule{
			{Substring: "Datum", Canonical: "Date"},
			{Substring: "Date", Canonical: "Date"},
			// "Salesperson" contains "Sales", so it has to be tried first
			{Substring: "Tandarts", Canonical: "Salesperson"},
			{Substring: "Dentist", Canonical: "Salesperson"},
			{Substring: "Salesperson", Canonical: "Salesperson"},
			{Substring: "Omzet", Canonical: "Sales"},
			{Substring: "Sales", Canonical: "Sales"},
			{Substring: "Patient", Canonical: "Client"},
			{Substring: "Client", Canonical: "Client"},
			{Substring: "Omschrijving", Canonical: "Description"},
			{Substring: "Description", Canonical: "Description"},
		},
		OutputDir:         "sales_reports_pdf",
		ExcludedColumns:   []string{"Salesperson", "Date"},
		ColumnWidths:      []float64{25, 128, 30},
		LogoPath:          "logo.png",
		ReportTitle:       "Sales report",
		LookupFile:        "Dentists Email.csv",
		LookupNameColumn:  "Name",
		LookupEmailColumn: "Email",
		EmailProvider:     "mailgun",
		EmailBody:         "Hello,\n\nAttached is your sales report for the last business day.\n\nKind regards",
		SendRatePerSecond: 1,
	}
}

// create config with default values before config gets initialized
var Cfg Config = DefaultValueConfig() // this one we use to access config values from anywhere

func GetPackageName() string {
	return packageName
}

/*
InitializeConfig reads the JSON configuration file at configPath into Cfg.

Keys present in the file can be overridden with SALES_REPORT_<KEY> environment
variables. Every field the file leaves empty keeps its default value. A
missing file is not an error: the defaults are used as they are.
*/
func InitializeConfig(configPath string) {
	if strings.TrimSpace(configPath) == "" {
		tl.Log(tl.Info, palette.Purple, "%s config path is %s, keeping %s", packageName, "empty", "default config")
		return
	}

	if _, statErr := os.Stat(configPath); statErr != nil {
		tl.Log(tl.Info, palette.Purple, "%s config '%s' is %s, keeping %s", packageName, configPath, "not present", "default config")
		return
	}

	localConfig, loadErr := loadConfigFile(configPath)
	if loadErr != nil {
		tl.Log(tl.Warning, palette.PurpleBold, "Unable to read config '%s': '%s'. Keeping %s", configPath, loadErr, "default config")
		return
	}

	Cfg = localConfig

	tl.ApplyDefaults(&Cfg, DefaultValueConfig(), func(field string, defVal any) {
		tl.Log(
			tl.Info, palette.Purple,
			"%s field is %s in %s configuration. Using default value: %v",
			field, "missing", packageName, tl.PrettyForStderr(defVal),
		)
	})

	tl.Log(tl.Info, palette.Green, "%s config was %s, using '%s'", packageName, "provided", configPath)
	tl.LogJSON(tl.Verbose, palette.CyanDim, fmt.Sprintf("%s configuration", packageName), Cfg)
}

func loadConfigFile(configPath string) (localConfig Config, err error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("SALES_REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return localConfig, err
	}

	err = v.Unmarshal(&localConfig)
	return localConfig, err
}

/*
CheckIfEnvVarsPresent loads a .env file from the working directory (if any)
and warns about every listed variable that is still unset.

Providers validate their own credentials when they are used, so a missing
variable here is only reported.
*/
func CheckIfEnvVarsPresent(names ...string) (missing []string) {
	loadErr := godotenv.Load()
	if loadErr == nil {
		tl.Log(tl.Info1, palette.Cyan, "Loaded environment from '%s'", ".env")
	}

	for _, name := range names {
		if strings.TrimSpace(os.Getenv(name)) == "" {
			missing = append(missing, name)
			tl.Log(tl.Verbose, palette.YellowDim, "Environment variable '%s' is %s", name, "not set")
		}
	}
	return missing
}
