package contract

import (
	"fmt"
	"maps"
	"strings"

	"github.com/flowlens/flowlens/schema"
)

// Default values for configuration.
const (
	DefaultThresholdDays = 30.0
	DefaultResultLimit   = 25
	MaxResultLimit       = 1000
	DefaultPrecision     = 1
	DefaultWindow        = string(schema.CurrentPISelector)
)

// Config holds the runtime configuration for an analysis request.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile       string
	CommitmentsFile string
	CalendarFile    string

	Window string // Window selector: relative keyword or PI label
	ARTs   []string
	Teams  []string
	PIs    []string

	ThresholdDays    float64
	IncludeCompleted bool
	Stage            string // Stage focus for stuck-item reports; empty means top bottleneck

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Mappings is the metric-to-dimension wiring, defaults plus any config
	// file overrides.
	Mappings []schema.DimensionMapping

	// ExtraMetrics are externally computed metric values fed straight into
	// the scorecard namespace (defect_escape_rate, team_stability).
	ExtraMetrics map[string]float64
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	Commitments string `mapstructure:"commitments"`
	Calendar    string `mapstructure:"calendar"`

	Window string `mapstructure:"window"`
	ART    string `mapstructure:"art"`
	Team   string `mapstructure:"team"`
	PI     string `mapstructure:"pi"`

	ThresholdDays    float64 `mapstructure:"threshold-days"`
	IncludeCompleted bool    `mapstructure:"include-completed"`
	Stage            string  `mapstructure:"stage"`

	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Dimension wiring from config file ---
	Mappings []schema.DimensionMapping `mapstructure:"dimensions"`

	// --- Externally supplied metrics from config file ---
	Metrics map[string]float64 `mapstructure:"metrics"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ARTs = append([]string(nil), c.ARTs...)
	clone.Teams = append([]string(nil), c.Teams...)
	clone.PIs = append([]string(nil), c.PIs...)
	clone.Mappings = append([]schema.DimensionMapping(nil), c.Mappings...)
	if c.ExtraMetrics != nil {
		clone.ExtraMetrics = make(map[string]float64, len(c.ExtraMetrics))
		maps.Copy(clone.ExtraMetrics, c.ExtraMetrics)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processScopeSelectors(cfg, input); err != nil {
		return err
	}
	if err := processDimensionMappings(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-scope fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = input.InputFileStr
	cfg.CommitmentsFile = input.Commitments
	cfg.CalendarFile = input.Calendar
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.IncludeCompleted = input.IncludeCompleted
	cfg.Stage = strings.TrimSpace(input.Stage)
	cfg.ExtraMetrics = input.Metrics

	if cfg.Stage != "" {
		if _, ok := schema.KnownStages[cfg.Stage]; !ok {
			return fmt.Errorf("unknown stage %q. must be one of: %s", cfg.Stage, strings.Join(schema.AllStages, ", "))
		}
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Window Validation ---
	cfg.Window = strings.TrimSpace(input.Window)
	if cfg.Window == "" {
		return fmt.Errorf("window selector cannot be empty")
	}

	// --- Threshold Validation ---
	if input.ThresholdDays < 0 {
		return fmt.Errorf("threshold-days must be non-negative (received %.1f)", input.ThresholdDays)
	}
	cfg.ThresholdDays = input.ThresholdDays

	// --- ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- Store Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processScopeSelectors splits the comma-separated scope flags.
func processScopeSelectors(cfg *Config, input *ConfigRawInput) error {
	cfg.ARTs = splitSelector(input.ART)
	cfg.Teams = splitSelector(input.Team)
	cfg.PIs = splitSelector(input.PI)
	return nil
}

// splitSelector turns "SAART, Phoenix" into its trimmed parts. Case
// folding happens inside the engine so selector values round-trip
// unchanged into scorecard scope ids.
func splitSelector(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// processDimensionMappings validates config-file dimension wiring. Any
// configured mappings replace the default table wholesale.
func processDimensionMappings(cfg *Config, input *ConfigRawInput) error {
	if len(input.Mappings) == 0 {
		cfg.Mappings = schema.DefaultDimensionMappings()
		return nil
	}

	validDimensions := make(map[schema.Dimension]struct{}, len(schema.AllDimensions))
	for _, d := range schema.AllDimensions {
		validDimensions[d] = struct{}{}
	}

	for i, m := range input.Mappings {
		if m.Metric == "" {
			return fmt.Errorf("dimension mapping %d: metric name is required", i)
		}
		if _, ok := validDimensions[m.Dimension]; !ok {
			return fmt.Errorf("dimension mapping %d: unknown dimension %q", i, m.Dimension)
		}
		if m.Weight <= 0 {
			return fmt.Errorf("dimension mapping %d: weight must be positive (received %v)", i, m.Weight)
		}
		if m.Direction != schema.HigherIsBetter && m.Direction != schema.LowerIsBetter {
			return fmt.Errorf("dimension mapping %d: direction must be %s or %s", i, schema.HigherIsBetter, schema.LowerIsBetter)
		}
	}
	cfg.Mappings = input.Mappings
	return nil
}

// ValidateStoreConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
