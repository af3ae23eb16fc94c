package models

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	dateLayout = "2006-01-02"

	// distributions must sum to 1.0 within this tolerance
	weightTolerance = 0.02
)

type BusinessHours struct {
	Open       int      `mapstructure:"open" yaml:"open"`
	Close      int      `mapstructure:"close" yaml:"close"`
	ClosedDays []string `mapstructure:"closed_days" yaml:"closed_days"`
}

type SpecialEvent struct {
	Date       string  `mapstructure:"date" yaml:"date"`
	Name       string  `mapstructure:"name" yaml:"name"`
	Multiplier float64 `mapstructure:"multiplier" yaml:"multiplier"`
}

type DemandConfig struct {
	Distribution string  `mapstructure:"distribution" yaml:"distribution"`
	StddevRatio  float64 `mapstructure:"stddev_ratio" yaml:"stddev_ratio"`
}

type IDGeneration struct {
	CustomerIDStart  int64 `mapstructure:"customer_id_start" yaml:"customer_id_start"`
	OrderIDStart     int64 `mapstructure:"order_id_start" yaml:"order_id_start"`
	OrderItemIDStart int64 `mapstructure:"order_item_id_start" yaml:"order_item_id_start"`
}

type DataGeneration struct {
	Seed                 int64                         `mapstructure:"seed" yaml:"seed"`
	StartDate            string                        `mapstructure:"start_date" yaml:"start_date"`
	EndDate              string                        `mapstructure:"end_date" yaml:"end_date"`
	BaseCustomersPerHour float64                       `mapstructure:"base_customers_per_hour" yaml:"base_customers_per_hour"`
	BusinessHours        BusinessHours                 `mapstructure:"business_hours" yaml:"business_hours"`
	DayOfWeekMultiplier  map[string]float64            `mapstructure:"day_of_week_multiplier" yaml:"day_of_week_multiplier"`
	HourMultiplier       map[string]float64            `mapstructure:"hour_multiplier" yaml:"hour_multiplier"`
	WeatherMultiplier    map[string]float64            `mapstructure:"weather_multiplier" yaml:"weather_multiplier"`
	SeasonalMultiplier   map[string]float64            `mapstructure:"seasonal_multiplier" yaml:"seasonal_multiplier"`
	SpecialEvents        []SpecialEvent                `mapstructure:"special_events" yaml:"special_events"`
	WeatherProbabilities map[string]map[string]float64 `mapstructure:"weather_probabilities" yaml:"weather_probabilities"`
	Temperature          map[string]float64            `mapstructure:"temperature" yaml:"temperature"` // season -> base °C
	Demand               DemandConfig                  `mapstructure:"demand" yaml:"demand"`
	IDGeneration         IDGeneration                  `mapstructure:"id_generation" yaml:"id_generation"`
}

type AgeGroup struct {
	Name      string  `mapstructure:"name" yaml:"name"`
	MinAge    int     `mapstructure:"min_age" yaml:"min_age"`
	MaxAge    int     `mapstructure:"max_age" yaml:"max_age"`
	BaseRatio float64 `mapstructure:"base_ratio" yaml:"base_ratio"`
}

type PatternConditions struct {
	DayTypes []string `mapstructure:"day_types" yaml:"day_types"`
	Hours    []int    `mapstructure:"hours" yaml:"hours"`
}

type Demographics struct {
	GenderRatio     map[string]float64 `mapstructure:"gender_ratio" yaml:"gender_ratio"`
	AgeDistribution map[string]float64 `mapstructure:"age_distribution" yaml:"age_distribution"`
}

// BehavioralPattern maps a set of time-slot conditions to a demographic mix.
type BehavioralPattern struct {
	Name         string            `mapstructure:"name" yaml:"name"`
	Conditions   PatternConditions `mapstructure:"conditions" yaml:"conditions"`
	Demographics Demographics      `mapstructure:"demographics" yaml:"demographics"`
}

type OrderValueConfig struct {
	Mean   float64 `mapstructure:"mean" yaml:"mean"`
	Stddev float64 `mapstructure:"stddev" yaml:"stddev"`
	Min    float64 `mapstructure:"min" yaml:"min"`
}

type LoyaltyConfig struct {
	Enabled           bool    `mapstructure:"enabled" yaml:"enabled"`
	RepeatProbability float64 `mapstructure:"repeat_probability" yaml:"repeat_probability"`
}

type CustomersConfig struct {
	AgeGroups          []AgeGroup                               `mapstructure:"age_groups" yaml:"age_groups"`
	GenderDistribution map[string]float64                       `mapstructure:"gender_distribution" yaml:"gender_distribution"`
	BehavioralPatterns []BehavioralPattern                      `mapstructure:"behavioral_patterns" yaml:"behavioral_patterns"`
	Preferences        map[string]map[string]map[string]float64 `mapstructure:"preferences" yaml:"preferences"` // gender -> age group -> category
	VisitFrequency     map[string]float64                       `mapstructure:"visit_frequency" yaml:"visit_frequency"`
	AverageOrderValue  OrderValueConfig                         `mapstructure:"average_order_value" yaml:"average_order_value"`
	Loyalty            LoyaltyConfig                            `mapstructure:"loyalty" yaml:"loyalty"`
}

type CategoryConfig struct {
	ID          int    `mapstructure:"id" yaml:"id"`
	Name        string `mapstructure:"name" yaml:"name"`
	Description string `mapstructure:"description" yaml:"description"`
}

type MenuItemConfig struct {
	ID                 int     `mapstructure:"id" yaml:"id"`
	Name               string  `mapstructure:"name" yaml:"name"`
	CategoryID         int     `mapstructure:"category_id" yaml:"category_id"`
	Price              float64 `mapstructure:"price" yaml:"price"`
	Cost               float64 `mapstructure:"cost" yaml:"cost"`
	AvailableHours     []int   `mapstructure:"available_hours" yaml:"available_hours"`
	PopularityWeight   float64 `mapstructure:"popularity_weight" yaml:"popularity_weight"`
	IsSeasonal         bool    `mapstructure:"is_seasonal" yaml:"is_seasonal"`
	SeasonalPreference string  `mapstructure:"seasonal_preference" yaml:"seasonal_preference,omitempty"`
	SeasonalMultiplier float64 `mapstructure:"seasonal_multiplier" yaml:"seasonal_multiplier,omitempty"`
}

type MenuConfig struct {
	Categories           []CategoryConfig   `mapstructure:"categories" yaml:"categories"`
	Items                []MenuItemConfig   `mapstructure:"items" yaml:"items"`
	ImpulseProbability   float64            `mapstructure:"impulse_probability" yaml:"impulse_probability"`
	QuantityDistribution map[string]float64 `mapstructure:"quantity_distribution" yaml:"quantity_distribution,omitempty"`
}

type NoiseConfig struct {
	MissingDataRate  float64 `mapstructure:"missing_data_rate" yaml:"missing_data_rate"`
	OutlierRate      float64 `mapstructure:"outlier_rate" yaml:"outlier_rate"`
	DuplicateRate    float64 `mapstructure:"duplicate_rate" yaml:"duplicate_rate"`
	OutlierFactorMin float64 `mapstructure:"outlier_factor_min" yaml:"outlier_factor_min"`
	OutlierFactorMax float64 `mapstructure:"outlier_factor_max" yaml:"outlier_factor_max"`
}

type DataQualityConfig struct {
	NoiseInjection NoiseConfig `mapstructure:"noise_injection" yaml:"noise_injection"`
}

type OutputConfig struct {
	Formats []string `mapstructure:"formats" yaml:"formats"`
	Path    string   `mapstructure:"path" yaml:"path"`
	Folder  string   `mapstructure:"folder" yaml:"folder"`
	// Encoding of text outputs: utf-8, or utf-8-sig to prefix CSV files with
	// a byte order mark for spreadsheet tools.
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	DBName   string `mapstructure:"dbname" yaml:"dbname"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

// ConnectionString renders a pgx keyword/value DSN.
func (p PostgresConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

type DatabaseConfig struct {
	DefaultEngine string         `mapstructure:"default_engine" yaml:"default_engine"`
	SQLite        SQLiteConfig   `mapstructure:"sqlite" yaml:"sqlite"`
	Postgres      PostgresConfig `mapstructure:"postgresql" yaml:"postgresql"`
}

type KafkaConfig struct {
	BrokerList       string `mapstructure:"broker_list" yaml:"broker_list"`
	TopicPrefix      string `mapstructure:"topic_prefix" yaml:"topic_prefix"`
	SessionTimeoutMs int    `mapstructure:"session_timeout_ms" yaml:"session_timeout_ms"`
}

type CloudStorageConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Provider   string `mapstructure:"provider" yaml:"provider"`
	Region     string `mapstructure:"region" yaml:"region"`
	BucketName string `mapstructure:"bucket_name" yaml:"bucket_name"`
	Prefix     string `mapstructure:"prefix" yaml:"prefix"`
}

// Config is the full generation configuration. Call Validate before use; it
// also builds the typed lookup tables the simulator reads from.
type Config struct {
	DataGeneration DataGeneration     `mapstructure:"data_generation" yaml:"data_generation"`
	Customers      CustomersConfig    `mapstructure:"customers" yaml:"customers"`
	Menu           MenuConfig         `mapstructure:"menu" yaml:"menu"`
	DataQuality    DataQualityConfig  `mapstructure:"data_quality" yaml:"data_quality"`
	Output         OutputConfig       `mapstructure:"output" yaml:"output"`
	Database       DatabaseConfig     `mapstructure:"database" yaml:"database"`
	Kafka          KafkaConfig        `mapstructure:"kafka" yaml:"kafka"`
	CloudStorage   CloudStorageConfig `mapstructure:"cloud_storage" yaml:"cloud_storage"`

	compiled *lookups
}

type lookups struct {
	start, end   time.Time
	weekday      [7]float64
	closed       [7]bool
	hour         [24]float64
	month        [13]float64
	weather      map[string]float64
	events       map[string]float64
	categories   map[int]CategoryConfig
	preferences  map[string]map[string]map[string]float64
	noiseEnabled bool
}

// LoadConfig reads the configuration file into a validated Config. When v is
// nil a fresh viper instance is used.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// default config location
		v.AddConfigPath(".")
		v.AddConfigPath("examples")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CAFEDATASIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_generation.seed", 42)
	v.SetDefault("data_generation.demand.distribution", DemandPoisson)
	v.SetDefault("data_generation.demand.stddev_ratio", 0.25)
	v.SetDefault("data_generation.id_generation.customer_id_start", 1)
	v.SetDefault("data_generation.id_generation.order_id_start", 1)
	v.SetDefault("data_generation.id_generation.order_item_id_start", 1)
	v.SetDefault("customers.average_order_value.mean", 800)
	v.SetDefault("customers.average_order_value.stddev", 200)
	v.SetDefault("customers.average_order_value.min", 300)
	v.SetDefault("customers.loyalty.enabled", true)
	v.SetDefault("customers.loyalty.repeat_probability", 0.6)
	v.SetDefault("menu.impulse_probability", 0.2)
	v.SetDefault("data_quality.noise_injection.outlier_factor_min", 5.0)
	v.SetDefault("data_quality.noise_injection.outlier_factor_max", 10.0)
	v.SetDefault("output.formats", []string{FormatCSV})
	v.SetDefault("output.path", "data")
	v.SetDefault("output.encoding", EncodingUTF8)
	v.SetDefault("database.default_engine", EngineSQLite)
	v.SetDefault("database.sqlite.path", "data/db/cafe_mock_sales.db")
	v.SetDefault("kafka.broker_list", "localhost:9092")
	v.SetDefault("kafka.topic_prefix", "cafe.")
}

// Validate checks the configuration and compiles the lookup tables. Every
// problem found is reported; the returned error is a *multierror.Error whose
// members are *ConfigError or *RangeError values.
func (cfg *Config) Validate() error {
	var result *multierror.Error
	lk := &lookups{
		weather:     make(map[string]float64),
		events:      make(map[string]float64),
		categories:  make(map[int]CategoryConfig),
		preferences: make(map[string]map[string]map[string]float64),
	}

	gen := cfg.DataGeneration
	result = multierror.Append(result, cfg.validateDates(gen, lk)...)
	result = multierror.Append(result, validateHours(gen.BusinessHours, lk)...)

	if gen.BaseCustomersPerHour < 0 {
		result = multierror.Append(result, rangeErrorf("data_generation.base_customers_per_hour", "must not be negative, got %v", gen.BaseCustomersPerHour))
	}
	result = multierror.Append(result, compileMultipliers(gen, lk)...)

	switch strings.ToLower(gen.Demand.Distribution) {
	case "", DemandPoisson, DemandNormal:
	default:
		result = multierror.Append(result, configErrorf("data_generation.demand.distribution", "unknown distribution %q", gen.Demand.Distribution))
	}
	if gen.Demand.StddevRatio < 0 {
		result = multierror.Append(result, rangeErrorf("data_generation.demand.stddev_ratio", "must not be negative"))
	}

	for season, probs := range gen.WeatherProbabilities {
		field := "data_generation.weather_probabilities." + season
		if !isSeason(season) {
			result = multierror.Append(result, configErrorf(field, "unknown season"))
			continue
		}
		if err := checkDistribution(field, probs); err != nil {
			result = multierror.Append(result, err)
		}
	}

	result = multierror.Append(result, cfg.validateCustomers()...)
	result = multierror.Append(result, cfg.validateMenu(lk)...)
	result = multierror.Append(result, cfg.validateNoise(lk)...)

	for _, format := range cfg.Output.Formats {
		switch strings.ToLower(format) {
		case FormatCSV, FormatJSON, FormatXLSX, FormatParquet, FormatDB, FormatKafka:
		default:
			result = multierror.Append(result, configErrorf("output.formats", "unsupported format %q", format))
		}
	}

	switch strings.ToLower(cfg.Output.Encoding) {
	case "", EncodingUTF8, EncodingUTF8BOM:
	default:
		result = multierror.Append(result, configErrorf("output.encoding", "unsupported encoding %q", cfg.Output.Encoding))
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	cfg.compiled = lk
	return nil
}

func (cfg *Config) validateDates(gen DataGeneration, lk *lookups) []error {
	var errs []error
	start, err := parseDate("data_generation.start_date", gen.StartDate)
	if err != nil {
		errs = append(errs, err)
	}
	end, err2 := parseDate("data_generation.end_date", gen.EndDate)
	if err2 != nil {
		errs = append(errs, err2)
	}
	if err == nil && err2 == nil && start.After(end) {
		errs = append(errs, rangeErrorf("data_generation.start_date", "%s is after end date %s", gen.StartDate, gen.EndDate))
	}
	lk.start, lk.end = start, end
	return errs
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, configErrorf(field, "required")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, configErrorf(field, "expected YYYY-MM-DD, got %q", value)
	}
	return t, nil
}

func validateHours(bh BusinessHours, lk *lookups) []error {
	var errs []error
	if bh.Open < 0 || bh.Open > 23 || bh.Close < 1 || bh.Close > 24 {
		errs = append(errs, configErrorf("data_generation.business_hours", "open/close must lie within 0-24, got %d-%d", bh.Open, bh.Close))
	} else if bh.Open >= bh.Close {
		errs = append(errs, rangeErrorf("data_generation.business_hours", "open (%d) must be before close (%d)", bh.Open, bh.Close))
	}
	for _, day := range bh.ClosedDays {
		wd, err := ParseWeekday(day)
		if err != nil {
			errs = append(errs, configErrorf("data_generation.business_hours.closed_days", "%v", err))
			continue
		}
		lk.closed[wd] = true
	}
	return errs
}

func compileMultipliers(gen DataGeneration, lk *lookups) []error {
	var errs []error
	for i := range lk.weekday {
		lk.weekday[i] = 1.0
	}
	for i := range lk.hour {
		lk.hour[i] = 1.0
	}
	for i := range lk.month {
		lk.month[i] = 1.0
	}

	for key, m := range gen.DayOfWeekMultiplier {
		field := "data_generation.day_of_week_multiplier." + key
		wd, err := ParseWeekday(key)
		if err != nil {
			errs = append(errs, configErrorf(field, "%v", err))
			continue
		}
		if m < 0 {
			errs = append(errs, rangeErrorf(field, "must not be negative"))
		}
		lk.weekday[wd] = m
	}
	for key, m := range gen.HourMultiplier {
		field := "data_generation.hour_multiplier." + key
		h, err := strconv.Atoi(key)
		if err != nil || h < 0 || h > 23 {
			errs = append(errs, configErrorf(field, "hour must be 0-23"))
			continue
		}
		if m < 0 {
			errs = append(errs, rangeErrorf(field, "must not be negative"))
		}
		lk.hour[h] = m
	}
	for key, m := range gen.WeatherMultiplier {
		if m < 0 {
			errs = append(errs, rangeErrorf("data_generation.weather_multiplier."+key, "must not be negative"))
		}
		lk.weather[strings.ToLower(key)] = m
	}
	for key, m := range gen.SeasonalMultiplier {
		field := "data_generation.seasonal_multiplier." + key
		month, err := parseMonth(key)
		if err != nil {
			errs = append(errs, configErrorf(field, "%v", err))
			continue
		}
		if m < 0 {
			errs = append(errs, rangeErrorf(field, "must not be negative"))
		}
		lk.month[month] = m
	}
	for i, ev := range gen.SpecialEvents {
		field := fmt.Sprintf("data_generation.special_events[%d]", i)
		d, err := parseDate(field+".date", ev.Date)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ev.Multiplier < 0 {
			errs = append(errs, rangeErrorf(field+".multiplier", "must not be negative"))
		}
		key := d.Format(dateLayout)
		// first declaration wins for a duplicated date
		if _, ok := lk.events[key]; !ok {
			lk.events[key] = ev.Multiplier
		}
	}
	return errs
}

func (cfg *Config) validateCustomers() []error {
	var errs []error
	c := cfg.Customers

	if len(c.AgeGroups) == 0 {
		errs = append(errs, configErrorf("customers.age_groups", "required"))
	}
	groups := make(map[string]bool, len(c.AgeGroups))
	ratios := make(map[string]float64, len(c.AgeGroups))
	for i, ag := range c.AgeGroups {
		field := fmt.Sprintf("customers.age_groups[%d]", i)
		if ag.Name == "" {
			errs = append(errs, configErrorf(field+".name", "required"))
			continue
		}
		if ag.MinAge < 0 || ag.MinAge > ag.MaxAge {
			errs = append(errs, rangeErrorf(field, "invalid age range %d-%d", ag.MinAge, ag.MaxAge))
		}
		groups[strings.ToLower(ag.Name)] = true
		ratios[ag.Name] = ag.BaseRatio
	}
	if len(ratios) > 0 {
		if err := checkDistribution("customers.age_groups.base_ratio", ratios); err != nil {
			errs = append(errs, err)
		}
	}

	if len(c.GenderDistribution) == 0 {
		errs = append(errs, configErrorf("customers.gender_distribution", "required"))
	} else if err := checkDistribution("customers.gender_distribution", c.GenderDistribution); err != nil {
		errs = append(errs, err)
	}

	for i, p := range c.BehavioralPatterns {
		field := fmt.Sprintf("customers.behavioral_patterns[%d]", i)
		if p.Name != "" {
			field = "customers.behavioral_patterns." + p.Name
		}
		for _, dt := range p.Conditions.DayTypes {
			if dt := strings.ToLower(dt); dt != DayTypeWeekday && dt != DayTypeWeekend {
				errs = append(errs, configErrorf(field+".conditions.day_types", "unknown day type %q", dt))
			}
		}
		for _, h := range p.Conditions.Hours {
			if h < 0 || h > 23 {
				errs = append(errs, configErrorf(field+".conditions.hours", "hour %d out of range", h))
			}
		}
		if err := checkDistribution(field+".demographics.gender_ratio", p.Demographics.GenderRatio); err != nil {
			errs = append(errs, err)
		}
		if err := checkDistribution(field+".demographics.age_distribution", p.Demographics.AgeDistribution); err != nil {
			errs = append(errs, err)
		}
		for name := range p.Demographics.AgeDistribution {
			if !groups[strings.ToLower(name)] {
				errs = append(errs, configErrorf(field+".demographics.age_distribution", "unknown age group %q", name))
			}
		}
	}

	if len(c.VisitFrequency) > 0 {
		if err := checkDistribution("customers.visit_frequency", c.VisitFrequency); err != nil {
			errs = append(errs, err)
		}
	}
	if c.AverageOrderValue.Stddev < 0 {
		errs = append(errs, rangeErrorf("customers.average_order_value.stddev", "must not be negative"))
	}
	if p := c.Loyalty.RepeatProbability; p < 0 || p > 1 {
		errs = append(errs, rangeErrorf("customers.loyalty.repeat_probability", "must lie within [0,1], got %v", p))
	}
	return errs
}

func (cfg *Config) validateMenu(lk *lookups) []error {
	var errs []error
	m := cfg.Menu

	if len(m.Categories) == 0 {
		errs = append(errs, configErrorf("menu.categories", "required"))
	}
	for _, c := range m.Categories {
		if _, dup := lk.categories[c.ID]; dup {
			errs = append(errs, configErrorf("menu.categories", "duplicate category id %d", c.ID))
		}
		lk.categories[c.ID] = c
	}

	if len(m.Items) == 0 {
		errs = append(errs, configErrorf("menu.items", "required"))
	}
	seen := make(map[int]bool, len(m.Items))
	for i, item := range m.Items {
		field := fmt.Sprintf("menu.items[%d]", i)
		if seen[item.ID] {
			errs = append(errs, configErrorf(field+".id", "duplicate menu id %d", item.ID))
		}
		seen[item.ID] = true
		if _, ok := lk.categories[item.CategoryID]; !ok {
			errs = append(errs, configErrorf(field+".category_id", "unknown category %d", item.CategoryID))
		}
		if item.Price < 0 || item.Cost < 0 {
			errs = append(errs, rangeErrorf(field, "price and cost must not be negative"))
		}
		if item.PopularityWeight <= 0 {
			errs = append(errs, configErrorf(field+".popularity_weight", "must be positive, got %v", item.PopularityWeight))
		}
		if item.IsSeasonal {
			if !isSeason(item.SeasonalPreference) {
				errs = append(errs, configErrorf(field+".seasonal_preference", "unknown season %q", item.SeasonalPreference))
			}
			if item.SeasonalMultiplier <= 0 {
				errs = append(errs, configErrorf(field+".seasonal_multiplier", "must be positive, got %v", item.SeasonalMultiplier))
			}
		}
		for _, h := range item.AvailableHours {
			if h < 0 || h > 23 {
				errs = append(errs, configErrorf(field+".available_hours", "hour %d out of range", h))
			}
		}
	}

	for gender, byAge := range cfg.Customers.Preferences {
		g := strings.ToLower(gender)
		lk.preferences[g] = make(map[string]map[string]float64, len(byAge))
		for age, byCategory := range byAge {
			a := strings.ToLower(age)
			lk.preferences[g][a] = make(map[string]float64, len(byCategory))
			for category, w := range byCategory {
				if w <= 0 {
					errs = append(errs, configErrorf(fmt.Sprintf("customers.preferences.%s.%s.%s", gender, age, category), "must be positive, got %v", w))
				}
				lk.preferences[g][a][strings.ToLower(category)] = w
			}
		}
	}

	if p := m.ImpulseProbability; p < 0 || p > 1 {
		errs = append(errs, rangeErrorf("menu.impulse_probability", "must lie within [0,1], got %v", p))
	}
	if len(m.QuantityDistribution) > 0 {
		for key := range m.QuantityDistribution {
			if q, err := strconv.Atoi(key); err != nil || q < 1 {
				errs = append(errs, configErrorf("menu.quantity_distribution", "quantity %q must be an integer >= 1", key))
			}
		}
		if err := checkDistribution("menu.quantity_distribution", m.QuantityDistribution); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (cfg *Config) validateNoise(lk *lookups) []error {
	var errs []error
	n := cfg.DataQuality.NoiseInjection
	rates := map[string]float64{
		"missing_data_rate": n.MissingDataRate,
		"outlier_rate":      n.OutlierRate,
		"duplicate_rate":    n.DuplicateRate,
	}
	for _, name := range sortedKeys(rates) {
		if r := rates[name]; r < 0 || r > 1 {
			errs = append(errs, rangeErrorf("data_quality.noise_injection."+name, "must lie within [0,1], got %v", r))
		}
	}
	if n.OutlierRate > 0 {
		if n.OutlierFactorMin <= 0 || n.OutlierFactorMin > n.OutlierFactorMax {
			errs = append(errs, rangeErrorf("data_quality.noise_injection.outlier_factor_min", "invalid factor range %v-%v", n.OutlierFactorMin, n.OutlierFactorMax))
		}
	}
	lk.noiseEnabled = n.MissingDataRate > 0 || n.OutlierRate > 0 || n.DuplicateRate > 0
	return errs
}

// checkDistribution fails when weights are negative or do not sum to 1.0.
func checkDistribution(field string, weights map[string]float64) error {
	if len(weights) == 0 {
		return configErrorf(field, "required")
	}
	sum := 0.0
	for _, k := range sortedKeys(weights) {
		w := weights[k]
		if w < 0 || math.IsNaN(w) {
			return configErrorf(field, "weight for %q must not be negative", k)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return configErrorf(field, "weights sum to %.3f, want 1.0 ± %.2f", sum, weightTolerance)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday accepts a day name ("monday", "Mon") or a number where
// 0 is Monday and 6 is Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if wd, ok := weekdayNames[s]; ok {
		return wd, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return time.Weekday((n + 1) % 7), nil
}

func parseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d out of range", n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

func isSeason(s string) bool {
	s = strings.ToLower(s)
	for _, season := range Seasons {
		if s == season {
			return true
		}
	}
	return false
}

func (cfg *Config) mustCompiled() *lookups {
	if cfg.compiled == nil {
		panic("models: Config used before Validate")
	}
	return cfg.compiled
}

func (cfg *Config) StartDate() time.Time { return cfg.mustCompiled().start }
func (cfg *Config) EndDate() time.Time   { return cfg.mustCompiled().end }

func (cfg *Config) IsClosed(wd time.Weekday) bool { return cfg.mustCompiled().closed[wd] }

// IsOpenHour reports whether hour lies within [open, close).
func (cfg *Config) IsOpenHour(hour int) bool {
	bh := cfg.DataGeneration.BusinessHours
	return hour >= bh.Open && hour < bh.Close
}

func (cfg *Config) DayMultiplier(wd time.Weekday) float64 { return cfg.mustCompiled().weekday[wd] }
func (cfg *Config) HourMultiplier(hour int) float64       { return cfg.mustCompiled().hour[hour] }
func (cfg *Config) MonthMultiplier(m time.Month) float64  { return cfg.mustCompiled().month[m] }

func (cfg *Config) WeatherMultiplier(weather string) float64 {
	if m, ok := cfg.mustCompiled().weather[weather]; ok {
		return m
	}
	return 1.0
}

// EventMultiplier returns the special-event multiplier for date, 1.0 when none.
func (cfg *Config) EventMultiplier(date time.Time) float64 {
	if m, ok := cfg.mustCompiled().events[date.Format(dateLayout)]; ok {
		return m
	}
	return 1.0
}

func (cfg *Config) Category(id int) (CategoryConfig, bool) {
	c, ok := cfg.mustCompiled().categories[id]
	return c, ok
}

// Preference returns the category preference for a demographic, 1.0 when unset.
func (cfg *Config) Preference(gender, ageGroup, category string) float64 {
	byAge, ok := cfg.mustCompiled().preferences[strings.ToLower(gender)]
	if !ok {
		return 1.0
	}
	byCategory, ok := byAge[strings.ToLower(ageGroup)]
	if !ok {
		return 1.0
	}
	if w, ok := byCategory[strings.ToLower(category)]; ok {
		return w
	}
	return 1.0
}

func (cfg *Config) NoiseEnabled() bool { return cfg.mustCompiled().noiseEnabled }

// DisableNoise zeroes every noise rate.
func (cfg *Config) DisableNoise() {
	cfg.DataQuality.NoiseInjection.MissingDataRate = 0
	cfg.DataQuality.NoiseInjection.OutlierRate = 0
	cfg.DataQuality.NoiseInjection.DuplicateRate = 0
	if cfg.compiled != nil {
		cfg.compiled.noiseEnabled = false
	}
}

// AgeGroup looks up an age group by name, case-insensitively.
func (cfg *Config) AgeGroup(name string) (AgeGroup, bool) {
	for _, ag := range cfg.Customers.AgeGroups {
		if strings.EqualFold(ag.Name, name) {
			return ag, true
		}
	}
	return AgeGroup{}, false
}
