package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/cloudwriter"
	"github.com/chrisdamba/cafedatasim/internal/factories"
	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/chrisdamba/cafedatasim/internal/output"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

type Simulator struct {
	Config *models.Config
	Rng    *rand.Rand

	demand    *DemandEngine
	profiler  *CustomerProfiler
	menu      *MenuSelector
	assembler *OrderAssembler
	progress  io.Writer
	cloud     cloudwriter.CloudWriterFactory
}

type Option func(*Simulator)

// WithProgress sends the progress bar to w. Use io.Discard to hide it.
func WithProgress(w io.Writer) Option {
	return func(s *Simulator) { s.progress = w }
}

// WithCloudWriterFactory replaces the S3 client used when cloud storage is
// enabled.
func WithCloudWriterFactory(f cloudwriter.CloudWriterFactory) Option {
	return func(s *Simulator) { s.cloud = f }
}

// NewSimulator validates cfg and wires every component to one rng seeded
// from data_generation.seed. Configuration errors surface here, before any
// sampling happens.
func NewSimulator(cfg *models.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		Config:   cfg,
		Rng:      rand.New(rand.NewSource(cfg.DataGeneration.Seed)),
		progress: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.demand, err = NewDemandEngine(cfg); err != nil {
		return nil, err
	}
	factory := factories.NewCustomerFactory(s.Rng, cfg.Customers.AverageOrderValue)
	if s.profiler, err = NewCustomerProfiler(cfg, factory); err != nil {
		return nil, err
	}
	if s.menu, err = NewMenuSelector(cfg); err != nil {
		return nil, err
	}
	s.assembler = NewOrderAssembler(cfg.DataGeneration.IDGeneration)
	return s, nil
}

// Generate runs the simulation over every date and business hour and
// returns the finished, noise-injected dataset.
func (s *Simulator) Generate(ctx context.Context) (*models.Dataset, error) {
	start, end := s.Config.StartDate(), s.Config.EndDate()
	days := int(end.Sub(start).Hours()/24) + 1
	bh := s.Config.DataGeneration.BusinessHours

	log.Info().
		Str("start", start.Format("2006-01-02")).
		Str("end", end.Format("2006-01-02")).
		Int64("seed", s.Config.DataGeneration.Seed).
		Msg("simulation starts")

	bar := progressbar.NewOptions(days,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	var (
		orders    []models.Order
		items     []models.OrderItem
		summaries []models.DailySummary
		gaps      int
	)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_ = bar.Add(1)

		if s.Config.IsClosed(day.Weekday()) {
			continue
		}
		weather, temperature := s.demand.WeatherFor(s.Rng, day)
		firstOrder, firstItem := len(orders), len(items)

		for hour := bh.Open; hour < bh.Close; hour++ {
			slot := models.NewHourSlot(day, hour, weather, temperature)
			arrivals := s.demand.SampleCustomerCount(s.Rng, slot)

			for i := 0; i < arrivals; i++ {
				customer, isNew := s.profiler.SampleCustomer(s.Rng, slot)
				selections, err := s.menu.SelectItems(s.Rng, customer, slot)
				if errors.Is(err, models.ErrSamplingGap) {
					gaps++
					log.Debug().Err(err).Msg("skipping customer")
					continue
				}
				if err != nil {
					return nil, err
				}
				if isNew {
					s.assembler.RegisterCustomer(customer)
					s.profiler.Remember(customer)
				}
				order, orderItems := s.assembler.Assemble(s.Rng, customer, slot, selections)
				orders = append(orders, order)
				items = append(items, orderItems...)
			}
		}

		summary := Summarize(orders[firstOrder:], items[firstItem:], day)
		if summary.TotalOrders == 0 {
			summary.WeatherCondition = weather
			summary.AvgTemperature = temperature
		}
		summaries = append(summaries, summary)

		if day.Day() == 1 {
			log.Debug().Str("month", day.Format("2006-01")).Int("orders", len(orders)).Msg("progress")
		}
	}
	_ = bar.Finish()

	ds := &models.Dataset{
		Categories:     s.menu.Categories(),
		MenuItems:      s.menu.Items(),
		Customers:      s.assembler.Customers(),
		Orders:         orders,
		OrderItems:     items,
		DailySummaries: summaries,
	}

	if s.Config.NoiseEnabled() {
		injector := NewNoiseInjector(s.Config.DataQuality.NoiseInjection, s.assembler)
		ds.Noise = injector.Apply(s.Rng, ds)
		log.Info().
			Int("missing", ds.Noise.Missing).
			Int("outliers", ds.Noise.Outliers).
			Int("duplicates", ds.Noise.Duplicates).
			Msg("noise injected")
	}

	log.Info().
		Int("customers", len(ds.Customers)).
		Int("orders", len(ds.Orders)).
		Int("order_items", len(ds.OrderItems)).
		Int("days", len(ds.DailySummaries)).
		Int("sampling_gaps", gaps).
		Msg("simulation finished")
	return ds, nil
}

// Run generates the dataset, writes it to every configured format and, when
// cloud storage is enabled, uploads the output folder.
func (s *Simulator) Run(ctx context.Context) (*models.Dataset, error) {
	ds, err := s.Generate(ctx)
	if err != nil {
		return nil, err
	}

	manifest, err := output.Export(ctx, s.Config, ds)
	if err != nil {
		return ds, fmt.Errorf("export failed: %w", err)
	}
	log.Info().Str("run_id", manifest.RunID).Str("dir", manifest.Directory).Msg("export finished")

	if !s.Config.CloudStorage.Enabled {
		return ds, nil
	}
	cs := s.Config.CloudStorage
	factory := s.cloud
	if factory == nil {
		if factory, err = cloudwriter.NewS3WriterFactory(ctx, cs.Region); err != nil {
			return ds, fmt.Errorf("failed to create cloud writer: %w", err)
		}
	}
	n, err := cloudwriter.UploadDir(ctx, factory, cs.BucketName, manifest.Directory, cs.Prefix)
	if err != nil {
		return ds, fmt.Errorf("upload failed: %w", err)
	}
	log.Info().Int("files", n).Str("bucket", cs.BucketName).Msg("upload finished")
	return ds, nil
}
