package models

// hoursBetween returns [from, to).
func hoursBetween(from, to int) []int {
	hours := make([]int, 0, to-from)
	for h := from; h < to; h++ {
		hours = append(hours, h)
	}
	return hours
}

// DefaultConfig returns a complete, valid café configuration covering one
// calendar year. It backs `cafedatasim init` and the test fixtures.
func DefaultConfig() *Config {
	allDay := hoursBetween(7, 21)
	return &Config{
		DataGeneration: DataGeneration{
			Seed:                 42,
			StartDate:            "2024-01-01",
			EndDate:              "2024-12-31",
			BaseCustomersPerHour: 5,
			BusinessHours: BusinessHours{
				Open:       7,
				Close:      21,
				ClosedDays: []string{"tuesday"},
			},
			DayOfWeekMultiplier: map[string]float64{
				"monday": 0.9, "tuesday": 0.9, "wednesday": 1.0, "thursday": 1.0,
				"friday": 1.2, "saturday": 1.4, "sunday": 1.3,
			},
			HourMultiplier: map[string]float64{
				"7": 1.2, "8": 1.5, "9": 1.1, "10": 0.8, "11": 1.2, "12": 1.5,
				"13": 1.3, "14": 0.9, "15": 1.0, "16": 0.9, "17": 0.8, "18": 0.7,
				"19": 0.6, "20": 0.4,
			},
			WeatherMultiplier: map[string]float64{
				WeatherSunny: 1.2, WeatherCloudy: 1.0, WeatherRainy: 0.7, WeatherSnowy: 0.5,
			},
			SeasonalMultiplier: map[string]float64{
				"1": 0.8, "2": 0.8, "3": 0.9, "4": 1.0, "5": 1.1, "6": 1.0,
				"7": 1.1, "8": 1.2, "9": 1.0, "10": 1.0, "11": 0.9, "12": 1.1,
			},
			SpecialEvents: []SpecialEvent{
				{Date: "2024-02-14", Name: "valentines_day", Multiplier: 1.5},
				{Date: "2024-12-24", Name: "christmas_eve", Multiplier: 1.6},
				{Date: "2024-12-25", Name: "christmas_day", Multiplier: 1.4},
			},
			WeatherProbabilities: map[string]map[string]float64{
				SeasonSpring: {WeatherSunny: 0.5, WeatherCloudy: 0.3, WeatherRainy: 0.2, WeatherSnowy: 0.0},
				SeasonSummer: {WeatherSunny: 0.6, WeatherCloudy: 0.25, WeatherRainy: 0.15, WeatherSnowy: 0.0},
				SeasonAutumn: {WeatherSunny: 0.5, WeatherCloudy: 0.3, WeatherRainy: 0.2, WeatherSnowy: 0.0},
				SeasonWinter: {WeatherSunny: 0.25, WeatherCloudy: 0.35, WeatherRainy: 0.2, WeatherSnowy: 0.2},
			},
			Temperature: map[string]float64{
				SeasonSpring: 15, SeasonSummer: 25, SeasonAutumn: 15, SeasonWinter: 5,
			},
			Demand: DemandConfig{Distribution: DemandPoisson, StddevRatio: 0.25},
			IDGeneration: IDGeneration{
				CustomerIDStart:  1000,
				OrderIDStart:     10000,
				OrderItemIDStart: 100000,
			},
		},
		Customers: CustomersConfig{
			AgeGroups: []AgeGroup{
				{Name: "teens", MinAge: 15, MaxAge: 19, BaseRatio: 0.15},
				{Name: "twenties", MinAge: 20, MaxAge: 29, BaseRatio: 0.35},
				{Name: "thirties", MinAge: 30, MaxAge: 39, BaseRatio: 0.25},
				{Name: "forties", MinAge: 40, MaxAge: 49, BaseRatio: 0.15},
				{Name: "seniors", MinAge: 50, MaxAge: 79, BaseRatio: 0.10},
			},
			GenderDistribution: map[string]float64{GenderMale: 0.45, GenderFemale: 0.55},
			BehavioralPatterns: []BehavioralPattern{
				{
					Name:       "weekday_commute",
					Conditions: PatternConditions{DayTypes: []string{DayTypeWeekday}, Hours: []int{7, 8, 9}},
					Demographics: Demographics{
						GenderRatio:     map[string]float64{GenderMale: 0.6, GenderFemale: 0.4},
						AgeDistribution: map[string]float64{"teens": 0.05, "twenties": 0.35, "thirties": 0.35, "forties": 0.2, "seniors": 0.05},
					},
				},
				{
					Name:       "weekday_lunch",
					Conditions: PatternConditions{DayTypes: []string{DayTypeWeekday}, Hours: []int{11, 12, 13}},
					Demographics: Demographics{
						GenderRatio:     map[string]float64{GenderMale: 0.5, GenderFemale: 0.5},
						AgeDistribution: map[string]float64{"teens": 0.05, "twenties": 0.3, "thirties": 0.35, "forties": 0.2, "seniors": 0.1},
					},
				},
				{
					Name:       "afternoon_break",
					Conditions: PatternConditions{DayTypes: []string{DayTypeWeekday, DayTypeWeekend}, Hours: []int{14, 15, 16, 17}},
					Demographics: Demographics{
						GenderRatio:     map[string]float64{GenderMale: 0.35, GenderFemale: 0.65},
						AgeDistribution: map[string]float64{"teens": 0.25, "twenties": 0.3, "thirties": 0.15, "forties": 0.1, "seniors": 0.2},
					},
				},
				{
					Name:       "weekend_brunch",
					Conditions: PatternConditions{DayTypes: []string{DayTypeWeekend}, Hours: hoursBetween(9, 14)},
					Demographics: Demographics{
						GenderRatio:     map[string]float64{GenderMale: 0.45, GenderFemale: 0.55},
						AgeDistribution: map[string]float64{"teens": 0.15, "twenties": 0.3, "thirties": 0.3, "forties": 0.15, "seniors": 0.1},
					},
				},
			},
			Preferences: map[string]map[string]map[string]float64{
				GenderMale: {
					"teens":    {"morning": 0.6, "lunch": 1.3, "light_meal": 1.2, "drink": 1.0, "sweets": 1.1},
					"twenties": {"morning": 1.0, "lunch": 1.3, "light_meal": 1.1, "drink": 1.2, "sweets": 0.8},
					"thirties": {"morning": 1.3, "lunch": 1.2, "light_meal": 0.9, "drink": 1.3, "sweets": 0.7},
					"forties":  {"morning": 1.3, "lunch": 1.1, "light_meal": 0.8, "drink": 1.3, "sweets": 0.6},
					"seniors":  {"morning": 1.4, "lunch": 1.0, "light_meal": 0.9, "drink": 1.1, "sweets": 0.8},
				},
				GenderFemale: {
					"teens":    {"morning": 0.6, "lunch": 1.0, "light_meal": 1.1, "drink": 1.2, "sweets": 1.6},
					"twenties": {"morning": 0.9, "lunch": 1.1, "light_meal": 1.2, "drink": 1.2, "sweets": 1.4},
					"thirties": {"morning": 1.1, "lunch": 1.2, "light_meal": 1.1, "drink": 1.1, "sweets": 1.2},
					"forties":  {"morning": 1.1, "lunch": 1.1, "light_meal": 1.0, "drink": 1.1, "sweets": 1.1},
					"seniors":  {"morning": 1.2, "lunch": 1.0, "light_meal": 1.0, "drink": 1.0, "sweets": 1.2},
				},
			},
			VisitFrequency:    map[string]float64{VisitRegular: 0.3, VisitOccasional: 0.5, VisitRare: 0.2},
			AverageOrderValue: OrderValueConfig{Mean: 800, Stddev: 200, Min: 300},
			Loyalty:           LoyaltyConfig{Enabled: true, RepeatProbability: 0.6},
		},
		Menu: MenuConfig{
			Categories: []CategoryConfig{
				{ID: 1, Name: "morning", Description: "Breakfast sets served until 10:00"},
				{ID: 2, Name: "lunch", Description: "Lunch plates"},
				{ID: 3, Name: "light_meal", Description: "Sandwiches and snacks"},
				{ID: 4, Name: "drink", Description: "Coffee, tea and cold drinks"},
				{ID: 5, Name: "sweets", Description: "Cakes and desserts"},
			},
			Items: []MenuItemConfig{
				{ID: 1, Name: "Toast Set", CategoryID: 1, Price: 550, Cost: 180, AvailableHours: hoursBetween(7, 11), PopularityWeight: 1.2},
				{ID: 2, Name: "Egg Sandwich Set", CategoryID: 1, Price: 650, Cost: 230, AvailableHours: hoursBetween(7, 11), PopularityWeight: 1.0},
				{ID: 3, Name: "Pasta Lunch", CategoryID: 2, Price: 1100, Cost: 380, AvailableHours: hoursBetween(11, 15), PopularityWeight: 1.3},
				{ID: 4, Name: "Curry Rice", CategoryID: 2, Price: 980, Cost: 320, AvailableHours: hoursBetween(11, 15), PopularityWeight: 1.1},
				{ID: 5, Name: "Club Sandwich", CategoryID: 3, Price: 780, Cost: 260, AvailableHours: allDay, PopularityWeight: 0.9},
				{ID: 6, Name: "Soup of the Day", CategoryID: 3, Price: 480, Cost: 140, AvailableHours: hoursBetween(11, 21), PopularityWeight: 0.6, IsSeasonal: true, SeasonalPreference: SeasonWinter, SeasonalMultiplier: 1.8},
				{ID: 7, Name: "Blend Coffee", CategoryID: 4, Price: 420, Cost: 80, AvailableHours: allDay, PopularityWeight: 2.0},
				{ID: 8, Name: "Cafe Latte", CategoryID: 4, Price: 480, Cost: 110, AvailableHours: allDay, PopularityWeight: 1.8},
				{ID: 9, Name: "Iced Tea", CategoryID: 4, Price: 450, Cost: 70, AvailableHours: allDay, PopularityWeight: 0.8, IsSeasonal: true, SeasonalPreference: SeasonSummer, SeasonalMultiplier: 1.5},
				{ID: 10, Name: "Cheesecake", CategoryID: 5, Price: 520, Cost: 160, AvailableHours: hoursBetween(10, 21), PopularityWeight: 1.0},
				{ID: 11, Name: "Strawberry Shortcake", CategoryID: 5, Price: 580, Cost: 190, AvailableHours: hoursBetween(10, 21), PopularityWeight: 0.7, IsSeasonal: true, SeasonalPreference: SeasonSpring, SeasonalMultiplier: 1.5},
				{ID: 12, Name: "Shaved Ice", CategoryID: 5, Price: 650, Cost: 120, AvailableHours: hoursBetween(12, 19), PopularityWeight: 0.3, IsSeasonal: true, SeasonalPreference: SeasonSummer, SeasonalMultiplier: 3.0},
			},
			ImpulseProbability:   0.2,
			QuantityDistribution: map[string]float64{"1": 0.85, "2": 0.12, "3": 0.03},
		},
		DataQuality: DataQualityConfig{
			NoiseInjection: NoiseConfig{
				MissingDataRate:  0.02,
				OutlierRate:      0.01,
				DuplicateRate:    0.005,
				OutlierFactorMin: 5,
				OutlierFactorMax: 10,
			},
		},
		Output: OutputConfig{
			Formats:  []string{FormatCSV, FormatJSON},
			Path:     "data",
			Encoding: EncodingUTF8,
		},
		Database: DatabaseConfig{
			DefaultEngine: EngineSQLite,
			SQLite:        SQLiteConfig{Path: "data/db/cafe_mock_sales.db"},
			Postgres: PostgresConfig{
				Host: "localhost", Port: "5432", User: "cafe", Password: "cafe",
				DBName: "cafe_mock_sales", SSLMode: "disable",
			},
		},
		Kafka: KafkaConfig{BrokerList: "localhost:9092", TopicPrefix: "cafe.", SessionTimeoutMs: 45000},
		CloudStorage: CloudStorageConfig{
			Provider: "s3",
			Region:   "us-east-1",
			Prefix:   "cafedatasim",
		},
	}
}
