package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"

	DayTypeWeekday = "weekday"
	DayTypeWeekend = "weekend"

	WeatherSunny  = "sunny"
	WeatherCloudy = "cloudy"
	WeatherRainy  = "rainy"
	WeatherSnowy  = "snowy"

	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"

	VisitRegular    = "regular"
	VisitOccasional = "occasional"
	VisitRare       = "rare"

	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentEMoney = "e_money"

	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatXLSX    = "xlsx"
	FormatParquet = "parquet"
	FormatDB      = "db"
	FormatKafka   = "kafka"

	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"

	EngineSQLite   = "sqlite"
	EnginePostgres = "postgresql"

	DemandPoisson = "poisson"
	DemandNormal  = "normal"
)

// Seasons lists the seasons in calendar order starting from spring.
var Seasons = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// SeasonOf maps a month onto its (northern hemisphere) season.
func SeasonOf(m time.Month) string {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
