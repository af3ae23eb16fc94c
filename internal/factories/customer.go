package factories

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
	"github.com/google/uuid"
	"github.com/jaswdr/faker"
)

// registration dates fall up to a year before the first visit
const maxMembershipDays = 365

// CustomerFactory mints customer identities. Every random draw, including the
// faker ones, comes from the rng it was built with so runs are reproducible.
type CustomerFactory struct {
	rng  *rand.Rand
	fake faker.Faker
	aov  models.OrderValueConfig
}

func NewCustomerFactory(rng *rand.Rand, aov models.OrderValueConfig) *CustomerFactory {
	return &CustomerFactory{
		rng:  rng,
		fake: faker.NewWithSeed(rng),
		aov:  aov,
	}
}

// CreateCustomer builds a customer of the given demographic seen for the first
// time on firstVisit. The ID is left zero; the order assembler assigns it.
func (cf *CustomerFactory) CreateCustomer(gender string, group models.AgeGroup, frequency string, firstVisit time.Time) *models.Customer {
	first := cf.firstName(gender)
	last := cf.fake.Person().LastName()

	return &models.Customer{
		Name:              first + " " + last,
		Email:             cf.email(first, last),
		MemberCode:        cf.memberCode(),
		Age:               group.MinAge + cf.rng.Intn(group.MaxAge-group.MinAge+1),
		AgeGroup:          group.Name,
		Gender:            gender,
		VisitFrequency:    frequency,
		AverageOrderValue: cf.averageOrderValue(),
		RegistrationDate:  cf.registrationDate(firstVisit),
		IsActive:          true,
	}
}

func (cf *CustomerFactory) firstName(gender string) string {
	if gender == models.GenderFemale {
		return cf.fake.Person().FirstNameFemale()
	}
	return cf.fake.Person().FirstNameMale()
}

func (cf *CustomerFactory) email(first, last string) string {
	local := strings.ToLower(first + "." + last)
	local = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\'' {
			return -1
		}
		return r
	}, local)
	return fmt.Sprintf("%s%d@%s", local, cf.rng.Intn(100), cf.fake.Internet().Domain())
}

func (cf *CustomerFactory) memberCode() string {
	id, err := uuid.NewRandomFromReader(cf.rng)
	if err != nil {
		// math/rand readers never fail
		panic(err)
	}
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12])
}

func (cf *CustomerFactory) averageOrderValue() float64 {
	v := cf.aov.Mean + cf.aov.Stddev*cf.rng.NormFloat64()
	v = math.Max(v, cf.aov.Min)
	return math.Round(v*100) / 100
}

func (cf *CustomerFactory) registrationDate(firstVisit time.Time) time.Time {
	day := time.Date(firstVisit.Year(), firstVisit.Month(), firstVisit.Day(), 0, 0, 0, 0, firstVisit.Location())
	return day.AddDate(0, 0, -cf.rng.Intn(maxMembershipDays+1))
}
