package testkit

import (
	"fmt"
	"math/rand"

	"dqlens/domain/dataset"
)

// CustomerGeneratorConfig configures the synthetic customer data generator
type CustomerGeneratorConfig struct {
	RowCount          int     `json:"row_count"`
	MissingEmailRate  float64 `json:"missing_email_rate"`
	BadEmailRate      float64 `json:"bad_email_rate"`
	BadPhoneRate      float64 `json:"bad_phone_rate"`
	MissingAgeRate    float64 `json:"missing_age_rate"`
	DuplicateRowRate  float64 `json:"duplicate_row_rate"`
	ConstantColumn    bool    `json:"constant_column"`
	Seed              int64   `json:"seed"`
}

// DefaultCustomerConfig returns sensible defaults for customer data generation
func DefaultCustomerConfig() CustomerGeneratorConfig {
	return CustomerGeneratorConfig{
		RowCount:         200,
		MissingEmailRate: 0.10,
		BadEmailRate:     0.05,
		BadPhoneRate:     0.05,
		MissingAgeRate:   0.08,
		DuplicateRowRate: 0.05,
		ConstantColumn:   false,
		Seed:             42,
	}
}

// CleanCustomerConfig returns a configuration with no injected defects
func CleanCustomerConfig() CustomerGeneratorConfig {
	return CustomerGeneratorConfig{
		RowCount: 200,
		Seed:     42,
	}
}

// CustomerDataGenerator generates synthetic customer datasets with
// controllable quality defects. Generation is fully deterministic for a
// given config.
type CustomerDataGenerator struct {
	config CustomerGeneratorConfig
	rng    *rand.Rand
}

// NewCustomerDataGenerator creates a new customer data generator
func NewCustomerDataGenerator(config CustomerGeneratorConfig) *CustomerDataGenerator {
	return &CustomerDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var firstNames = []string{"Alice", "Bruno", "Claire", "David", "Emma", "Felix", "Gina", "Hugo", "Ines", "Jules", "Karim", "Lea", "Marc", "Nora", "Omar", "Paula"}
var lastNames = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent"}
var cities = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Nantes", "Lille", "Bordeaux"}
var statuses = []string{"active", "inactive", "pending"}

// Generate builds the synthetic dataset
func (g *CustomerDataGenerator) Generate() (*dataset.Dataset, error) {
	n := g.config.RowCount

	ids := make([]dataset.Value, 0, n)
	names := make([]dataset.Value, 0, n)
	emails := make([]dataset.Value, 0, n)
	phones := make([]dataset.Value, 0, n)
	ages := make([]dataset.Value, 0, n)
	cityVals := make([]dataset.Value, 0, n)
	statusVals := make([]dataset.Value, 0, n)
	sources := make([]dataset.Value, 0, n)

	appendRow := func(id, name, email, phone, age, city, status, source dataset.Value) {
		ids = append(ids, id)
		names = append(names, name)
		emails = append(emails, email)
		phones = append(phones, phone)
		ages = append(ages, age)
		cityVals = append(cityVals, city)
		statusVals = append(statusVals, status)
		sources = append(sources, source)
	}

	for i := 0; i < n; i++ {
		first := firstNames[g.rng.Intn(len(firstNames))]
		last := lastNames[g.rng.Intn(len(lastNames))]

		id := dataset.NewValue(fmt.Sprintf("CUST-%05d", i+1))
		name := dataset.NewValue(first + " " + last)
		email := g.emailValue(first, last)
		phone := g.phoneValue()
		age := g.ageValue()
		city := dataset.NewValue(cities[g.rng.Intn(len(cities))])
		status := dataset.NewValue(statuses[g.rng.Intn(len(statuses))])
		source := dataset.NewValue("crm")

		appendRow(id, name, email, phone, age, city, status, source)

		if g.rng.Float64() < g.config.DuplicateRowRate {
			appendRow(id, name, email, phone, age, city, status, source)
		}
	}

	columns := []dataset.Column{
		{Name: "customer_id", Values: ids},
		{Name: "name", Values: names},
		{Name: "email", Values: emails},
		{Name: "phone", Values: phones},
		{Name: "age", Values: ages},
		{Name: "city", Values: cityVals},
		{Name: "status", Values: statusVals},
	}
	if g.config.ConstantColumn {
		columns = append(columns, dataset.Column{Name: "source", Values: sources})
	}

	return dataset.New("synthetic_customers", columns)
}

func (g *CustomerDataGenerator) emailValue(first, last string) dataset.Value {
	roll := g.rng.Float64()
	if roll < g.config.MissingEmailRate {
		return dataset.Missing()
	}
	if roll < g.config.MissingEmailRate+g.config.BadEmailRate {
		return dataset.NewValue(first + ".at." + last) // no @ sign
	}
	return dataset.NewValue(fmt.Sprintf("%s.%s%d@example.com", first, last, g.rng.Intn(100)))
}

func (g *CustomerDataGenerator) phoneValue() dataset.Value {
	if g.rng.Float64() < g.config.BadPhoneRate {
		return dataset.NewValue("not-a-phone")
	}
	return dataset.NewValue(fmt.Sprintf("06.%02d.%02d.%02d.%02d",
		g.rng.Intn(100), g.rng.Intn(100), g.rng.Intn(100), g.rng.Intn(100)))
}

func (g *CustomerDataGenerator) ageValue() dataset.Value {
	if g.rng.Float64() < g.config.MissingAgeRate {
		return dataset.Missing()
	}
	return dataset.NewValue(fmt.Sprintf("%d", 18+g.rng.Intn(62)))
}
