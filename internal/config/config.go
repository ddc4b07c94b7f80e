package config

import "daily-tiffin/internal/pricing"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL" envDefault:"tiffin.db"`

	JWT     JWT     `envPrefix:"JWT_"`
	Admin   Admin   `envPrefix:"ADMIN_"`
	Pricing Pricing `envPrefix:"PRICING_"`
}

// Admin is the catalog-manager account seeded at startup. Seeding is skipped
// when the email is empty.
type Admin struct {
	Name     string `env:"NAME" envDefault:"Catalog Manager"`
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type JWT struct {
	Secret   string `env:"SECRET" envDefault:"dev-secret-change-me"`
	TTLHours int    `env:"TTL_HOURS" envDefault:"72"`
}

// Pricing mirrors pricing.Policy so the price book can be tuned per
// environment without a deploy.
type Pricing struct {
	BreakfastPrice   int64  `env:"BREAKFAST_PRICE" envDefault:"85"`
	LunchDinnerPrice int64  `env:"LUNCH_DINNER_PRICE" envDefault:"95"`
	AllMealsPrice    int64  `env:"ALL_MEALS_PRICE" envDefault:"250"`
	WeeklyDays       int64  `env:"WEEKLY_DAYS" envDefault:"7"`
	MonthlyDays      int64  `env:"MONTHLY_DAYS" envDefault:"30"`
	WeeklyRate       string `env:"WEEKLY_RATE" envDefault:"0.90"`
	MonthlyRate      string `env:"MONTHLY_RATE" envDefault:"0.80"`
}

func (p Pricing) Policy() pricing.Policy {
	return pricing.Policy{
		BreakfastPrice:   p.BreakfastPrice,
		LunchDinnerPrice: p.LunchDinnerPrice,
		AllMealsPrice:    p.AllMealsPrice,
		WeeklyDays:       p.WeeklyDays,
		MonthlyDays:      p.MonthlyDays,
		WeeklyRate:       p.WeeklyRate,
		MonthlyRate:      p.MonthlyRate,
	}
}
