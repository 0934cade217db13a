package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"engagesphere/internal/config"
	"engagesphere/internal/domain"
	"engagesphere/internal/domain/model"
	"engagesphere/internal/domain/ports/repository"
	pg "engagesphere/internal/infra/db/postgres"
	"engagesphere/internal/usecase"
)

// Seeds reference data for a fresh database: one admin account, the country
// list used at registration, and a couple of sample plans for exercising the
// payment flow end to end.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	adminEmail := flag.String("admin-email", "admin@engagesphere.io", "initial admin email")
	adminPass := flag.String("admin-password", "", "initial admin password (required on first run)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	seedAdmin(ctx, pg.NewAdminRepo(pool), *adminEmail, *adminPass)
	seedCountries(ctx, pg.NewCountryRepo(pool))
	seedPlans(ctx, usecase.NewPlanUseCase(pg.NewPlanRepo(pool)))

	fmt.Println("seeding complete")
}

func seedAdmin(ctx context.Context, admins repository.AdminRepository, email, password string) {
	if _, err := admins.FindByEmail(ctx, nil, email); err == nil {
		fmt.Printf("admin %s already present, skipping\n", email)
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Fatalf("lookup admin: %v", err)
	}

	if password == "" {
		log.Fatalf("-admin-password is required to create the initial admin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}
	admin, err := model.NewAdmin(email, string(hash))
	if err != nil {
		log.Fatalf("new admin: %v", err)
	}
	if err := admins.Save(ctx, nil, admin); err != nil {
		log.Fatalf("save admin: %v", err)
	}
	fmt.Printf("seeded admin %s\n", email)
}

func seedCountries(ctx context.Context, countries repository.CountryRepository) {
	existing, err := countries.ListAll(ctx, nil)
	if err != nil {
		log.Fatalf("list countries: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d countries already present, skipping\n", len(existing))
		return
	}

	seed := []model.Country{
		{Name: "United States", Code: "US", CallingCode: "+1"},
		{Name: "United Kingdom", Code: "GB", CallingCode: "+44"},
		{Name: "India", Code: "IN", CallingCode: "+91"},
		{Name: "Germany", Code: "DE", CallingCode: "+49"},
		{Name: "France", Code: "FR", CallingCode: "+33"},
		{Name: "Brazil", Code: "BR", CallingCode: "+55"},
		{Name: "Australia", Code: "AU", CallingCode: "+61"},
		{Name: "United Arab Emirates", Code: "AE", CallingCode: "+971"},
		{Name: "Canada", Code: "CA", CallingCode: "+1"},
		{Name: "Singapore", Code: "SG", CallingCode: "+65"},
	}
	for i := range seed {
		c := seed[i]
		c.ID = uuid.NewString()
		if err := countries.Save(ctx, nil, &c); err != nil {
			log.Fatalf("save country %s: %v", c.Code, err)
		}
	}
	fmt.Printf("seeded %d countries\n", len(seed))
}

func seedPlans(ctx context.Context, plans usecase.PlanUseCase) {
	_, total, err := plans.List(ctx, "", 0, 1)
	if err != nil {
		log.Fatalf("list plans: %v", err)
	}
	if total > 0 {
		fmt.Printf("%d plans already present, skipping\n", total)
		return
	}

	seed := []struct {
		Name    string
		Months  int
		Pricing []model.PricingTier
	}{
		{
			Name:   "Instagram Growth",
			Months: 1,
			Pricing: []model.PricingTier{
				{Name: "Starter", Price: "$24.99", Features: []string{"500 targeted followers", "weekly report"}},
				{Name: "Pro", Price: "$59.99", Features: []string{"2000 targeted followers", "daily report", "priority support"}, IsPopular: true},
			},
		},
		{
			Name:   "YouTube Boost",
			Months: 3,
			Pricing: []model.PricingTier{
				{Name: "Channel", Price: "$149.00", Features: []string{"watch-time campaign", "thumbnail review"}},
			},
		},
	}
	for _, s := range seed {
		p, err := plans.Create(ctx, s.Name, s.Months, s.Pricing)
		if err != nil {
			log.Fatalf("create plan %q: %v", s.Name, err)
		}
		fmt.Printf("seeded plan %s (id=%s, tiers=%d)\n", p.Name, p.ID, len(p.Pricing))
	}
}
