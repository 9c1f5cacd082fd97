// Package seed parses seed command flags and writes synthetic assessment
// responses through the persistence facade for local development.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/utechsu/councilpulse/internal/assessment"
	"github.com/utechsu/councilpulse/internal/assessment/store"
	"github.com/utechsu/councilpulse/internal/cmd/bootstrap"
	entrypoint "github.com/utechsu/councilpulse/internal/platform/cmd"
)

// Config holds seed command configuration.
type Config struct {
	Count int   `env:"COUNCILPULSE_SEED_COUNT" envDefault:"25"`
	Seed  int64 `env:"COUNCILPULSE_SEED_VALUE"`
	Store bootstrap.StoreConfig
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Count, "count", cfg.Count, "number of synthetic responses to write")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = time-based)")
	fs.StringVar(&cfg.Store.DBPath, "db-path", cfg.Store.DBPath, "The sqlite database path (empty keeps responses in memory)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run writes cfg.Count generated responses through the facade.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", cfg.Count)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		st, err := bootstrap.OpenStore(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		degraded := 0
		for i := 0; i < cfg.Count; i++ {
			resp := Generate(rng, i)
			status, err := st.Append(ctx, resp)
			if err != nil {
				return fmt.Errorf("append seed response %d: %w", i, err)
			}
			if status == store.StatusLocalOnly {
				degraded++
			}
		}

		log.Printf("seeded %d responses (seed %d, %d degraded)", cfg.Count, seed, degraded)
		return nil
	})
}

// Generate builds one plausible response from the fixed option sets. The
// index offsets timestamps so the collection reads chronologically.
func Generate(rng *rand.Rand, index int) assessment.Response {
	resp := assessment.Response{
		Name:                  fmt.Sprintf("Member %02d", index+1),
		Email:                 fmt.Sprintf("member%02d@example.edu", index+1),
		Position:              pick(rng, assessment.Positions),
		Tenure:                pick(rng, assessment.Tenures),
		Satisfaction:          assessment.SatisfactionMin + rng.Intn(assessment.SatisfactionMax-assessment.SatisfactionMin+1),
		ConstitutionKnowledge: pick(rng, assessment.ConstitutionKnowledgeLevels),
		SupportGaps:           pickSome(rng, assessment.SupportGapOptions),
		FinancialChallenges:   yesNo(rng),
		AcademicChallenges:    yesNo(rng),
		SupportNeeds:          pickSome(rng, assessment.SupportNeedOptions),
		RetreatPriorities:     pickSome(rng, assessment.RetreatPriorityOptions),
	}
	if resp.FinancialChallenges == assessment.AnswerYes {
		resp.FinancialImpact = pickSome(rng, assessment.FinancialImpactOptions)
	}
	if resp.AcademicChallenges == assessment.AnswerYes {
		resp.AcademicImpact = pickSome(rng, assessment.AcademicImpactOptions)
	}

	resp.Stamp(time.Now().Add(time.Duration(index) * time.Minute))
	resp.Normalize()
	return resp
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

// pickSome selects between one and three distinct options.
func pickSome(rng *rand.Rand, options []string) []string {
	n := 1 + rng.Intn(3)
	if n > len(options) {
		n = len(options)
	}
	perm := rng.Perm(len(options))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, options[idx])
	}
	return out
}

func yesNo(rng *rand.Rand) string {
	if rng.Intn(2) == 0 {
		return assessment.AnswerYes
	}
	return assessment.AnswerNo
}
