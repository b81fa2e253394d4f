package recordservice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/models"
)

// SeedCounts controls how many sample records of each kind Seed creates
type SeedCounts map[models.EntityKind]int

// DefaultSeedCounts is a small board per kind
var DefaultSeedCounts = SeedCounts{
	models.KindTasks:        24,
	models.KindProjects:     8,
	models.KindIntake:       10,
	models.KindAssets:       8,
	models.KindConsumables:  8,
	models.KindPartnerships: 8,
}

var (
	sampleNames   = []string{"Alex Rivera", "Priya Shah", "Jordan Lee", "Maya Thompson", "Samir Patel", "Elena Garcia", "Noah Kim"}
	sampleTeams   = []string{"Fabrication", "Education", "Operations"}
	sampleSpaces  = []string{"MakerLab", "Automation Lab", "Digital Scholarship Lab"}
	sampleSchools = []string{"SET", "AHC", "SSSP", "Business & Economics", "University-wide"}
	sampleLanes   = []string{"Teaching", "Research", "Community", "Operations"}
	sampleTitles  = []string{"Prep workshop", "Faculty sync", "Prototype support", "Cert review", "Documentation"}
	sampleAssets  = []string{"3D Printer", "Laser Cutter", "CNC", "Scanner", "Electronics Bench"}
	sampleStock   = []string{"PLA Filament", "Acrylic Sheet", "Solder", "Plywood", "Resin"}
)

// Seed loads deterministic sample data. The same seed always produces the
// same board so screenshots and tests stay stable.
func Seed(ctx context.Context, repo *database.Repository, counts SeedCounts, seed uint64) error {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	today := time.Now().UTC().Truncate(24 * time.Hour)
	date := func(back, forward int) string {
		return today.AddDate(0, 0, rng.IntN(back+forward+1)-back).Format("2006-01-02")
	}
	pick := func(list []string) string { return list[rng.IntN(len(list))] }

	for category, names := range map[string][]string{"user": sampleNames, "team": sampleTeams, "space": sampleSpaces} {
		for _, name := range names {
			if err := repo.Lookups.AddPerson(ctx, category, name); err != nil {
				return fmt.Errorf("failed to seed %s %q: %w", category, name, err)
			}
		}
	}

	for _, kind := range models.AllKinds {
		for i := 0; i < counts[kind]; i++ {
			var fields map[string]string
			switch kind {
			case models.KindTasks:
				fields = map[string]string{
					"title":          fmt.Sprintf("Task %d: %s", i+1, pick(sampleTitles)),
					"status":         pick(models.TaskStatuses),
					"priority":       pick(models.Priorities),
					"assignee":       pick(sampleNames),
					"project":        fmt.Sprintf("%s Initiative", pick(sampleSchools)),
					"team":           pick(sampleTeams),
					"space":          pick(sampleSpaces),
					"due_date":       date(15, 30),
					"energy":         pick(models.Energies),
					"estimate_hours": strconv.FormatFloat(float64(rng.IntN(12)+1)/2, 'f', -1, 64),
					"description":    "Generated sample task.",
				}
			case models.KindProjects:
				fields = map[string]string{
					"name":         fmt.Sprintf("%s Initiative %d", pick(sampleSchools), i+1),
					"status":       pick(models.ProjectStatuses),
					"priority":     pick(models.Priorities),
					"owner":        pick(sampleNames),
					"lane":         pick(sampleLanes),
					"team":         pick(sampleTeams),
					"space":        pick(sampleSpaces),
					"start_date":   date(60, 15),
					"due_date":     date(0, 120),
					"progress_pct": strconv.Itoa(rng.IntN(101)),
				}
			case models.KindIntake:
				u, im, e := rng.IntN(5)+1, rng.IntN(5)+1, rng.IntN(5)+1
				fields = map[string]string{
					"title":          fmt.Sprintf("Intake request %d", i+1),
					"status":         pick(models.IntakeStatuses),
					"requestor_name": pick(sampleNames),
					"lane":           pick(sampleLanes),
					"urgency":        strconv.Itoa(u),
					"impact":         strconv.Itoa(im),
					"effort":         strconv.Itoa(e),
					"score":          strconv.Itoa(IntakeScore(u, im, e)),
					"owner":          pick(sampleNames),
				}
			case models.KindAssets:
				fields = map[string]string{
					"name":             fmt.Sprintf("%s %d", pick(sampleAssets), i+1),
					"status":           pick(models.AssetStatuses),
					"space":            pick(sampleSpaces),
					"asset_type":       pick(sampleAssets),
					"last_maintenance": date(90, 0),
					"next_maintenance": date(0, 60),
					"owner":            pick(sampleNames),
				}
			case models.KindConsumables:
				fields = map[string]string{
					"name":             pick(sampleStock),
					"status":           pick(models.ConsumableStatuses),
					"space":            pick(sampleSpaces),
					"quantity_on_hand": strconv.Itoa(rng.IntN(40)),
					"reorder_point":    strconv.Itoa(rng.IntN(10) + 2),
					"owner":            pick(sampleNames),
				}
			case models.KindPartnerships:
				fields = map[string]string{
					"partner_name":  fmt.Sprintf("Partner %d", i+1),
					"stage":         pick(models.PartnerStages),
					"school":        pick(sampleSchools),
					"health":        pick(models.PartnerHealth),
					"owner":         pick(sampleNames),
					"last_contact":  date(50, 0),
					"next_followup": date(0, 50),
				}
			}
			if _, err := repo.Records.Create(ctx, kind, fields); err != nil {
				return fmt.Errorf("failed to seed %s: %w", kind, err)
			}
		}
	}
	return nil
}
