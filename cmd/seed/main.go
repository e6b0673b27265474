package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adminapp "github.com/sngm3741/delivery-availability/api/internal/admin/application"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
	"github.com/sngm3741/delivery-availability/api/internal/clock"
	mongodoc "github.com/sngm3741/delivery-availability/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	envName         string
	storeCount      int
	pausedCount     int
	blockedCount    int
	dropCollections bool
	randomSeed      int64
}

var (
	storeNames = []string{
		"Açaí do Porto", "Bar do Zé", "Cantina da Nonna", "Padaria Pão Quente", "Mercadinho da Vila",
		"Pizzaria Forno a Lenha", "Lanchonete Esquina", "Drogaria Central", "Empório das Bebidas",
		"Churrascaria Gaúcha", "Sushi Kaze", "Doceria Doce Lar", "Tapiocaria Nordeste", "Burger 77",
	}
	categories   = []string{"restaurante", "lanchonete", "pizzaria", "mercado", "farmacia", "bebidas", "padaria", "outros"}
	pauseReasons = []string{"cozinha cheia", "falta de entregadores", "manutenção do forno", ""}
	blockReasons = []string{"documentação pendente", "reclamações recorrentes", "suspeita de fraude"}
)

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Printf("WARN: env files not loaded: %v", err)
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "delivery")
	storeCollection := envOrDefault("STORE_COLLECTION", "stores")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		if err := db.Collection(storeCollection).Drop(ctx); err != nil {
			log.Printf("WARN: failed to drop collection %s: %v", storeCollection, err)
		} else {
			log.Printf("dropped collection %s", storeCollection)
		}
	}

	if err := ensureIndexes(ctx, db.Collection(storeCollection)); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	repo := mongodoc.NewAdminStoreRepository(db, storeCollection)
	clk := clock.NewSystem()
	stores := adminapp.NewStoreService(repo, clk, nil)
	control := adminapp.NewAvailabilityService(adminapp.AvailabilityConfig{
		Repo:     repo,
		Clock:    clk,
		Resolver: availability.NewResolver(time.UTC),
		Logger:   log.Default(),
	})

	rng := rand.New(rand.NewSource(opts.randomSeed))
	ids := make([]string, 0, opts.storeCount)
	for i := 0; i < opts.storeCount; i++ {
		cmd := generateStore(rng, i)
		store, err := stores.Create(ctx, cmd)
		if err != nil {
			log.Fatalf("failed to create store %q: %v", cmd.Name, err)
		}
		ids = append(ids, store.ID)
	}

	order := rng.Perm(len(ids))
	paused := 0
	for _, idx := range order[:opts.pausedCount] {
		minutes := []int{0, 15, 30, 90}[rng.Intn(4)]
		reason := pauseReasons[rng.Intn(len(pauseReasons))]
		if _, err := control.PauseStore(ctx, ids[idx], minutes, reason); err != nil {
			log.Fatalf("failed to pause store %s: %v", ids[idx], err)
		}
		paused++
	}

	blocked := 0
	for _, idx := range order[opts.pausedCount : opts.pausedCount+opts.blockedCount] {
		if _, err := control.BlockStore(ctx, ids[idx], generateBlock(rng, blocked)); err != nil {
			log.Fatalf("failed to block store %s: %v", ids[idx], err)
		}
		blocked++
	}

	log.Printf("seed complete: stores=%d paused=%d blocked=%d", len(ids), paused, blocked)
	log.Printf("Mongo: %s / %s.%s (env=%s)", mongoURI, dbName, storeCollection, opts.envName)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file name under ../env (e.g. local, staging)")
	flag.IntVar(&opts.storeCount, "stores", 12, "number of stores to create")
	flag.IntVar(&opts.pausedCount, "paused", 2, "number of stores to pause")
	flag.IntVar(&opts.blockedCount, "blocked", 2, "number of stores to block; the first one is a financial block")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop the store collection before seeding")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible data")
	flag.Parse()

	if opts.storeCount <= 0 {
		log.Fatal("-stores must be >= 1")
	}
	if opts.pausedCount < 0 {
		opts.pausedCount = 0
	}
	if opts.blockedCount < 0 {
		opts.blockedCount = 0
	}
	if opts.pausedCount+opts.blockedCount > opts.storeCount {
		log.Fatalf("-paused + -blocked (%d) exceeds -stores (%d)", opts.pausedCount+opts.blockedCount, opts.storeCount)
	}
	return opts
}

// loadEnvFiles loads shared.env then <env>.env. Variables already set win.
func loadEnvFiles(envName string) error {
	base := filepath.Clean(filepath.Join("..", "env"))
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return fmt.Errorf("no env files found in %s", base)
	}
	return godotenv.Load(existing...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func ensureIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	})
	return err
}

func generateStore(rng *rand.Rand, index int) adminapp.CreateStoreCommand {
	name := storeNames[index%len(storeNames)]
	if index >= len(storeNames) {
		name = fmt.Sprintf("%s %d", name, index/len(storeNames)+1)
	}
	return adminapp.CreateStoreCommand{
		Name:        name,
		Category:    categories[rng.Intn(len(categories))],
		Description: fmt.Sprintf("Entrega em até %d minutos.", 20+rng.Intn(40)),
		Schedule:    generateSchedule(rng),
	}
}

// generateSchedule picks one of a few realistic shapes: lunch+dinner, all day, overnight.
func generateSchedule(rng *rand.Rand) adminapp.ScheduleCommand {
	days := make(map[time.Weekday][]adminapp.WindowCommand, 7)
	shape := rng.Intn(3)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if day == time.Monday && rng.Intn(2) == 0 {
			continue
		}
		switch shape {
		case 0:
			days[day] = []adminapp.WindowCommand{
				{OpensAt: "11:00", ClosesAt: "15:00"},
				{OpensAt: "18:00", ClosesAt: "23:00"},
			}
		case 1:
			days[day] = []adminapp.WindowCommand{{OpensAt: "08:00", ClosesAt: "20:00"}}
		default:
			days[day] = []adminapp.WindowCommand{{OpensAt: "18:00", ClosesAt: "02:00"}}
		}
	}
	return adminapp.ScheduleCommand{Days: days}
}

func generateBlock(rng *rand.Rand, index int) adminapp.BlockStoreCommand {
	cmd := adminapp.BlockStoreCommand{Reason: blockReasons[rng.Intn(len(blockReasons))]}
	if index == 0 {
		value := float64(100+rng.Intn(900)) + 0.5
		installments := 1 + rng.Intn(6)
		cmd.Reason = "débito pendente"
		cmd.IsFinancialBlock = true
		cmd.FinancialValue = &value
		cmd.FinancialInstallments = &installments
	}
	return cmd
}
