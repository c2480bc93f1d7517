package main

import (
	"log"
	"os"
	"strconv"

	"launchcontrol/internal/engine"
	"launchcontrol/internal/handlers"
	"launchcontrol/internal/ledger"
	"launchcontrol/internal/routes"
	"launchcontrol/pkg/config"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
)

func factoryFromEnv() (*engine.Factory, error) {
	admin, err := solana.PublicKeyFromBase58(os.Getenv("PLATFORM_ADMIN"))
	if err != nil {
		return nil, err
	}
	manager, err := solana.PublicKeyFromBase58(os.Getenv("PLATFORM_MANAGER"))
	if err != nil {
		return nil, err
	}
	feeCollector, err := solana.PublicKeyFromBase58(os.Getenv("FEE_COLLECTOR"))
	if err != nil {
		return nil, err
	}
	creatorFee, err := strconv.ParseUint(os.Getenv("CREATOR_FEE_LAMPORTS"), 10, 64)
	if err != nil {
		return nil, err
	}
	serviceFeeBp, err := strconv.ParseUint(os.Getenv("SERVICE_FEE_BP"), 10, 16)
	if err != nil {
		return nil, err
	}
	return engine.NewFactory(admin, manager, feeCollector, creatorFee, uint16(serviceFeeBp))
}

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Initialize database
	config.InitDB()
	config.ExecuteMigrations()

	// Initialize RabbitMQ (optional, will log warning if not configured)
	var publisher engine.Publisher
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()
		p, err := config.NewPublisher()
		if err != nil {
			log.Fatal("Create publisher failed:", err)
		}
		defer p.Close()
		publisher = p

		if err := handlers.StartEventBridge("presale_events"); err != nil {
			log.Fatal("Start event bridge failed:", err)
		}
		log.Println("RabbitMQ initialized successfully")
	} else {
		log.Println("RabbitMQ not configured, skipping initialization")
	}

	factory, err := factoryFromEnv()
	if err != nil {
		log.Fatal("Invalid platform configuration:", err)
	}

	store := ledger.NewGormStore(config.DB)
	eng := engine.New(store, factory, publisher)
	handlers.Init(eng, store)

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
