package main

import (
	"encoding/json"
	"os"
	"strconv"

	"launchcontrol/internal/engine"
	"launchcontrol/internal/ledger"
	"launchcontrol/internal/models"
	"launchcontrol/pkg/config"
	"launchcontrol/schedule"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)

	_ = godotenv.Load()

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	factory, err := factoryFromEnv()
	if err != nil {
		logrus.Fatal("Invalid platform configuration: ", err)
	}
	store := ledger.NewGormStore(config.DB)
	eng := engine.New(store, factory, nil)

	// Snapshot cron
	spec := os.Getenv("SNAPSHOT_CRON")
	if spec == "" {
		spec = "@every 1m"
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := schedule.RecordPresaleSnapshots(eng); err != nil {
			logrus.Errorf("Snapshot run failed: %v", err)
		}
	}); err != nil {
		logrus.Fatal("Failed to schedule snapshot job: ", err)
	}
	c.Start()
	defer c.Stop()

	// Create consumer for the presale event queue
	msgConsumer, err := config.NewConsumer("presale_events")
	if err != nil {
		logrus.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	logrus.Info("Presale worker started, waiting for events...")

	err = msgConsumer.Consume(func(msg []byte) error {
		var event engine.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			logrus.Errorf("Failed to unmarshal event: %v", err)
			return err
		}
		logrus.WithFields(logrus.Fields{
			"type":      event.Type,
			"timestamp": event.Timestamp,
		}).Info("Presale event received")

		switch event.Type {
		case engine.EventPresaleFinalized, engine.EventPresaleCanceled:
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				return err
			}
			var settle engine.SettlementEvent
			if err := json.Unmarshal(payload, &settle); err != nil {
				return err
			}
			if err := deactivatePresale(settle.Presale); err != nil {
				logrus.Errorf("Failed to deactivate presale %s: %v", settle.Presale, err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		logrus.Fatal("Failed to start consumer: ", err)
	}
}

func deactivatePresale(address string) error {
	if _, err := solana.PublicKeyFromBase58(address); err != nil {
		return err
	}
	return config.DB.Model(&models.PresaleIndex{}).
		Where("presale_address = ?", address).
		Update("is_active", false).Error
}

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
