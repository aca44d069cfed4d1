// Command seed provisions the default admin user and a handful of demo
// orders so the dashboard has something to show on a fresh database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/madistic/Edviron-2/internal/client"
	"github.com/madistic/Edviron-2/internal/config"
	"github.com/madistic/Edviron-2/internal/model"
	"github.com/madistic/Edviron-2/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	ctx := context.Background()

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatal(err)
	}
	if err := seedOrders(ctx, db, cfg.Gateway.SchoolID); err != nil {
		log.Fatal(err)
	}

	log.Println("Seeding completed")
}

func seedAdminUser(ctx context.Context, db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)

	if _, err := userRepo.FindByUsername(ctx, "admin"); err == nil {
		log.Println("Admin user already exists, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = userRepo.Create(ctx, &model.User{
		ID:        uuid.NewString(),
		Username:  "admin",
		Password:  string(hashed),
		Role:      "admin",
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Println("Default admin user created")
	return nil
}

func seedOrders(ctx context.Context, db *gorm.DB, schoolID string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if count > 0 {
		log.Println("Orders already present, skipping")
		return nil
	}

	if schoolID == "" {
		schoolID = "65b0e6293e9f76a9694d84b4"
	}

	orderRepo := repository.NewOrderRepository(db)
	statusRepo := repository.NewOrderStatusRepository(db)

	statuses := []string{"success", "pending", "failed"}
	paymentModes := []string{"UPI", "Net Banking", "Credit Card", "Debit Card"}

	for i := 1; i <= 10; i++ {
		order := &model.Order{
			OrderID:   uuid.NewString(),
			SchoolID:  schoolID,
			TrusteeID: "65b0e552dd31950a9b41c5ba",
			StudentInfo: model.StudentInfo{
				Name:  fmt.Sprintf("Student %d", i),
				ID:    fmt.Sprintf("STU%03d", i),
				Email: fmt.Sprintf("student%d@example.com", i),
			},
			GatewayName: "Cashfree",
			CreatedAt:   time.Now().UTC().Add(-time.Duration(i) * time.Hour),
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("create order %d: %w", i, err)
		}

		status := statuses[i%len(statuses)]
		mode := paymentModes[i%len(paymentModes)]
		orderAmount := float64(100 + i*450)

		transactionAmount := 0.0
		var paymentTime *time.Time
		if status == "success" {
			transactionAmount = orderAmount
			t := order.CreatedAt.Add(10 * time.Minute)
			paymentTime = &t
		}

		err := statusRepo.Create(ctx, &model.OrderStatus{
			CollectID:         order.OrderID,
			OrderAmount:       orderAmount,
			TransactionAmount: transactionAmount,
			PaymentMode:       mode,
			PaymentDetails:    "Payment via " + mode,
			BankReference:     fmt.Sprintf("BANK%06d", i),
			PaymentMessage:    "Seeded transaction",
			Status:            status,
			PaymentTime:       paymentTime,
			CreatedAt:         order.CreatedAt,
			UpdatedAt:         order.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("create order status %d: %w", i, err)
		}
	}

	log.Println("Seeded 10 demo orders")
	return nil
}
