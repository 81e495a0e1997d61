// Seeds a redis store with the example ledger dataset. The API seeds itself
// on first load; this exists for resetting a shared redis instance during
// development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/udhari/ledger-service/internal/domain"
)

func main() {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       0,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	fmt.Println("Connected to Redis successfully")

	customers := []domain.Customer{
		{ID: "1", Name: "Aarav Sharma", Phone: "9876543210", Address: "123, MG Road, Bangalore", PendingAmount: 250000, DueDate: "2024-08-15", LastPaymentDate: "2024-07-20", Notes: "Ordered 50kg rice", PhotoURL: domain.DefaultAvatar},
		{ID: "2", Name: "Priya Patel", Phone: "9988776655", Address: "45, Jubilee Hills, Hyderabad", PendingAmount: 0, DueDate: "2024-07-30", LastPaymentDate: "2024-07-25", Notes: "Cleared all dues.", PhotoURL: domain.DefaultAvatar},
		{ID: "3", Name: "Rohan Singh", Phone: "8877665544", Address: "789, Linking Road, Mumbai", PendingAmount: 50000, DueDate: "2024-08-05", LastPaymentDate: "2024-07-10", Notes: "Monthly grocery", PhotoURL: domain.DefaultAvatar},
		{ID: "4", Name: "Sunita Gupta", Phone: "7766554433", Address: "101, Connaught Place, Delhi", PendingAmount: 820000, DueDate: "2024-07-28", LastPaymentDate: "2024-06-15", Notes: "Large order for event", PhotoURL: domain.DefaultAvatar},
	}

	payments := []domain.Payment{
		{ID: "p1", CustomerID: "2", Amount: 150000, Date: "2024-07-25"},
		{ID: "p2", CustomerID: "1", Amount: 100000, Date: "2024-07-20"},
		{ID: "p3", CustomerID: "4", Amount: 500000, Date: "2024-06-15"},
		{ID: "p4", CustomerID: "3", Amount: 200000, Date: "2024-07-10"},
	}

	writeJSON(ctx, client, "customers", customers)
	writeJSON(ctx, client, "payments", payments)
	writeJSON(ctx, client, "theme", "light")

	fmt.Printf("Seeded %d customers and %d payments\n", len(customers), len(payments))
}

func writeJSON(ctx context.Context, client *redis.Client, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Fatalf("Failed to marshal %s: %v", key, err)
	}
	if err := client.Set(ctx, key, data, 0).Err(); err != nil {
		log.Fatalf("Failed to write %s: %v", key, err)
	}
	fmt.Printf("Wrote key %q (%d bytes)\n", key, len(data))
}
