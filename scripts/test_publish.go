//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/geo"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	name := flag.String("name", "Gràcia", "Exercise name")
	wait := flag.Duration("wait", 2*time.Minute, "How long to wait for the result")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовая область (Gràcia, Barcelona)
	event := domain.BuildExerciseEvent{
		JobID: uuid.New(),
		Name:  *name,
		WorkingArea: []geo.Point{
			{Lat: 41.3990, Lon: 2.1500},
			{Lat: 41.4100, Lon: 2.1500},
			{Lat: 41.4100, Lon: 2.1650},
			{Lat: 41.3990, Lon: 2.1650},
		},
		RequestedAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Запоминаем хвост стрима результатов до публикации
	lastID := "$"
	if msgs, err := client.XRevRangeN(ctx, domain.StreamExerciseBuilt, "+", "-", 1).Result(); err == nil && len(msgs) > 0 {
		lastID = msgs[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamExerciseBuild,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Job published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamExerciseBuild)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)

	fmt.Printf("\nWaiting for result in %s...\n", domain.StreamExerciseBuilt)

	deadline := time.Now().Add(*wait)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamExerciseBuilt, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil && err != redis.Nil {
			log.Fatalf("Failed to read results: %v", err)
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var built domain.ExerciseBuiltEvent
				if err := json.Unmarshal([]byte(dataStr), &built); err != nil {
					continue
				}
				if built.JobID != event.JobID {
					continue
				}

				pretty, _ := json.MarshalIndent(built, "", "  ")
				fmt.Printf("\nResult received:\n%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for result")
}
