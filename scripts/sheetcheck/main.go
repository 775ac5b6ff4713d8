// Command sheetcheck probes connectivity and schema state for the three
// partition sheets without starting the server.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"certgen/config"
	"certgen/sheetdb"
)

func main() {
	config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := sheetdb.NewGoogleClient(ctx, config.AppConfig.GoogleCredentialsFile)
	if err != nil {
		log.Fatalf("Google Sheets authentication failed: %v", err)
	}
	fmt.Println("Google authentication successful")

	store := sheetdb.New(client, map[string]string{
		"student": config.AppConfig.StudentSheetID,
		"trainer": config.AppConfig.TrainerSheetID,
		"trainee": config.AppConfig.TraineeSheetID,
	})

	for _, partition := range sheetdb.Partitions {
		header, err := store.EnsureColumns(ctx, partition)
		if err != nil {
			log.Fatalf("%s sheet check failed: %v", partition, err)
		}
		fmt.Printf("%s sheet OK (%d columns)\n", partition, len(header))

		result, err := store.List(ctx, partition, sheetdb.ListOptions{Limit: 1})
		if err != nil {
			log.Fatalf("%s sheet read failed: %v", partition, err)
		}
		fmt.Printf("%s sheet rows: %d\n", partition, result.Total)
	}

	fmt.Println("All partition sheets reachable")
}
