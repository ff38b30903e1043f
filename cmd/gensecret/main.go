package main

import (
	"fmt"
	"log"

	"socialcatalyst/core"
)

func main() {
	log.Printf("🔑 Generating new signing secret...")

	// Generate a new secret with "sk" prefix for JWT or OAuth state signing
	secret, err := core.NewSecretKey("sk")
	if err != nil {
		log.Fatalf("❌ Failed to generate secret: %v", err)
	}

	fmt.Printf("Generated secret: %s\n", secret)
	log.Printf("✅ Successfully generated signing secret")
}
