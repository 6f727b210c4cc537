package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/onair/command"
	"github.com/grovetools/onair/config"
	"github.com/grovetools/onair/logging"
)

func main() {
	outputDir := "schema/definitions"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	generators := map[string]func() ([]byte, error){
		"config.schema.json":   config.GenerateSchema,
		"commands.schema.json": command.Schema,
		"logging.schema.json":  logging.GenerateSchema,
	}
	for name, generate := range generators {
		data, err := generate()
		if err != nil {
			log.Fatalf("Error generating %s: %v", name, err)
		}
		outputPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			log.Fatalf("Error writing schema file: %v", err)
		}
		log.Printf("Generated %s", outputPath)
	}
}
