// Command import_product prints the clothing item drafts read from product
// page URLs given on the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/raushankrgupta/virtual-closet/config"
	"github.com/raushankrgupta/virtual-closet/importer"
	"github.com/raushankrgupta/virtual-closet/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_product <url> [url...]")
		os.Exit(2)
	}
	config.LoadConfig()

	lg, err := logger.New(config.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	im := importer.New(lg)
	for _, u := range os.Args[1:] {
		fmt.Printf("Importing URL: %s\n", u)
		draft, err := im.Import(context.Background(), u)
		if err != nil {
			log.Printf("Failed to import %s: %v\n", u, err)
			continue
		}
		b, _ := json.MarshalIndent(draft, "", "  ")
		fmt.Printf("Draft: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}
}
