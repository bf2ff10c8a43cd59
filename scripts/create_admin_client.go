package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/gin-mexitoes-api/internal/config"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/database"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/services"
	"github.com/joho/godotenv"
)

// Registers an OAuth2 client allowed to call the admin endpoints.
//
//	go run ./scripts/create_admin_client.go -name "ops dashboard"
func main() {
	name := flag.String("name", "Mexitoes admin", "Client display name")
	domain := flag.String("domain", "http://localhost", "Client domain")
	scopes := flag.String("scopes", models.ScopeOrdersAdmin, "Space separated scopes")
	flag.Parse()

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	client, secret, err := services.NewClientService(db).CreateClient(context.Background(), *name, *domain, *scopes)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Printf("✓ Admin OAuth client created!\n")
	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", secret)
	fmt.Printf("Scopes: %s\n", client.Scopes)
	fmt.Println("\nThe secret is not stored in plain text. Keep it now.")
	fmt.Println("\nRequest a token with:")
	fmt.Printf("curl -X POST http://%s:%d/api/oauth/token \\\n", conf.Host, conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", secret)
}
