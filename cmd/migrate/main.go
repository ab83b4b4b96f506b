// Runner de migrações do schema (goose).
//
// Uso:
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down
//	go run ./cmd/migrate status
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"cosmetick/internal/pkg/database"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "./sql", "diretório das migrações")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("❌ DATABASE_URL deve ser definida para rodar migrações.")
	}

	db, err := database.NewPostgresDB(dsn)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar ao PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ Falha ao configurar o dialeto do goose: %v", err)
	}

	if err := goose.Run(command, db, *dir, flag.Args()[1:]...); err != nil {
		log.Fatalf("❌ Falha ao executar 'goose %s': %v", command, err)
	}

	log.Printf("✅ Migração '%s' concluída.", command)
}
