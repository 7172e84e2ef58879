package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/pixelgram/config"
	"github.com/oksasatya/pixelgram/pkg/helpers"
)

// Seeds two demo accounts and a follow edge between them so the feed has
// something to show on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	aliceID := upsertUser(db, "alice@example.com", "alice", "Alice Demo", hash)
	bobID := upsertUser(db, "bob@example.com", "bob", "Bob Demo", hash)
	fmt.Printf("seeded users: alice=%s bob=%s (password=%s)\n", aliceID, bobID, password)

	if _, err := db.Exec(`
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`, aliceID, bobID); err != nil {
		log.Fatalf("failed to seed follow: %v", err)
	}
	fmt.Println("alice now follows bob")

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (user_id, image_url, image_object_key, caption)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, bobID, "https://storage.googleapis.com/demo/posts/seed.jpg", "", "hello from the seed script").Scan(&postID)
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%s\n", postID)
}

func upsertUser(db *sql.DB, email, username, fullName, hash string) string {
	var id string
	err := db.QueryRow(`
		INSERT INTO users (email, username, full_name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id
	`, email, username, fullName, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
