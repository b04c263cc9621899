package git

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var store *Store

// InitStore creates the shared per-project repository store rooted at
// REPOS_ROOT (default "repos").
func InitStore() error {
	err := godotenv.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	root := os.Getenv("REPOS_ROOT")
	if root == "" {
		root = "repos"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	store = NewStore(root)
	return nil
}

func Repos() *Store {
	return store
}

// Use swaps the shared store. Tests point it at a temp directory.
func Use(s *Store) {
	store = s
}
