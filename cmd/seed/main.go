// Command seed creates (or resets) the admin account from ADMIN_USERNAME and
// ADMIN_PASSWORD. Run it once before first start.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicfolio/clinicfolio"
)

func main() {
	_ = godotenv.Load()

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_USERNAME and ADMIN_PASSWORD environment variables are required")
		os.Exit(1)
	}
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD must be at least 8 characters")
		os.Exit(1)
	}

	cfg := clinicfolio.LoadConfig()
	store, err := clinicfolio.NewStore(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	if user, err := store.GetAdminUserByUsername(username); err == nil {
		if err := store.UpdateAdminPassword(user.ID, string(hash)); err != nil {
			fmt.Fprintf(os.Stderr, "update password: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("password updated for %q\n", username)
		return
	}

	id, err := store.CreateAdminUser(username, string(hash))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin %q created (id %d)\n", username, id)
}
