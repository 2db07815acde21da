// Package main provides account management utilities for the job board.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"

	"github.com/google/uuid"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin promote <username> [role]   - Set a user's role (default admin)")
	fmt.Println("  go run ./cmd/admin list-users [--role <role>]  - List accounts")
	fmt.Println("  go run ./cmd/admin show <user-id>              - Show one account")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := service.NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	switch os.Args[1] {
	case "promote":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		role := string(models.RoleAdmin)
		if len(os.Args) > 3 {
			role = os.Args[3]
		}
		promote(ctx, users, os.Args[2], role)

	case "list-users":
		fs := flag.NewFlagSet("list-users", flag.ExitOnError)
		role := fs.String("role", "", "only list users with this role")
		_ = fs.Parse(os.Args[2:])
		listUsers(ctx, users, *role)

	case "show":
		if len(os.Args) < 3 {
			usage()
			os.Exit(1)
		}
		showUser(ctx, users, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func promote(ctx context.Context, users *service.UserService, username, role string) {
	user, err := users.UpdateRole(ctx, username, role)
	if err != nil {
		switch {
		case models.HasCode(err, models.CodeNotFound):
			fmt.Printf("User %s not found\n", username)
		case models.HasCode(err, models.CodeBadRequest):
			fmt.Printf("Invalid role %q (expected poster, doer or admin)\n", role)
		default:
			log.Fatalf("Failed to update role: %v", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Updated %s (%s) to role %s\n", user.Username, user.ID, user.Role)
}

func listUsers(ctx context.Context, users *service.UserService, role string) {
	list, err := users.ListUsers(ctx, role, models.Page{Limit: models.MaxPageLimit})
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	if len(list) == 0 {
		fmt.Println("No users found")
		return
	}

	fmt.Println("─────────────────────────────────────")
	for _, u := range list {
		fmt.Printf("%s | %-20s | %-6s | %s\n", u.ID, u.Username, u.Role, u.Email)
	}
	fmt.Println("─────────────────────────────────────")
}

func showUser(ctx context.Context, users *service.UserService, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		fmt.Printf("Invalid user id %q\n", rawID)
		os.Exit(1)
	}

	user, err := users.GetUser(ctx, id)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			fmt.Printf("User %s not found\n", id)
			os.Exit(1)
		}
		log.Fatalf("Failed to load user: %v", err)
	}

	fmt.Printf("ID:         %s\n", user.ID)
	fmt.Printf("Username:   %s\n", user.Username)
	fmt.Printf("Email:      %s\n", user.Email)
	fmt.Printf("Role:       %s\n", user.Role)
	fmt.Printf("Department: %s\n", user.Department)
	fmt.Printf("Joined:     %s\n", user.CreatedAt.Format("2006-01-02"))
}
