// Command routes prints the API route table as text or YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/server"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type routeEntry struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

func main() {
	format := flag.String("format", "text", "output format: text or yaml")
	flag.Parse()

	// Routes do not depend on data, so an empty in-memory database is enough.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("open placeholder database: %v", err)
	}

	cfg := &config.Config{Env: "test", JWTSecret: "route-listing-only"}
	srv, err := server.NewServerWithDeps(cfg, db, nil)
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	if err := write(os.Stdout, collectRoutes(srv.NewApp()), *format); err != nil {
		log.Fatal(err)
	}
}

// collectRoutes returns the handler routes, sorted by path then method.
// Middleware mounts and the implicit HEAD routes are skipped.
func collectRoutes(app *fiber.App) []routeEntry {
	seen := make(map[routeEntry]bool)
	var out []routeEntry
	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || r.Method == "USE" {
			continue
		}
		e := routeEntry{Method: r.Method, Path: r.Path}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func write(w io.Writer, routes []routeEntry, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]routeEntry{"routes": routes}); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text":
		for _, r := range routes {
			if _, err := fmt.Fprintf(w, "%-7s %s\n", r.Method, r.Path); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
