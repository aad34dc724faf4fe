// Command diagnose_lineage checks the integrity of the fork-lineage
// data: flattened root pointers, dangling parents, and denormalized
// counter drift. Run it manually against a live database when lineage
// queries return suspicious results.
//
// Usage:
//
//	DATABASE_URL=postgres://... go run scripts/diagnose_lineage.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// LineageDiagnostic is the result of one integrity check.
type LineageDiagnostic struct {
	Check    string `json:"check"`
	Status   string `json:"status"` // "OK" or "VIOLATION"
	Count    int64  `json:"count"`
	Details  string `json:"details,omitempty"`
	Duration int64  `json:"duration_ms"`
}

// checks are single queries counting rows that violate an invariant.
// Zero rows means the invariant holds.
var checks = []struct {
	name    string
	details string
	query   string
}{
	{
		name:    "root_without_pointers",
		details: "root recipes must carry neither parent_id nor root_id",
		query: `SELECT count(*) FROM recipes
		        WHERE parent_id IS NULL AND root_id IS NOT NULL`,
	},
	{
		name:    "fork_without_root",
		details: "forked recipes must carry a flattened root_id",
		query: `SELECT count(*) FROM recipes
		        WHERE parent_id IS NOT NULL AND root_id IS NULL`,
	},
	{
		name:    "unflattened_root",
		details: "a fork's root_id must equal its parent's root_id (or the parent itself when the parent is a root)",
		query: `SELECT count(*) FROM recipes c
		        JOIN recipes p ON p.id = c.parent_id
		        WHERE c.root_id <> COALESCE(p.root_id, p.id)`,
	},
	{
		name:    "dangling_parent",
		details: "parent_id must reference an existing recipe row",
		query: `SELECT count(*) FROM recipes c
		        WHERE c.parent_id IS NOT NULL
		          AND NOT EXISTS (SELECT 1 FROM recipes p WHERE p.id = c.parent_id)`,
	},
	{
		name:    "fork_count_drift",
		details: "fork_count must equal the number of live direct variants",
		query: `SELECT count(*) FROM recipes p
		        WHERE p.deleted_at IS NULL
		          AND p.fork_count <> (
		            SELECT count(*) FROM recipes c
		            WHERE c.parent_id = p.id AND c.deleted_at IS NULL)`,
	},
	{
		name:    "log_count_drift",
		details: "log_count must equal the number of cooking logs",
		query: `SELECT count(*) FROM recipes r
		        WHERE r.deleted_at IS NULL
		          AND r.log_count <> (
		            SELECT count(*) FROM recipe_logs l WHERE l.recipe_id = r.id)`,
	},
	{
		name:    "saved_count_drift",
		details: "saved_count must equal the number of saved_recipes rows",
		query: `SELECT count(*) FROM recipes r
		        WHERE r.deleted_at IS NULL
		          AND r.saved_count <> (
		            SELECT count(*) FROM saved_recipes s WHERE s.recipe_id = r.id)`,
	},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	database, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var results []LineageDiagnostic
	violations := 0
	for _, check := range checks {
		start := time.Now()
		var count int64
		err := database.QueryRowContext(ctx, check.query).Scan(&count)
		d := LineageDiagnostic{
			Check:    check.name,
			Status:   "OK",
			Count:    count,
			Duration: time.Since(start).Milliseconds(),
		}
		switch {
		case err != nil:
			d.Status = "ERROR"
			d.Details = err.Error()
			violations++
		case count > 0:
			d.Status = "VIOLATION"
			d.Details = check.details
			violations++
		}
		results = append(results, d)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("marshal results: %v", err)
	}
	fmt.Println(string(out))

	if violations > 0 {
		fmt.Fprintf(os.Stderr, "%d check(s) failed\n", violations)
		os.Exit(1)
	}
}
