// Command dbcheck is a standalone store-connectivity diagnostic. It loads the
// same configuration as the API server, connects, and reports table status and
// row counts, printing remediation hints for the common failure modes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"github.com/studentdesk/studentdesk/internal/config"
	"github.com/studentdesk/studentdesk/internal/pkg/dberrors"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("Connecting to %s:%s/%s as %s...\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.User)

	conn, err := pgx.Connect(ctx, cfg.GetPostgresConnectionString())
	if err != nil {
		fmt.Fprintln(os.Stderr, "connection failed:", err)
		switch {
		case dberrors.IsConnectionError(err):
			fmt.Fprintln(os.Stderr, "hint: PostgreSQL is not running or not accessible on this host/port")
		case dberrors.IsDatabaseMissing(err):
			fmt.Fprintln(os.Stderr, "hint: the database does not exist yet; start the API server once to bootstrap it")
		default:
			fmt.Fprintln(os.Stderr, "hint: check the database credentials in configs/config.yaml or the DB_* environment variables")
		}
		os.Exit(1)
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ping failed:", err)
		os.Exit(1)
	}
	fmt.Println("Connection OK")

	for _, table := range []string{"users", "student"} {
		var count int64
		err := conn.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pgx.Identifier{table}.Sanitize())).Scan(&count)
		if err != nil {
			if dberrors.IsUndefinedTable(err) {
				fmt.Printf("table %-8s MISSING (start the API server once to bootstrap the schema)\n", table)
				continue
			}
			fmt.Fprintf(os.Stderr, "table %s: query failed: %v\n", table, err)
			os.Exit(1)
		}
		fmt.Printf("table %-8s OK (%d rows)\n", table, count)
	}
}
