// Command createadmin creates the admin account, or resets its password when it exists.
//
// Credentials come from -username/-password, then ADMIN_USER/ADMIN_PASSWORD,
// then an interactive prompt.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/db"
	"github.com/geocoder89/portfolio/internal/repo/postgres"
)

func main() {
	cfg := config.Load()

	var username, password string
	var keep bool

	flag.StringVar(&username, "username", cfg.AdminUser, "admin username (default $ADMIN_USER)")
	flag.StringVar(&password, "password", cfg.AdminPassword, "admin password (default $ADMIN_PASSWORD)")
	flag.BoolVar(&keep, "keep-password", false, "leave the password of an existing account unchanged")
	flag.Parse()

	in := bufio.NewReader(os.Stdin)

	var err error

	if username == "" {
		username, err = prompt(in, "Username: ")
		if err != nil {
			fail(err)
		}
	}

	if password == "" {
		password, err = prompt(in, "Password: ")
		if err != nil {
			fail(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(cfg.DBURL)
	if err != nil {
		fail(err)
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		fail(fmt.Errorf("database unreachable: %w", err))
	}

	res, err := db.EnsureAdminUser(ctx, postgres.NewUsersRepo(pool, nil), username, password, !keep)
	if err != nil {
		fail(err)
	}

	fmt.Printf("admin %q: %s\n", strings.TrimSpace(username), res)
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
