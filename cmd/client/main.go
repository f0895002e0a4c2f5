// Command client is a small command-line tool for talking to a running
// accounts server. It drives the HTTP adapter directly and prints the
// decoded responses as JSON.
//
// Usage:
//
//	client -a http://localhost:8080 health
//	client -a http://localhost:8080 login -name admin -password secret
//	client -a http://localhost:8080 -token <jwt> list -page 1 -page-size 20
//	client -a http://localhost:8080 -skip-auth-token dev create -name bob -email bob@example.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mediamz/accounts/internal/adapter"
	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("accounts-client")

	address := flag.String("a", "http://localhost:8080", "server base URL")
	token := flag.String("token", "", "bearer token for authenticated requests")
	skipAuthToken := flag.String("skip-auth-token", "", "development bypass token")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL:       *address,
		SkipAuthToken: *skipAuthToken,
		Timeout:       *timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}
	serverAdapter.SetToken(*token)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	command, args := flag.Arg(0), flag.Args()[1:]
	if err := runCommand(ctx, serverAdapter, command, args); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

func runCommand(ctx context.Context, serverAdapter adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "health":
		if err := serverAdapter.Health(ctx); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil

	case "version":
		version, err := serverAdapter.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println(version)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		name := fs.String("name", "", "user name")
		password := fs.String("password", "", "user password")
		if err := fs.Parse(args); err != nil {
			return err
		}

		resp, err := serverAdapter.Login(ctx, models.LoginRequest{Name: *name, Password: *password})
		if err != nil {
			return err
		}
		return printJSON(resp)

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		page := fs.Int("page", 0, "page number, 0 lists everything")
		pageSize := fs.Int("page-size", 10, "records per page")
		if err := fs.Parse(args); err != nil {
			return err
		}

		userPage, err := serverAdapter.ListUsers(ctx, *page, *pageSize)
		if err != nil {
			return err
		}
		return printJSON(userPage)

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		name := fs.String("name", "", "user name")
		email := fs.String("email", "", "user email")
		phone := fs.String("phone", "", "user phone")
		password := fs.String("password", "", "user password (optional)")
		if err := fs.Parse(args); err != nil {
			return err
		}

		createdUser, err := serverAdapter.CreateUser(ctx, models.CreateUserRequest{
			Name:     *name,
			Email:    *email,
			Phone:    *phone,
			Password: *password,
		})
		if err != nil {
			return err
		}
		return printJSON(createdUser)

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		id := fs.Int64("id", 0, "user id")
		email := fs.String("email", "", "new email")
		phone := fs.String("phone", "", "new phone")
		password := fs.String("password", "", "new password")
		locked := fs.Bool("locked", false, "lock the account")
		unlocked := fs.Bool("unlocked", false, "unlock the account")
		if err := fs.Parse(args); err != nil {
			return err
		}

		var patch models.UserPatch
		if *email != "" {
			patch.Email = email
		}
		if *phone != "" {
			patch.Phone = phone
		}
		if *password != "" {
			patch.Password = password
		}
		if *locked {
			patch.Locked = ptr(true)
		}
		if *unlocked {
			patch.Locked = ptr(false)
		}

		updatedUser, err := serverAdapter.UpdateUser(ctx, *id, patch)
		if err != nil {
			return err
		}
		return printJSON(updatedUser)

	case "build-info":
		printBuildInfo()
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func ptr[T any](v T) *T { return &v }

func usage() {
	fmt.Fprintln(os.Stderr, "usage: client [flags] <health|version|login|list|create|update|build-info> [command flags]")
	flag.PrintDefaults()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
