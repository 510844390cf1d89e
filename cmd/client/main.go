// Command client is a terminal companion for the gallery service: it
// can register accounts, create and delete entries, and watch the live
// listing as broadcasts arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/JaimeStill/live-gallery/pkg/client"
)

func main() {
	api := flag.String("api", "http://localhost:8080/api/v1", "base URL of the REST API")
	ws := flag.String("ws", "ws://localhost:8080/ws", "URL of the event stream")
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(*api)

	var err error
	switch flag.Arg(0) {
	case "register":
		err = register(ctx, c, *username, *password)
	case "create":
		err = create(ctx, c, *username, *password, flag.Args()[1:])
	case "delete":
		err = remove(ctx, c, *username, *password, flag.Arg(1))
	case "watch":
		err = watch(ctx, c, *ws, logger)
	default:
		fmt.Fprintln(os.Stderr, "usage: client [flags] register|create|delete|watch")
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func register(ctx context.Context, c *client.Client, username, password string) error {
	result, err := c.Register(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Printf("registered %s (%s)\n", result.User.Username, result.User.ID)
	return nil
}

func login(ctx context.Context, c *client.Client, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	_, err := c.Login(ctx, username, password)
	return err
}

func create(ctx context.Context, c *client.Client, username, password string, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: create <title> <image-path> [description]")
	}

	if err := login(ctx, c, username, password); err != nil {
		return err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	upload := client.Upload{
		Title:       args[0],
		Filename:    filepath.Base(args[1]),
		ContentType: contentTypeForFile(args[1]),
		Data:        data,
	}
	if len(args) > 2 {
		upload.Description = args[2]
	}

	obj, err := c.CreateObject(ctx, upload)
	if err != nil {
		return err
	}

	fmt.Printf("created %s: %s\n", obj.ID, obj.Title)
	return nil
}

func remove(ctx context.Context, c *client.Client, username, password, id string) error {
	if id == "" {
		return fmt.Errorf("usage: delete <id>")
	}

	if err := login(ctx, c, username, password); err != nil {
		return err
	}

	if err := c.DeleteObject(ctx, id); err != nil {
		return err
	}

	fmt.Println("deleted", id)
	return nil
}

func watch(ctx context.Context, c *client.Client, wsURL string, logger *slog.Logger) error {
	store := client.NewStore()
	query := client.ListQuery{Page: 1}

	refresh := func() error {
		page, err := c.Objects(ctx, query)
		if err != nil {
			return err
		}

		store.Replace(page, query)
		render(store)
		return nil
	}

	if err := refresh(); err != nil {
		return err
	}

	socket := client.NewSocket(wsURL, store, logger, func(client.Event) {
		if store.Stale() {
			if err := refresh(); err != nil {
				logger.Warn("refetch failed", "error", err)
			}
			return
		}
		render(store)
	})

	socket.Run(ctx)
	return nil
}

func render(store *client.Store) {
	objects, meta := store.Snapshot()

	fmt.Printf("\n%d objects (page %d/%d)\n", meta.Total, meta.Page, meta.TotalPages)
	for _, obj := range objects {
		desc := ""
		if obj.Description != nil {
			desc = " - " + *obj.Description
		}
		fmt.Printf("  [%s] %s%s by %s\n", obj.CreatedAt.Format("15:04:05"), obj.Title, desc, obj.CreatedBy.Username)
	}
}

func contentTypeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
