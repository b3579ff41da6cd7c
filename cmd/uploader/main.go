// Команда uploader — консольный клиент сервиса: отправка архива на
// рефакторинг, оформление подписки и просмотр состояния квоты.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/magabrotheeeer/refactor-hub/internal/client"
)

const defaultTimeout = 120 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "upload":
		fs := flag.NewFlagSet("upload", flag.ExitOnError)
		server := fs.String("server", "http://localhost:8080", "адрес сервиса")
		user := fs.String("user", "", "идентификатор пользователя (email)")
		file := fs.String("file", "", "путь к zip-архиву")
		_ = fs.Parse(os.Args[2:])
		runUpload(ctx, *server, *user, *file)
	case "subscribe":
		fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
		server := fs.String("server", "http://localhost:8080", "адрес сервиса")
		user := fs.String("user", "", "идентификатор пользователя (email)")
		_ = fs.Parse(os.Args[2:])
		runSubscribe(ctx, *server, *user)
	case "usage":
		fs := flag.NewFlagSet("usage", flag.ExitOnError)
		server := fs.String("server", "http://localhost:8080", "адрес сервиса")
		user := fs.String("user", "", "идентификатор пользователя (email)")
		_ = fs.Parse(os.Args[2:])
		runUsage(ctx, *server, *user)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: uploader <upload|subscribe|usage> [flags]")
}

func runUpload(ctx context.Context, server, user, file string) {
	if file == "" {
		fmt.Fprintln(os.Stderr, "error: -file is required")
		os.Exit(2)
	}
	artifact, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	c := client.New(server, defaultTimeout)
	result, err := c.Submit(ctx, user, artifact, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch result.Status {
	case client.StatusAuthorized:
		if err := os.WriteFile(result.Filename, result.Artifact, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("saved result to %s\n", result.Filename)
	case client.StatusQuotaExceeded:
		fmt.Println(result.Message)
		if confirm("Open checkout page?") {
			fmt.Printf("checkout: %s\n", result.CheckoutURL)
		}
	case client.StatusFailed:
		fmt.Fprintf(os.Stderr, "upload failed: %s\n", result.Message)
		os.Exit(1)
	}
}

func runSubscribe(ctx context.Context, server, user string) {
	c := client.New(server, defaultTimeout)
	url, err := c.Subscribe(ctx, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("checkout: %s\n", url)
}

func runUsage(ctx context.Context, server, user string) {
	c := client.New(server, defaultTimeout)
	info, err := c.Usage(ctx, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("used %d of %d, subscribed: %v\n", info.Used, info.Limit, info.Subscribed)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
