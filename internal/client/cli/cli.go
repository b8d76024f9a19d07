// Package cli реализует консольные команды клиента labsync
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/vodokanal/labsync/internal/client/api"
	"github.com/vodokanal/labsync/internal/client/labdata"
	"github.com/vodokanal/labsync/internal/client/storage"
	"github.com/vodokanal/labsync/internal/client/sync"
)

// Cli связывает команды с сервисами клиента.
// Поля in/out и readPassword подменяются в тестах.
type Cli struct {
	apiClient   api.ClientAPI
	labData     *labdata.Service
	syncService sync.Service
	metadata    storage.MetadataStorage
	session     storage.SessionStorage

	in           *bufio.Reader
	out          io.Writer
	readPassword func(prompt string) (string, error)
}

// New creates a CLI bound to stdin/stdout
func New(
	apiClient api.ClientAPI,
	labData *labdata.Service,
	syncService sync.Service,
	metadata storage.MetadataStorage,
	session storage.SessionStorage,
) *Cli {
	return &Cli{
		apiClient:    apiClient,
		labData:      labData,
		syncService:  syncService,
		metadata:     metadata,
		session:      session,
		in:           bufio.NewReader(os.Stdin),
		out:          os.Stdout,
		readPassword: readPasswordTerm,
	}
}

// readInput читает строку из in с приглашением
func (c *Cli) readInput(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	input, err := c.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPasswordTerm читает пароль без отображения на экране
func readPasswordTerm(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}

// currentSession возвращает сохраненную сессию или понятную ошибку
func (c *Cli) currentSession(ctx context.Context) (*storage.Session, error) {
	sess, err := c.session.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, fmt.Errorf("not authenticated. Please run 'labsync login' first")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

func PrintUsage() {
	fmt.Println("labsync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  labsync [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Show version information")
	fmt.Println("  --server URL     Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH        Path to local database (default: labsync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                     Register new user")
	fmt.Println("  login                        Login to server")
	fmt.Println("  logout                       Logout and drop the saved session")
	fmt.Println("  status                       Show session and pending sync status")
	fmt.Println("  add <type> [json]            Add a record (sample, test_result, site)")
	fmt.Println("  list <type>                  List active records of a type")
	fmt.Println("  get <type> <id>              Show one record")
	fmt.Println("  delete <type> <id>           Delete a record (soft delete, synced to server)")
	fmt.Println("  sync                         Synchronize local data with server")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  labsync register")
	fmt.Println("  labsync login")
	fmt.Println(`  labsync add sample '{"site_id":"well-7","ph":7.2,"turbidity":0.4}'`)
	fmt.Println("  labsync list sample")
	fmt.Println("  labsync get sample b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  labsync sync")
	fmt.Println("  labsync --server https://lims.example.com login")
}
