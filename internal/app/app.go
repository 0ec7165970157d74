// Package app wires the client together: configuration, logging,
// device storage, session, the HTTP and socket services, and the
// terminal commands exposed by cmd/hoy.
package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hoyapp/hoygo/internal/api"
	"github.com/hoyapp/hoygo/internal/config"
	"github.com/hoyapp/hoygo/internal/countries"
	"github.com/hoyapp/hoygo/internal/logger"
	"github.com/hoyapp/hoygo/internal/models"
	"github.com/hoyapp/hoygo/internal/services/auth"
	"github.com/hoyapp/hoygo/internal/services/messages"
	"github.com/hoyapp/hoygo/internal/services/notifications"
	"github.com/hoyapp/hoygo/internal/services/properties"
	"github.com/hoyapp/hoygo/internal/services/upload"
	"github.com/hoyapp/hoygo/internal/session"
	"github.com/hoyapp/hoygo/internal/socket"
	"github.com/hoyapp/hoygo/internal/store/filestore"
	"github.com/hoyapp/hoygo/internal/watch"
)

// App owns every long-lived client object.
type App struct {
	cfg     *config.Config
	db      *filestore.FileStore
	session *session.Session
	client  *api.Client
	sock    *socket.Service

	auth          *auth.Service
	messages      *messages.Service
	notifications *notifications.Service
	properties    *properties.Service
	upload        *upload.Service
}

// New builds the full client from cfg.
func New(cfg *config.Config) (*App, error) {
	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, err
	}

	db, err := filestore.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("opening device store: %w", err)
	}

	sess, err := session.New(db)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	client := api.New(cfg, sess)

	sock := socket.New(socket.Options{
		URL:   cfg.SocketURL,
		Token: sess.AccessToken,
		UserID: func() string {
			if usr := sess.User(); usr != nil {
				return usr.ID
			}
			return ""
		},
	})

	return &App{
		cfg:           cfg,
		db:            db,
		session:       sess,
		client:        client,
		sock:          sock,
		auth:          auth.New(client, sess),
		messages:      messages.New(client, sock),
		notifications: notifications.New(client, sess),
		properties:    properties.New(client),
		upload:        upload.New(client),
	}, nil
}

// Close flushes the device store and tears the socket down.
func (a *App) Close() error {
	if a.sock.State() != socket.Disconnected {
		if err := a.sock.Close(); err != nil {
			logger.Log.Debugw("socket close", "error", err)
		}
	}

	if err := a.db.Close(); err != nil {
		return err
	}

	return logger.Sync()
}

// Usage is printed when no or an unknown command is given.
const Usage = `usage: hoy <command> [args]

commands:
  login <email>              sign in (password read from stdin)
  logout                     sign out and clear the local session
  me                         show the signed-in account
  conversations              list conversations
  messages <conversation>    show a conversation
  send <conversation> <text> send a message
  notifications              list notifications
  listings                   list your property listings
  upload <file>              upload an image
  countries [query]          search the country table
  watch                      follow conversations and notifications live
`

// Run dispatches one terminal command. It returns after the command
// completes or, for watch, after an interrupt signal.
func (a *App) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 {
		fmt.Print(Usage)
		return nil
	}

	switch args[0] {
	case "login":
		return a.cmdLogin(ctx, args[1:])
	case "logout":
		return a.auth.Logout(ctx)
	case "me":
		return a.cmdMe(ctx)
	case "conversations":
		return a.cmdConversations(ctx)
	case "messages":
		return a.cmdMessages(ctx, args[1:])
	case "send":
		return a.cmdSend(ctx, args[1:])
	case "notifications":
		return a.cmdNotifications(ctx)
	case "listings":
		return a.cmdListings(ctx)
	case "upload":
		return a.cmdUpload(ctx, args[1:])
	case "countries":
		return a.cmdCountries(args[1:])
	case "watch":
		return a.cmdWatch(ctx)
	default:
		fmt.Print(Usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("login needs exactly one argument: the email")
	}

	fmt.Print("password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	usr, err := a.auth.Login(ctx, args[0], strings.TrimSpace(password))
	if err != nil {
		return err
	}

	fmt.Printf("signed in as %s %s <%s>\n", usr.FirstName, usr.LastName, usr.Email)
	return nil
}

func (a *App) cmdMe(ctx context.Context) error {
	usr, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s <%s>\n", usr.FirstName, usr.LastName, usr.Email)
	if usr.IsHost {
		fmt.Println("hosting enabled")
	}
	return nil
}

func (a *App) cmdConversations(ctx context.Context) error {
	conversations, err := a.messages.Conversations(ctx)
	if err != nil {
		return err
	}

	for _, conv := range conversations {
		last := ""
		if conv.LastMessage != nil {
			last = conv.LastMessage.Body
		}
		fmt.Printf("%s  %s %s  (%d unread)  %s\n",
			conv.ID, conv.Peer.FirstName, conv.Peer.LastName, conv.UnreadCount, last)
	}
	return nil
}

func (a *App) cmdMessages(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("messages needs exactly one argument: the conversation id")
	}

	page, err := a.messages.Messages(ctx, args[0], 1)
	if err != nil {
		return err
	}

	for _, msg := range page.Items {
		fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04"), msg.SenderID, msg.Body)
	}
	return nil
}

func (a *App) cmdSend(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("send needs a conversation id and the message text")
	}

	msg, err := a.messages.Send(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Printf("sent %s\n", msg.ID)
	return nil
}

func (a *App) cmdNotifications(ctx context.Context) error {
	page, err := a.notifications.List(ctx, 1)
	if err != nil {
		return err
	}

	for _, n := range page.Items {
		marker := " "
		if !n.Seen {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, n.CreatedAt.Format("Jan 2 15:04"), n.Title)
	}
	return nil
}

func (a *App) cmdListings(ctx context.Context) error {
	listings, err := a.properties.Mine(ctx)
	if err != nil {
		return err
	}

	for _, p := range listings {
		state := "draft"
		if p.Published {
			state = "published"
		}
		fmt.Printf("%s  %-30s %s, %s  %.0f %s/night  [%s]\n",
			p.ID, p.Title, p.City, p.CountryCode, p.PricePerNight, p.Currency, state)
	}
	return nil
}

func (a *App) cmdUpload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("upload needs exactly one argument: the file path")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	result, err := a.upload.Image(ctx, filepath.Base(args[0]), file)
	if err != nil {
		return err
	}

	fmt.Println(result.URL)
	return nil
}

func (a *App) cmdCountries(args []string) error {
	query := ""
	if len(args) > 0 {
		query = strings.Join(args, " ")
	}

	for _, c := range countries.Search(query) {
		fmt.Printf("%s %s  %s  %s  %s\n", c.Flag(), c.Code, c.Name, c.DialCode, c.Currency)
	}
	return nil
}

func (a *App) cmdWatch(ctx context.Context) error {
	if err := a.sock.Connect(ctx); err != nil {
		logger.Log.Warnw("socket connect failed, falling back to polling only", "error", err)
	}

	convWatcher := watch.NewConversationsWatcher(a.messages, a.sock, func() string {
		if usr := a.session.User(); usr != nil {
			return usr.ID
		}
		return ""
	}, a.cfg.PollInterval)

	ntfWatcher := watch.NewNotificationsWatcher(a.notifications, a.sock, a.cfg.PollInterval)

	cancelConv := convWatcher.Subscribe(func() {
		snap := convWatcher.Snapshot()
		fmt.Printf("conversations: %d (%d unread, stale=%v)\n",
			len(snap.Conversations), snap.UnreadTotal, snap.Stale)
	})
	defer cancelConv()

	cancelNtf := ntfWatcher.Subscribe(func() {
		snap := ntfWatcher.Snapshot()
		fmt.Printf("notifications: %d (%d unseen, stale=%v)\n",
			len(snap.Notifications), snap.UnreadCount, snap.Stale)
	})
	defer cancelNtf()

	go convWatcher.Run(ctx)
	go ntfWatcher.Run(ctx)

	a.sock.On(models.EventReceiveMessage, func(payload json.RawMessage) {
		fmt.Printf("message event: %s\n", payload)
	})

	<-ctx.Done()
	logger.Log.Infoln("Received shutdown signal. Saving device store and exiting...")

	return nil
}
