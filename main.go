package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"postify/app/api"
	"postify/app/auth"
	"postify/app/config"
	"postify/app/fixture"
	"postify/app/gate"
	"postify/app/logger"
	"postify/app/models"
	"postify/app/session"
	"postify/app/store"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("postify version %s\n", cliVersion)
	case "fixture":
		serveFixture()
	case "run":
		runApp()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: postify <command> [options]
Commands:
  help               Display this help message.
  version            Show version information.
  fixture [addr]     Serve the local post API fixture (default :8080).
  run                Run the interactive client flow.
`
	fmt.Println(helpText)
}

// serveFixture runs the local stand-in for the remote post API.
func serveFixture() {
	addr := ":8080"
	if len(os.Args) > 2 {
		addr = os.Args[2]
	}

	router := fixture.NewServer().Router()
	logger.Info.Printf("serving post API fixture on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error.Fatalf("fixture server error: %v", err)
	}
}

// runApp drives the client flows on the terminal: session check, phone
// entry, OTP verification, then the post list / comments / edit loop.
func runApp() {
	cfg := config.Load()

	var sessions *session.Store
	if cfg.MemorySession {
		sessions = session.NewStore(session.NewMemoryStorage())
	} else {
		sessions = session.Open(cfg.SessionDir)
	}
	defer sessions.Close()

	g := gate.New(sessions)
	g.Subscribe(func(s gate.State) {
		logger.Info.Printf("flow changed: %s", s)
	})

	authService := auth.NewService()
	posts := store.NewStore(api.NewClient(cfg.APIBaseURL))
	reader := bufio.NewScanner(os.Stdin)

	if g.Start() == gate.Unauthenticated {
		if !loginFlow(reader, authService, g) {
			return
		}
	}
	fmt.Printf("Logged in as %s\n", g.Session().PhoneNumber)

	browseLoop(reader, posts, g)
}

// loginFlow walks phone entry and OTP verification until a session is
// established. Returns false when input ran out.
func loginFlow(reader *bufio.Scanner, authService *auth.Service, g *gate.Gate) bool {
	for {
		phone, ok := prompt(reader, "Phone number (e.g. +919876543210): ")
		if !ok {
			return false
		}

		code, err := authService.SendOTP(phone)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("OTP sent to %s (mock delivery: %s)\n", phone, code)

		for {
			entered, ok := prompt(reader, "Enter OTP: ")
			if !ok {
				return false
			}

			token, err := authService.VerifyOTP(phone, entered)
			if err != nil {
				fmt.Println("Error:", err)
				if err == auth.ErrOTPExpired || err == auth.ErrTooManyAttempts || err == auth.ErrChallengeNotFound {
					break // back to phone entry for a fresh OTP
				}
				continue
			}

			if err := g.Login(models.NormalizePhone(phone), token); err != nil {
				fmt.Println("Error:", err)
				break
			}
			return true
		}
	}
}

// browseLoop is the main flow: list posts, open a post's comments, edit
// a comment, or log out.
func browseLoop(reader *bufio.Scanner, posts *store.Store, g *gate.Gate) {
	ctx := context.Background()

	if err := posts.LoadPosts(ctx); err != nil {
		fmt.Println("Failed to load posts:", posts.PostsError())
		fmt.Println("Re-run to retry.")
		return
	}

	for {
		fmt.Println("\nPosts:")
		for _, p := range posts.Posts() {
			fmt.Printf("  [%d] %s\n", p.ID, p.Title)
		}

		input, ok := prompt(reader, "Post id to open, 'logout' or 'quit': ")
		if !ok {
			return
		}
		switch input {
		case "quit":
			return
		case "logout":
			if err := g.Logout(); err != nil {
				logger.Warn.Printf("logout: %v", err)
			}
			fmt.Println("Logged out.")
			return
		}

		postID, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("Not a post id:", input)
			continue
		}

		// Call-site guard: fetch when this post was never loaded, or its
		// last load failed and selecting it again is the retry.
		if posts.Comments(postID).NeedsLoad() {
			if err := posts.LoadComments(ctx, postID); err != nil {
				fmt.Println("Failed to load comments:", err)
				continue
			}
		}
		commentsLoop(reader, posts, postID)
	}
}

func commentsLoop(reader *bufio.Scanner, posts *store.Store, postID int) {
	for {
		state := posts.Comments(postID)
		if len(state.Comments) == 0 {
			fmt.Println("No comments yet.")
			return
		}

		fmt.Println("\nComments:")
		for _, c := range state.Comments {
			fmt.Printf("  [%d] %s <%s>: %s\n", c.ID, c.Name, c.Email, c.Body)
		}

		input, ok := prompt(reader, "Comment id to edit or 'back': ")
		if !ok || input == "back" {
			return
		}
		commentID, err := strconv.Atoi(input)
		if err != nil {
			fmt.Println("Not a comment id:", input)
			continue
		}

		body, ok := prompt(reader, "New comment body: ")
		if !ok {
			return
		}
		updated, err := posts.UpdateComment(context.Background(), commentID, body, postID)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Comment %d updated: %s\n", updated.ID, updated.Body)
	}
}

func prompt(reader *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !reader.Scan() {
		return "", false
	}
	return strings.TrimSpace(reader.Text()), true
}
