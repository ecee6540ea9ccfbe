package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anonto42/promptswipe/backend/internal/swipe"
	"github.com/anonto42/promptswipe/backend/pkg/apiclient"
	"github.com/anonto42/promptswipe/backend/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const help = `commands:
  l  like        s  super-like   n  nope
  j  scroll down k  scroll up    r  reload
  t  switch tab  q  quit`

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("api", envOr("API_BASE_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("API_TOKEN"), "session JWT")
	idToken := flag.String("id-token", "", "Firebase ID token to exchange for a session")
	flag.Parse()

	log, err := logger.New(envOr("ENV", "production"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	client := apiclient.New(*baseURL, *token)
	if *idToken != "" {
		if _, err := client.Login(ctx, *idToken); err != nil {
			log.Fatal("login failed", zap.Error(err))
		}
	}

	session := swipe.NewSession(client, client)
	if err := run(ctx, session, os.Stdin, os.Stdout); err != nil {
		log.Fatal("swipe session ended", zap.Error(err))
	}
}

// run drives the session from line commands until q or EOF
func run(ctx context.Context, session *swipe.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, help)
	scanner := bufio.NewScanner(in)
	for {
		deck := session.Active()
		if _, err := deck.Tick(ctx); err != nil {
			// the deck stays empty and retries on the next tick
			fmt.Fprintf(out, "error: fetch %s: %v\n", deck.Feed(), err)
		}
		render(out, deck)

		if !scanner.Scan() {
			return scanner.Err()
		}
		var err error
		switch strings.TrimSpace(scanner.Text()) {
		case "l":
			err = deck.Like(ctx)
		case "s":
			err = deck.SuperLike(ctx)
		case "n":
			err = deck.Nope(ctx)
		case "j":
			err = deck.Scroll(swipe.Down)
		case "k":
			err = deck.Scroll(swipe.Up)
		case "r":
			err = deck.Reload(ctx)
		case "t":
			next := swipe.FeedFollowings
			if deck.Feed() == swipe.FeedFollowings {
				next = swipe.FeedRecommended
			}
			_, err = session.Switch(next)
		case "q":
			return nil
		default:
			fmt.Fprintln(out, help)
		}
		if errors.Is(err, swipe.ErrNoCard) {
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func render(out io.Writer, deck *swipe.Deck) {
	post, ok := deck.Current()
	if !ok {
		fmt.Fprintf(out, "[%s] no more candidates\n", deck.Feed())
		return
	}
	fmt.Fprintf(out, "[%s #%d] %s by %s", deck.Feed(), deck.CardIndex()+1, post.ImageName, post.User.Name)
	if post.SuperLikeUser != nil {
		fmt.Fprintf(out, " (super-liked by %s)", post.SuperLikeUser.Name)
	}
	fmt.Fprintln(out)
	switch deck.ScrollIndex() {
	case swipe.ScrollImage:
		fmt.Fprintf(out, "  %s\n  %d likes, %d super-likes\n", post.ImageURL, post.LikeCount, post.SuperLikeCount)
	case swipe.ScrollTags:
		fmt.Fprintf(out, "  age %s, from %s\n  #%s\n", post.ImageAge, post.ImageBirthplace, strings.Join(post.HashTags, " #"))
	case swipe.ScrollPrompt:
		fmt.Fprintf(out, "  %s\n", post.Prompt)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
