package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"book-notify/pkg/config"
	"book-notify/pkg/logger"
	"book-notify/pkg/middleware"
	"book-notify/pkg/queue"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type trigger struct {
	Type        string `json:"type"`
	RecipientID string `json:"recipient_id"`
	ActorID     string `json:"actor_id,omitempty"`
	ActorName   string `json:"actor_name,omitempty"`
	BookTitle   string `json:"book_title,omitempty"`
	BookID      string `json:"book_id,omitempty"`
	CommentID   string `json:"comment_id,omitempty"`
	Rating      *int   `json:"rating,omitempty"`
}

func main() {
	var (
		via       = flag.String("via", "http", "delivery path for sample triggers: http or amqp")
		baseURL   = flag.String("url", "http://localhost:8006", "notification service base URL (http mode)")
		recipient = flag.String("recipient", "", "recipient user id (random uuid when empty)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	userID := *recipient
	if userID == "" {
		userID = uuid.NewString()
	}

	triggers := sampleTriggers(userID)

	switch *via {
	case "http":
		err = seedHTTP(*baseURL, cfg.ServiceToken, triggers, log)
	case "amqp":
		err = seedQueue(cfg, triggers, log)
	default:
		err = fmt.Errorf("unknown delivery path %q", *via)
	}
	if err != nil {
		log.Error("Failed to seed notifications: %v", err)
		panic(err)
	}

	log.Info("Seeded %d triggers for user %s", len(triggers), userID)
}

func sampleTriggers(userID string) []trigger {
	rating := 5
	books := []struct{ id, title string }{
		{uuid.NewString(), "Dune"},
		{uuid.NewString(), "The Left Hand of Darkness"},
		{uuid.NewString(), "Hyperion"},
	}
	actors := []string{"alice_reads", "bob_books", "charlie_pages"}

	var triggers []trigger
	for i, book := range books {
		actor := actors[i%len(actors)]
		triggers = append(triggers,
			trigger{Type: "comment_reply", RecipientID: userID, ActorName: actor, BookTitle: book.title, BookID: book.id, CommentID: uuid.NewString()},
			trigger{Type: "new_rating", RecipientID: userID, ActorName: actor, BookTitle: book.title, BookID: book.id, Rating: &rating},
			trigger{Type: "book_update", RecipientID: userID, BookTitle: book.title, BookID: book.id},
		)
	}
	for _, actor := range actors {
		triggers = append(triggers, trigger{Type: "new_follower", RecipientID: userID, ActorID: uuid.NewString(), ActorName: actor})
	}
	return triggers
}

func seedHTTP(baseURL, serviceToken string, triggers []trigger, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	for _, t := range triggers {
		body, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode trigger: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/triggers", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if serviceToken != "" {
			req.Header.Set(middleware.ServiceTokenHeader, serviceToken)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to submit trigger: %w", err)
		}
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			return fmt.Errorf("trigger %s rejected with status %d: %s", t.Type, resp.StatusCode, string(respBody))
		}
		log.Info("Submitted %s trigger: %s", t.Type, string(respBody))
	}
	return nil
}

func seedQueue(cfg *config.Config, triggers []trigger, log *logger.Logger) error {
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		return err
	}
	defer queueClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, t := range triggers {
		body, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to encode trigger: %w", err)
		}
		if err := queueClient.PublishTrigger(ctx, t.Type, body); err != nil {
			return err
		}
	}
	return nil
}
