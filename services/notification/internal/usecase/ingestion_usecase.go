package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"book-notify/pkg/logger"
	"book-notify/services/notification/internal/entity"

	"github.com/go-playground/validator/v10"
)

type IngestionUseCase interface {
	// Normalize validates a trigger event and renders the notification it
	// describes. It has no side effects.
	Normalize(event entity.TriggerEvent) (*entity.Notification, error)
	// Ingest normalizes the event and hands it to the dispatcher.
	Ingest(ctx context.Context, event entity.TriggerEvent) (DispatchResult, error)
}

type ingestionUseCase struct {
	dispatcher Dispatcher
	validate   *validator.Validate
	logger     *logger.Logger
	now        func() time.Time
}

func NewIngestionUseCase(dispatcher Dispatcher, logger *logger.Logger) IngestionUseCase {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ingestionUseCase{
		dispatcher: dispatcher,
		validate:   validate,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type template struct {
	required []string
	render   func(ev entity.TriggerEvent) (title, message, link string)
}

var templates = map[entity.NotificationType]template{
	entity.TypeCommentReply: {
		required: []string{"actor_name", "book_title", "book_id", "comment_id"},
		render: func(ev entity.TriggerEvent) (string, string, string) {
			return fmt.Sprintf("New reply from %s", ev.ActorName),
				fmt.Sprintf("%s commented on %q", ev.ActorName, ev.BookTitle),
				fmt.Sprintf("/books/%s/comments/%s", ev.BookID, ev.CommentID)
		},
	},
	entity.TypeNewRating: {
		required: []string{"actor_name", "book_title", "book_id", "rating"},
		render: func(ev entity.TriggerEvent) (string, string, string) {
			return fmt.Sprintf("New rating on %q", ev.BookTitle),
				fmt.Sprintf("%s rated %q %d/5", ev.ActorName, ev.BookTitle, *ev.Rating),
				fmt.Sprintf("/books/%s", ev.BookID)
		},
	},
	entity.TypeBookUpdate: {
		required: []string{"book_title", "book_id"},
		render: func(ev entity.TriggerEvent) (string, string, string) {
			return fmt.Sprintf("%q was updated", ev.BookTitle),
				fmt.Sprintf("A book you follow, %q, has new updates", ev.BookTitle),
				fmt.Sprintf("/books/%s", ev.BookID)
		},
	},
	entity.TypeNewFollower: {
		required: []string{"actor_name"},
		render: func(ev entity.TriggerEvent) (string, string, string) {
			link := ""
			if ev.ActorID != "" {
				link = fmt.Sprintf("/users/%s", ev.ActorID)
			}
			return "New follower",
				fmt.Sprintf("%s started following you", ev.ActorName),
				link
		},
	},
}

func present(ev entity.TriggerEvent, field string) bool {
	switch field {
	case "actor_name":
		return strings.TrimSpace(ev.ActorName) != ""
	case "book_title":
		return strings.TrimSpace(ev.BookTitle) != ""
	case "book_id":
		return strings.TrimSpace(ev.BookID) != ""
	case "comment_id":
		return strings.TrimSpace(ev.CommentID) != ""
	case "rating":
		return ev.Rating != nil
	}
	return false
}

func (uc *ingestionUseCase) Normalize(event entity.TriggerEvent) (*entity.Notification, error) {
	verr := &entity.ValidationError{}

	tmpl, known := templates[event.Type]
	if !known {
		verr.Add("type", fmt.Sprintf("must be one of %s", typeList()))
	}

	if err := uc.validate.Struct(event); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate trigger event: %w", err)
		}
		for _, fe := range fieldErrs {
			if fe.Field() == "type" {
				continue
			}
			verr.Add(fe.Field(), describe(fe))
		}
	}

	if known {
		for _, field := range tmpl.required {
			if !present(event, field) {
				verr.Add(field, fmt.Sprintf("is required for %s", event.Type))
			}
		}
	}

	if !verr.Empty() {
		return nil, verr
	}

	title, message, link := tmpl.render(event)
	return &entity.Notification{
		UserID:    event.RecipientID,
		Type:      event.Type,
		Title:     truncate(title, entity.MaxTitleLength),
		Message:   truncate(message, entity.MaxMessageLength),
		Link:      link,
		Data:      eventData(event),
		CreatedAt: uc.now(),
	}, nil
}

func (uc *ingestionUseCase) Ingest(ctx context.Context, event entity.TriggerEvent) (DispatchResult, error) {
	notification, err := uc.Normalize(event)
	if err != nil {
		uc.logger.Warn("[INGESTION] Rejected trigger type=%s recipient=%s: %v", event.Type, event.RecipientID, err)
		return DispatchResult{}, err
	}
	return uc.dispatcher.Dispatch(ctx, notification)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid uuid"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "excludesall":
		return "contains characters that are not allowed"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

func typeList() string {
	names := make([]string, len(entity.NotificationTypes))
	for i, t := range entity.NotificationTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func eventData(ev entity.TriggerEvent) map[string]interface{} {
	data := map[string]interface{}{}
	if ev.BookID != "" {
		data["book_id"] = ev.BookID
	}
	if ev.CommentID != "" {
		data["comment_id"] = ev.CommentID
	}
	if ev.ActorID != "" {
		data["actor_id"] = ev.ActorID
	}
	if ev.Rating != nil {
		data["rating"] = *ev.Rating
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
