package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/votann/ask-search-be/database"
	"github.com/votann/ask-search-be/repository"
	"github.com/votann/ask-search-be/types"
	"github.com/votann/ask-search-be/utils"
)

// promptAnswerSeparator joins the prompt and answer into the one vector
// record a query exchange produces.
const promptAnswerSeparator = "\n\n"

// QueryService runs the single code path behind every user prompt: call the
// completion service, then persist one log row and one vector record.
type QueryService struct {
	ai         AIService
	embedder   EmbeddingProvider
	vectorDB   database.VectorStore
	logRepo    repository.QueryLogRepo
	userRepo   repository.UserRepo
	collection string
}

func NewQueryService(
	ai AIService,
	embedder EmbeddingProvider,
	vectorDB database.VectorStore,
	logRepo repository.QueryLogRepo,
	userRepo repository.UserRepo,
	collection string,
) *QueryService {
	return &QueryService{
		ai:         ai,
		embedder:   embedder,
		vectorDB:   vectorDB,
		logRepo:    logRepo,
		userRepo:   userRepo,
		collection: collection,
	}
}

// Ask answers a prompt for a user. A whitespace-only prompt fails locally
// with ErrEmptyPrompt before any external call. A completion failure is
// surfaced with no writes performed. Once an answer exists it is always
// returned, even when persistence fails — the user paid for the completion
// call; the persistence error comes back alongside the answer so callers
// can observe the divergence. The completion call itself is never retried.
func (s *QueryService) Ask(ctx context.Context, userID, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", types.ErrEmptyPrompt
	}

	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrCompletionService, err)
	}

	if err := s.RecordExchange(ctx, userID, prompt, answer); err != nil {
		log.Printf("exchange for user %s: persistence failed: %v", userID, err)
		return answer, err
	}
	return answer, nil
}

// RecordExchange persists one prompt/response pair: a vector record and a
// relational log row, both keyed by the exchange id. The two writes are
// best-effort in sequence, not transactional; a retry with the same id
// overwrites the vector record and is a no-op on the log, so retrying
// cannot double-write.
func (s *QueryService) RecordExchange(ctx context.Context, userID, prompt, answer string) error {
	now := time.Now()
	id := utils.ExchangeID(userID, now)
	text := prompt + promptAnswerSeparator + answer

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}

	err = s.vectorDB.UpsertObject(ctx, s.collection, types.VectorRecord{
		ID:     id,
		Text:   text,
		Vector: vector,
		Metadata: map[string]string{
			"userId": userID,
			"ts":     now.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return err
	}

	err = s.logRepo.InsertLog(ctx, &types.QueryLog{
		ID:        id,
		UserID:    userID,
		Prompt:    prompt,
		Response:  answer,
		CreatedAt: now.Unix(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrRelationalStore, err)
	}
	return nil
}

// RecentExchanges returns the latest log rows with usernames resolved, for
// the dashboard view.
func (s *QueryService) RecentExchanges(ctx context.Context, limit int64) ([]types.DashboardEntry, error) {
	logs, err := s.logRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrRelationalStore, err)
	}

	usernames := make(map[string]string)
	entries := make([]types.DashboardEntry, 0, len(logs))
	for _, row := range logs {
		username, ok := usernames[row.UserID]
		if !ok {
			if user, err := s.userRepo.GetUser(ctx, row.UserID); err == nil {
				username = user.Username
			}
			usernames[row.UserID] = username
		}
		entries = append(entries, types.DashboardEntry{
			Username:  username,
			Prompt:    row.Prompt,
			Response:  row.Response,
			CreatedAt: row.CreatedAt,
		})
	}
	return entries, nil
}
