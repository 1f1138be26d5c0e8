package external

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// OpenTDBClient fetches questions from the Open Trivia DB (no API key).
type OpenTDBClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenTDBClient(baseURL string, httpClient *http.Client) *OpenTDBClient {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &OpenTDBClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type OpenTDBQuestion struct {
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
}

type openTDBResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []OpenTDBQuestion `json:"results"`
}

// Fetch asks for amount questions. An empty difficulty means any.
func (c *OpenTDBClient) Fetch(ctx context.Context, amount int, difficulty string) ([]OpenTDBQuestion, error) {
	values := url.Values{}
	values.Set("amount", fmt.Sprint(amount))
	if difficulty != "" {
		values.Set("difficulty", difficulty)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api.php?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}

	var payload openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}
	return payload.Results, nil
}

// Bank is the part of the question service the importer writes through.
type Bank interface {
	ListCategories(ctx context.Context) (question.CategoryList, error)
	AddQuestion(ctx context.Context, in question.CreateQuestionInput) (int, error)
}

// Importer copies fetched questions into the bank, matching OpenTDB
// categories to local ones by name.
type Importer struct {
	client *OpenTDBClient
	bank   Bank
	logger zerolog.Logger
}

func NewImporter(client *OpenTDBClient, bank Bank, logger zerolog.Logger) *Importer {
	return &Importer{
		client: client,
		bank:   bank,
		logger: logger.With().Str("component", "opentdb_import").Logger(),
	}
}

// Import fetches amount questions and stores the ones with a known category.
// It returns how many were created.
func (im *Importer) Import(ctx context.Context, amount int, difficulty string) (int, error) {
	cats, err := im.bank.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}
	byName := make(map[string]int, len(cats.Categories))
	for id, name := range cats.Categories {
		byName[strings.ToLower(name)] = id
	}

	fetched, err := im.client.Fetch(ctx, amount, difficulty)
	if err != nil {
		return 0, fmt.Errorf("fetch opentdb: %w", err)
	}

	created := 0
	for _, q := range fetched {
		categoryID, ok := byName[categoryKey(q.Category)]
		if !ok {
			im.logger.Debug().Str("category", q.Category).Msg("skipping question with unknown category")
			continue
		}
		text := html.UnescapeString(q.Question)
		answer := html.UnescapeString(q.CorrectAnswer)
		level := difficultyLevel(q.Difficulty)
		if _, err := im.bank.AddQuestion(ctx, question.CreateQuestionInput{
			Question:   &text,
			Answer:     &answer,
			Category:   &categoryID,
			Difficulty: &level,
		}); err != nil {
			return created, fmt.Errorf("create question: %w", err)
		}
		created++
	}

	im.logger.Info().Int("fetched", len(fetched)).Int("created", created).Msg("opentdb import finished")
	return created, nil
}

// categoryKey reduces "Entertainment: Film" or "Science & Nature" to the
// leading word used by local categories.
func categoryKey(name string) string {
	name = html.UnescapeString(name)
	if i := strings.IndexAny(name, ":&"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimSpace(name))
}

func difficultyLevel(d string) int {
	switch d {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}
