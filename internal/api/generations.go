package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/steer/internal/inference"
	"github.com/samcharles93/steer/internal/logits"
)

const defaultModelID = "toy"

type Server struct {
	store    *GenerationStore
	provider EngineProvider
	clock    func() time.Time
}

func NewServer(store *GenerationStore, provider EngineProvider) *Server {
	if store == nil {
		store = NewGenerationStore()
	}
	return &Server{
		store:    store,
		provider: provider,
		clock:    time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/generations", s.handleCreateGeneration)
	e.GET("/v1/generations/:id", s.handleGetGeneration)
	e.DELETE("/v1/generations/:id", s.handleDeleteGeneration)
	e.GET("/v1/models", s.handleListModels)
}

func (s *Server) handleCreateGeneration(c *echo.Context) error {
	if s.provider == nil {
		return writeError(c, http.StatusInternalServerError, "server_error", "engine provider not configured", "", "")
	}

	req, err := decodeJSON[GenerationRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	opts, err := requestToOptions(&req)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	id := newGenerationID()
	created := s.clock().Unix()
	model := req.Model
	if model == "" {
		model = defaultModelID
	}
	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	}

	if req.Stream != nil && *req.Stream {
		return s.streamGeneration(c, opts, id, created, model, seed)
	}

	var resp GenerationResponse
	err = s.provider.WithEngine(c.Request().Context(), seed, func(engine inference.Engine, defaults inference.GenDefaults) error {
		inferReq := inference.ResolveRequest(opts, defaults)
		result, genErr := engine.Generate(c.Request().Context(), &inferReq, nil)
		if result == nil {
			return genErr
		}
		resp = buildGenerationResponse(id, created, model, result)
		return nil
	})
	if err != nil {
		status, errType := errorStatus(err)
		return writeError(c, status, errType, err.Error(), "", "")
	}

	s.store.Put(resp)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetGeneration(c *echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return writeNotFound(c, "generation not found")
	}
	resp, ok := s.store.Get(id)
	if !ok {
		return writeNotFound(c, "generation not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteGeneration(c *echo.Context) error {
	id := c.Param("id")
	if id == "" || !s.store.Delete(id) {
		return writeNotFound(c, "generation not found")
	}
	return c.JSON(http.StatusOK, DeleteGenerationResponse{
		ID:      id,
		Object:  "generation",
		Deleted: true,
	})
}

func (s *Server) handleListModels(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"object": "list",
		"data": []map[string]any{
			{
				"id":       defaultModelID,
				"object":   "model",
				"created":  s.clock().Unix(),
				"owned_by": "local",
			},
		},
	})
}

func buildGenerationResponse(id string, created int64, model string, result *inference.Result) GenerationResponse {
	return GenerationResponse{
		ID:           id,
		Object:       "generation",
		Created:      created,
		Model:        model,
		Text:         result.Text,
		Tokens:       result.Tokens,
		FinishReason: result.FinishReason,
		Usage: Usage{
			PromptTokens:     result.Stats.PromptTokens,
			CompletionTokens: result.Stats.TokensGenerated,
			TotalTokens:      result.Stats.PromptTokens + result.Stats.TokensGenerated,
			TPS:              result.Stats.TPS,
		},
	}
}

func requestToOptions(req *GenerationRequest) (inference.RequestOptions, error) {
	var opts inference.RequestOptions

	if req.Prompt != "" {
		opts.Prompt = &req.Prompt
	}
	opts.PromptTokens = req.PromptTokens
	opts.MaxTokens = req.MaxTokens
	opts.RepetitionPenalty = req.RepetitionPenalty
	opts.NoRepeatNgram = req.NoRepeatNgram
	opts.EOSTokens = req.EOSTokens
	opts.EchoPrompt = req.Echo

	if len(req.ForcedTokens) > 0 {
		forced := make([]logits.StepToken, 0, len(req.ForcedTokens))
		for _, f := range req.ForcedTokens {
			forced = append(forced, logits.StepToken{Step: f.Step, ID: f.ID})
		}
		opts.Forced = forced
	}

	stop, err := normalizeStopSequences(req.Stop)
	if err != nil {
		return opts, newInvalidRequest(err.Error())
	}
	opts.StopSequences = stop

	return opts, nil
}
