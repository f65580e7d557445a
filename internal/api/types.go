package api

// GenerationRequest is the body of POST /v1/generations. Stop accepts a
// single string or an array of strings.
type GenerationRequest struct {
	Model             string        `json:"model,omitempty"`
	Prompt            string        `json:"prompt,omitempty"`
	PromptTokens      []int         `json:"prompt_tokens,omitempty"`
	MaxTokens         *int          `json:"max_tokens,omitempty"`
	Seed              *int64        `json:"seed,omitempty"`
	RepetitionPenalty *float64      `json:"repetition_penalty,omitempty"`
	NoRepeatNgram     *int          `json:"no_repeat_ngram,omitempty"`
	ForcedTokens      []ForcedToken `json:"forced_tokens,omitempty"`
	EOSTokens         []int         `json:"eos_tokens,omitempty"`
	Stop              any           `json:"stop,omitempty"`
	Stream            *bool         `json:"stream,omitempty"`
	Echo              *bool         `json:"echo,omitempty"`
}

type ForcedToken struct {
	Step int `json:"step"`
	ID   int `json:"id"`
}

type GenerationResponse struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	Created      int64  `json:"created"`
	Model        string `json:"model"`
	Text         string `json:"text"`
	Tokens       []int  `json:"tokens,omitempty"`
	FinishReason string `json:"finish_reason"`
	Usage        Usage  `json:"usage"`
}

type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	TPS              float64 `json:"tps,omitempty"`
}

// GenerationChunk is a streaming SSE event.
type GenerationChunk struct {
	ID           string  `json:"id"`
	Object       string  `json:"object"`
	Created      int64   `json:"created"`
	Model        string  `json:"model"`
	Delta        string  `json:"delta,omitempty"`
	FinishReason *string `json:"finish_reason,omitempty"`
	Usage        *Usage  `json:"usage,omitempty"`
}

type DeleteGenerationResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
