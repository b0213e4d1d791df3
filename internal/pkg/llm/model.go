package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/config"
)

// ChatModel wraps the Eino OpenAI-compatible chat model behind a single
// blocking Generate call.
type ChatModel struct {
	chatModel model.ToolCallingChatModel
}

// NewChatModel builds the chat model from config. APIURL may point at any
// OpenAI-compatible endpoint.
func NewChatModel(cfg *config.Config) (*ChatModel, error) {
	klog.V(6).Infof("creating chat model: model=%s, baseURL=%s", cfg.LLM.Model, cfg.LLM.APIURL)

	modelConfig := &openai.ChatModelConfig{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.Model,
	}
	if cfg.LLM.APIURL != "" {
		modelConfig.BaseURL = cfg.LLM.APIURL
	}
	if cfg.LLM.MaxTokens > 0 {
		maxTokens := cfg.LLM.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), modelConfig)
	if err != nil {
		klog.Errorf("failed to create chat model: %v", err)
		return nil, err
	}

	return &ChatModel{chatModel: chatModel}, nil
}

// Generate sends the messages and returns the completion. No retry: a failed
// call is reported once to the caller.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message) (*schema.Message, error) {
	klog.V(6).Infof("generate: messageCount=%d", len(input))

	resp, err := m.chatModel.Generate(ctx, input)
	if err != nil {
		klog.Errorf("generate failed: %v", err)
		return nil, err
	}

	klog.V(6).Infof("generate done: responseLength=%d", len(resp.Content))
	return resp, nil
}
