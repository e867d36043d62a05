/*
 * openai.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package resolver

import (
	"context"
	"time"

	chem "github.com/rmera/chemform"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConfig holds the settings for an OpenAI-compatible chat API.
type OpenAIConfig struct {
	BaseURL string //empty for the OpenAI default
	APIKey  string
	Model   string
}

// OpenAI is a Resolver that asks a chat model, through any OpenAI-compatible API.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAI returns a Resolver using the API described by cfg. A nil logger
// disables logging.
func NewOpenAI(cfg OpenAIConfig, logger *zap.Logger) *OpenAI {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClientWithConfig(c), model: model, logger: logger}
}

// Resolve sends the prompt for formula to the model and returns its answer.
// Failures to get an answer are errors of kind chem.ErrResolver.
func (O *OpenAI) Resolve(ctx context.Context, formula string, numbering Numbering) (string, error) {
	start := time.Now()
	resp, err := O.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: O.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: Prompt(formula, numbering)},
		},
		Temperature: 0,
	})
	if err != nil {
		O.logger.Debug("chat completion failed", zap.String("formula", formula), zap.Error(err))
		return "", chem.WrapError(chem.ErrResolver, err, "chat completion failed", "OpenAI.Resolve")
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", chem.NewError(chem.ErrResolver, "the model gave an empty answer", "OpenAI.Resolve")
	}
	O.logger.Debug("chat completion",
		zap.String("formula", formula),
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("elapsed", time.Since(start)))
	return resp.Choices[0].Message.Content, nil
}
