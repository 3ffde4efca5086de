package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/audit"
	extmocks "github.com/bitmark-inc/safecare-api/external/mocks"
	"github.com/bitmark-inc/safecare-api/schema"
	"github.com/bitmark-inc/safecare-api/store"
)

func chatRouter(chain *agent.Chain) *gin.Engine {
	s := NewServer(store.NewMemoryPins(), nil, chain, nil, nil)
	router := gin.New()
	router.POST("/chat", s.chat)
	return router
}

func TestChat(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	g := extmocks.NewMockGenerator(ctl)
	g.EXPECT().Model().Return("model-a").AnyTimes()
	g.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req agent.Request) (string, error) {
		assert.True(t, strings.HasSuffix(req.System, "Context about the user:\nvegetarian"))
		assert.Equal(t, "what should I eat?", req.Prompt)
		assert.False(t, req.JSON)
		return "Eat more beans.", nil
	}).Times(1)

	w := performRequest(chatRouter(agent.NewChain(g)), "POST", "/chat", map[string]string{
		"prompt":        "what should I eat?",
		"systemContext": "vegetarian",
		"agentType":     "nutrition",
	})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp chatResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	assert.Equal(t, "Eat more beans.", jResp.Response)
	assert.Equal(t, agent.Nutrition, jResp.AgentType)
	assert.Equal(t, "model-a", jResp.Model)
	assert.Nil(t, jResp.Triage)

	if assert.NotNil(t, jResp.Receipt) {
		assert.Equal(t, "nutrition", jResp.Receipt.AgentType)
		assert.Equal(t, "prompt of 18 characters", jResp.Receipt.PromptSummary)
		assert.True(t, audit.Verify(jResp.Receipt, "Eat more beans."))
	}
}

func TestChatUnknownAgentFallsBackToGeneral(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	w := performRequest(chatRouter(agent.NewChain(newGenerator(ctl, "model-a", "hi", nil))), "POST", "/chat",
		map[string]string{"prompt": "hello", "agentType": "astrology"})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp chatResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	assert.Equal(t, agent.General, jResp.AgentType)
}

func TestChatTriage(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	answer := "```json\n{\"agentType\": \"emergency\", \"urgency\": \"high\", \"reasoning\": \"chest pain\"}\n```"
	w := performRequest(chatRouter(agent.NewChain(newGenerator(ctl, "model-a", answer, nil))), "POST", "/chat",
		map[string]string{"prompt": "my chest hurts", "agentType": "triage"})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp chatResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	if assert.NotNil(t, jResp.Triage) {
		assert.Equal(t, "emergency", jResp.Triage.AgentType)
		assert.Equal(t, schema.UrgencyHigh, jResp.Triage.Urgency)
	}
}

func TestChatFallsThroughModels(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := agent.NewChain(
		newGenerator(ctl, "model-a", "", fmt.Errorf("quota exceeded")),
		newGenerator(ctl, "model-b", "  ", nil),
		newGenerator(ctl, "model-c", "answer", nil),
	)

	w := performRequest(chatRouter(chain), "POST", "/chat", map[string]string{"prompt": "hello"})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var jResp chatResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &jResp), "wrong json unmarshal")
	assert.Equal(t, "model-c", jResp.Model)
	assert.Equal(t, "answer", jResp.Response)
}

func TestChatInvalidPrompt(t *testing.T) {
	router := chatRouter(nil)

	w := performRequest(router, "POST", "/chat", map[string]string{"prompt": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
	assert.Equal(t, errorInvalidParameters, decodeError(t, w))

	w = performRequest(router, "POST", "/chat", map[string]string{"prompt": strings.Repeat("a", maxPromptLength+1)})
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")

	w = performRequest(router, "POST", "/chat", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
	assert.Equal(t, errorCannotParseRequest, decodeError(t, w))
}

func TestChatNotConfigured(t *testing.T) {
	w := performRequest(chatRouter(nil), "POST", "/chat", map[string]string{"prompt": "hello"})
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
	assert.Equal(t, "API key not configured", decodeError(t, w).Error)
}

func TestChatUpstreamUnavailable(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	chain := agent.NewChain(newGenerator(ctl, "model-a", "", fmt.Errorf("deadline exceeded")))
	w := performRequest(chatRouter(chain), "POST", "/chat", map[string]string{"prompt": "hello"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
	assert.Equal(t, int64(1030), decodeError(t, w).Code)
}
