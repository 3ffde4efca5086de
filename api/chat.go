package api

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/safecare-api/agent"
	"github.com/bitmark-inc/safecare-api/schema"
)

const maxPromptLength = 4000

type chatResponse struct {
	Response  string                      `json:"response"`
	AgentType agent.AgentType             `json:"agentType"`
	Model     string                      `json:"model"`
	Timestamp time.Time                   `json:"timestamp"`
	Receipt   *schema.ConsultationReceipt `json:"receipt"`
	Triage    *schema.TriageDecision      `json:"triage,omitempty"`
}

// chat forwards a prompt to the agent selected by agentType
func (s *Server) chat(c *gin.Context) {
	logger := log.WithField("api", "chat")

	var params struct {
		Prompt        string `json:"prompt"`
		SystemContext string `json:"systemContext"`
		AgentType     string `json:"agentType"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	promptLength := utf8.RuneCountInString(params.Prompt)
	if strings.TrimSpace(params.Prompt) == "" || promptLength > maxPromptLength {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	if !s.chain.Configured() {
		abortWithEncoding(c, http.StatusInternalServerError, errorNotConfigured)
		return
	}

	agentType, template := agent.ResolveTemplate(params.AgentType)

	result, err := s.chain.Generate(c.Request.Context(), agent.Request{
		System: agent.Instruction(template, params.SystemContext),
		Prompt: params.Prompt,
		JSON:   agentType == agent.Triage,
	})
	if err != nil {
		logger.WithError(err).WithField("agent", agentType).Error("generate response")
		abortWithEncoding(c, http.StatusServiceUnavailable, errorUpstreamUnavailable, err)
		return
	}

	resp := chatResponse{
		Response:  result.Text,
		AgentType: agentType,
		Model:     result.Model,
		Timestamp: time.Now().UTC(),
	}

	if agentType == agent.Triage {
		triage := agent.ParseTriage(result.Text)
		resp.Triage = &triage
	}

	receipt, err := s.recorder.RecordConsultation(string(agentType), promptLength, result.Text, result.Model)
	if err != nil {
		logger.WithError(err).Error("record consultation")
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	resp.Receipt = receipt

	c.JSON(http.StatusOK, resp)
}
