package audit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitmark-inc/safecare-api/schema"
)

// DefaultDisclaimer is attached to receipts when no localized text is given
const DefaultDisclaimer = "This information is generated by an AI assistant for " +
	"educational purposes only and is not a substitute for professional medical " +
	"advice, diagnosis or treatment."

// Recorder issues consultation receipts
type Recorder struct {
	disclaimer string
	now        func() time.Time
	newID      func() string
}

func NewRecorder(disclaimer string) *Recorder {
	if disclaimer == "" {
		disclaimer = DefaultDisclaimer
	}

	return &Recorder{
		disclaimer: disclaimer,
		now:        time.Now,
		newID: func() string {
			return uuid.New().String()
		},
	}
}

// RecordConsultation creates the receipt of one completed consultation or
// document extraction. content is hashed as canonical JSON.
func (r *Recorder) RecordConsultation(agentType string, promptLength int, content interface{}, modelID string) (*schema.ConsultationReceipt, error) {
	hash, err := ContentHash(content)
	if err != nil {
		return nil, err
	}

	return &schema.ConsultationReceipt{
		ID:            r.newID(),
		Timestamp:     r.now().UTC(),
		AgentType:     agentType,
		PromptSummary: fmt.Sprintf("prompt of %d characters", promptLength),
		ContentHash:   hash,
		Model:         modelID,
		Disclaimer:    r.disclaimer,
	}, nil
}

// Canonicalize serializes content as JSON with object keys sorted and
// numbers kept in their original textual form
func Canonicalize(content interface{}) ([]byte, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	var generic interface{}
	if err := d.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}

// ContentHash returns the hex encoded SHA-256 digest of the canonical JSON
// form of content
func ContentHash(content interface{}) (string, error) {
	canonical, err := Canonicalize(content)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Verify reports whether content still matches the hash of a receipt
func Verify(receipt *schema.ConsultationReceipt, content interface{}) bool {
	if receipt == nil {
		return false
	}

	hash, err := ContentHash(content)
	if err != nil {
		return false
	}

	return hash == receipt.ContentHash
}
