package extract

import (
	"encoding/json"
	"strings"
	"time"

	"PumpStat/internal/domain/models"
	"PumpStat/internal/domain/repository"
)

// Bot API getUpdates payload, reduced to what the extractor reads.
type botUpdates struct {
	OK     bool        `json:"ok"`
	Result []botUpdate `json:"result"`
}

type botUpdate struct {
	UpdateID      int64       `json:"update_id"`
	Message       *botMessage `json:"message"`
	EditedMessage *botMessage `json:"edited_message"`
	ChannelPost   *botMessage `json:"channel_post"`
}

type botMessage struct {
	Date            int64      `json:"date"`
	Text            string     `json:"text"`
	Caption         string     `json:"caption"`
	Chat            botChat    `json:"chat"`
	ForwardFromChat *botChat   `json:"forward_from_chat"`
	ForwardOrigin   *botOrigin `json:"forward_origin"`
}

type botOrigin struct {
	Type string   `json:"type"`
	Chat *botChat `json:"chat"`
}

type botChat struct {
	Title    string `json:"title"`
	Username string `json:"username"`
}

func (c *botChat) name() string {
	if c == nil {
		return ""
	}
	if c.Title != "" {
		return c.Title
	}
	return c.Username
}

// ChatExtractor picks the freshest volume report out of bot updates.
type ChatExtractor struct {
	Marker string
}

func NewChatExtractor() *ChatExtractor {
	return &ChatExtractor{Marker: "Pump Volume Report"}
}

// Extract returns at most one candidate: the newest message that looks like a
// volume report. Scanned is the number of updates received.
func (e *ChatExtractor) Extract(payload []byte) models.Extraction {
	var updates botUpdates
	if err := json.Unmarshal(payload, &updates); err != nil || !updates.OK {
		return models.Extraction{}
	}
	out := models.Extraction{Scanned: len(updates.Result)}

	// the API delivers oldest first
	for i := len(updates.Result) - 1; i >= 0; i-- {
		msg := updates.Result[i].message()
		if msg == nil {
			continue
		}
		text := msg.Text
		if text == "" {
			text = msg.Caption
		}
		if !e.isReport(text) {
			continue
		}
		out.Candidates = []models.CandidateReport{{
			Title:       msg.origin(),
			Content:     text,
			PublishedAt: time.Unix(msg.Date, 0).UTC().Format(time.RFC3339),
		}}
		break
	}
	return out
}

func (e *ChatExtractor) isReport(text string) bool {
	if text == "" {
		return false
	}
	return strings.Contains(text, e.Marker) ||
		(strings.Contains(text, "Total Volume") && strings.Contains(text, "SOL"))
}

func (u botUpdate) message() *botMessage {
	switch {
	case u.Message != nil:
		return u.Message
	case u.ChannelPost != nil:
		return u.ChannelPost
	default:
		return u.EditedMessage
	}
}

// origin names the channel a forwarded report came from, or the chat itself.
func (m *botMessage) origin() string {
	if m.ForwardOrigin != nil {
		if name := m.ForwardOrigin.Chat.name(); name != "" {
			return name
		}
	}
	if name := m.ForwardFromChat.name(); name != "" {
		return name
	}
	return m.Chat.name()
}

var _ repository.Extractor = (*ChatExtractor)(nil)
